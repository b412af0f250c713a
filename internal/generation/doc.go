// Package generation defines the contract for turning study text into
// flashcards with a hosted LLM such as Gemini.
//
// It owns the request and result types, request validation, the prompt
// builder, and the error taxonomy shared by every Generator implementation.
// Provider integrations live elsewhere (see internal/platform/gemini) so the
// application core never depends on a specific SDK.
package generation
