// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API for generating flashcards from study text.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application core to Google's external Gemini service
// without exposing the SDK to the rest of the application.
//
// Key components:
//
// 1. Generator:
//   - Implements the generation.Generator interface
//   - Builds a fresh client for every call from the caller's own API key
//   - Attaches the response schema and the fixed safety configuration
//
// 2. Response Processing:
//   - Decodes the model's JSON strictly against the expected shape
//   - Fails closed with generation.ErrMalformedOutput instead of repairing output
//
// 3. Error Handling:
//   - Translates API errors into the generation error taxonomy so callers can
//     tell a rejected key from rate limiting or a provider outage
//   - Makes exactly one attempt; retrying is left to the caller
//
// The package depends on the google.golang.org/genai client library.
package gemini
