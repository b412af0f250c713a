package generation

import (
	"context"
)

// Generator turns study text into flashcards using a hosted model.
// This interface is the boundary between the application core and external
// LLM services.
type Generator interface {
	// Generate performs one generation call with the request's credential.
	// Invalid requests fail with ErrInvalidRequest before any network call.
	// Provider failures wrap ErrProviderFailure and undecodable responses
	// wrap ErrMalformedOutput. No partial results are returned on error.
	Generate(ctx context.Context, req Request) (*Result, error)
}
