package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package and its implementations.
var (
	// ErrInvalidRequest is returned before any network call when a request
	// has an out-of-range card count, empty or oversized source text, an empty
	// target language, or no credential.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrProviderFailure is returned when the hosted model call itself fails.
	// The more specific provider errors below all wrap it.
	ErrProviderFailure = errors.New("language model provider call failed")

	// ErrInvalidCredential is returned when the provider rejects the supplied API key.
	ErrInvalidCredential = fmt.Errorf("%w: API key rejected", ErrProviderFailure)

	// ErrRateLimited is returned when the provider reports rate limiting or quota exhaustion.
	ErrRateLimited = fmt.Errorf("%w: rate limit or quota exceeded", ErrProviderFailure)

	// ErrContentBlocked is returned when the provider's safety filters block the prompt or response.
	ErrContentBlocked = fmt.Errorf("%w: content blocked by safety filters", ErrProviderFailure)

	// ErrProviderUnavailable is returned for network failures and provider-side
	// errors that may resolve if the caller tries again later.
	ErrProviderUnavailable = fmt.Errorf("%w: provider unavailable", ErrProviderFailure)

	// ErrMalformedOutput is returned when the call succeeded but the response
	// could not be decoded into the expected list of question/answer pairs.
	ErrMalformedOutput = errors.New("malformed output from language model")

	// ErrInvalidConfig is returned when a generator or prompt builder is misconfigured.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
