package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/redact"
	"google.golang.org/genai"
)

// asAPIError extracts a genai.APIError. The SDK returns it by value, but a
// pointer is accepted as well.
func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

// mapProviderError translates an error from the model call into the
// generation taxonomy. Provider messages are redacted before being wrapped.
func mapProviderError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrProviderUnavailable, err)
	}

	apiErr, ok := asAPIError(err)
	if !ok {
		return fmt.Errorf("%w: %s", generation.ErrProviderUnavailable, redact.Error(err))
	}

	detail := fmt.Sprintf("status %d %s: %s", apiErr.Code, apiErr.Status, redact.String(apiErr.Message))

	switch {
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", generation.ErrInvalidCredential, detail)
	case apiErr.Code == http.StatusBadRequest && isKeyRejection(apiErr):
		return fmt.Errorf("%w: %s", generation.ErrInvalidCredential, detail)
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", generation.ErrRateLimited, detail)
	case apiErr.Code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", generation.ErrProviderUnavailable, detail)
	default:
		return fmt.Errorf("%w: %s", generation.ErrProviderFailure, detail)
	}
}

// isKeyRejection recognizes the Gemini API's 400 response for a bad key,
// e.g. "API key not valid. Please pass a valid API key."
func isKeyRejection(apiErr genai.APIError) bool {
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "api key") || strings.Contains(msg, "api_key_invalid")
}
