package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/practice"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors. Sets owned by other users look missing.
	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, practice.ErrSessionNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, shared.ErrInvalidJSON),
		errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, practice.ErrEmptySet),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	// Generation workflow
	case errors.Is(err, service.ErrAPIKeyMissing):
		return http.StatusPreconditionFailed
	case errors.Is(err, generation.ErrInvalidCredential),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, service.ErrNoCardsGenerated):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generation.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, generation.ErrMalformedOutput),
		errors.Is(err, generation.ErrProviderFailure):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		validationErr  *domain.ValidationError
		validationErrs validator.ValidationErrors
	)

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	// Not found errors
	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, store.ErrCardSetNotFound):
		return "Card set not found"
	case errors.Is(err, practice.ErrSessionNotFound):
		return "Practice session not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	// Bad request errors
	case errors.As(err, &validationErr):
		// Domain validation messages never carry submitted values.
		return "Validation failed: " + err.Error()
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, shared.ErrInvalidJSON):
		return "Invalid request format"
	case errors.Is(err, generation.ErrInvalidRequest):
		return generationRequestMessage(err)
	case errors.Is(err, practice.ErrEmptySet):
		return "Card set has no cards to practice"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Generation workflow
	case errors.Is(err, service.ErrAPIKeyMissing):
		return "Gemini API key is not configured"
	case errors.Is(err, generation.ErrInvalidCredential):
		return "Gemini API key was rejected"
	case errors.Is(err, generation.ErrContentBlocked):
		return "The text was blocked by the model's safety filters"
	case errors.Is(err, service.ErrNoCardsGenerated):
		return "No cards generated"
	case errors.Is(err, generation.ErrRateLimited):
		return "Gemini rate limit or quota exceeded, try again later"
	case errors.Is(err, generation.ErrMalformedOutput):
		return "The model returned an unusable response, please try again"
	case errors.Is(err, generation.ErrProviderFailure):
		return "The model provider is unavailable, try again later"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message overrides the safe message for server errors only.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	safe := GetSafeErrorMessage(err)
	if message != "" && status == http.StatusInternalServerError {
		safe = message
	}
	shared.RespondWithErrorAndLog(w, r, status, safe, err)
}

// SanitizeValidationError turns validator field errors into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}
	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "notblank":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too short or too small"
	case "max", "lte":
		return "too long or too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// generationRequestMessage keeps the field descriptions that
// generation.Request.Validate appends after the sentinel text.
func generationRequestMessage(err error) string {
	const prefix = "invalid generation request: "
	msg := err.Error()
	if i := strings.Index(msg, prefix); i >= 0 {
		return "Invalid generation request: " + msg[i+len(prefix):]
	}
	return "Invalid generation request"
}
