package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/practice"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired refresh token", auth.ErrExpiredRefreshToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusNotFound},
		{"card set not found", fmt.Errorf("lookup: %w", store.ErrCardSetNotFound), http.StatusNotFound},
		{"session not found", practice.ErrSessionNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"validation", domain.NewValidationError("name", "", domain.ErrCardSetNameEmpty), http.StatusBadRequest},
		{"invalid json", fmt.Errorf("%w: eof", shared.ErrInvalidJSON), http.StatusBadRequest},
		{"invalid generation request", fmt.Errorf("%w: card_count must be between 1 and 16", generation.ErrInvalidRequest), http.StatusBadRequest},
		{"empty practice set", practice.ErrEmptySet, http.StatusBadRequest},
		{"validator errors", validator.ValidationErrors{}, http.StatusBadRequest},
		{"api key missing", service.ErrAPIKeyMissing, http.StatusPreconditionFailed},
		{"credential rejected", fmt.Errorf("gemini: %w", generation.ErrInvalidCredential), http.StatusUnprocessableEntity},
		{"content blocked", generation.ErrContentBlocked, http.StatusUnprocessableEntity},
		{"no cards generated", service.ErrNoCardsGenerated, http.StatusUnprocessableEntity},
		{"rate limited", generation.ErrRateLimited, http.StatusTooManyRequests},
		{"provider unavailable", generation.ErrProviderUnavailable, http.StatusBadGateway},
		{"provider failure", generation.ErrProviderFailure, http.StatusBadGateway},
		{"malformed output", generation.ErrMalformedOutput, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"credential rejected", generation.ErrInvalidCredential, "Gemini API key was rejected"},
		{"no cards", service.ErrNoCardsGenerated, "No cards generated"},
		{"api key missing", service.ErrAPIKeyMissing, "Gemini API key is not configured"},
		{"not owned looks missing", service.ErrNotOwned, "Card set not found"},
		{
			"generation request detail kept",
			fmt.Errorf("%w: card_count must be between 1 and 16", generation.ErrInvalidRequest),
			"Invalid generation request: card_count must be between 1 and 16",
		},
		{
			"domain validation",
			domain.NewValidationError("name", "", domain.ErrCardSetNameEmpty),
			"Validation failed: name: card set name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessage_DoesNotLeakInternalDetails(t *testing.T) {
	err := service.NewServiceError("settings_service", "api_key", "failed to open API key",
		errors.New("decrypt AIzaSyD-secret-key-value failed"))

	msg := GetSafeErrorMessage(err)

	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "AIza")
}
