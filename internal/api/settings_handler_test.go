package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/mocks"
	"github.com/phrazzld/flashdeck/internal/secrets"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsRouter(t *testing.T, userID uuid.UUID, st *mocks.MockUserSettingsStore) http.Handler {
	t.Helper()

	sealer, err := secrets.NewSealer(testMasterKey)
	require.NoError(t, err)
	svc, err := service.NewSettingsService(st, sealer, discardLogger())
	require.NoError(t, err)

	h := NewSettingsHandler(svc)
	r := newUserRouter(userID)
	r.Get("/api/settings/api-key", h.GetAPIKeyStatus)
	r.Put("/api/settings/api-key", h.SaveAPIKey)
	r.Delete("/api/settings/api-key", h.DeleteAPIKey)
	return r
}

func TestAPIKeyLifecycle(t *testing.T) {
	userID := uuid.New()
	st := mocks.NewMockUserSettingsStore()
	router := settingsRouter(t, userID, st)

	rec := doRequest(t, router, http.MethodGet, "/api/settings/api-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeBody[APIKeyStatusResponse](t, rec).Configured)

	rec = doRequest(t, router, http.MethodPut, "/api/settings/api-key", SaveAPIKeyRequest{APIKey: "AIzaSecretValue"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[APIKeyStatusResponse](t, rec).Configured)

	stored := st.Settings[userID]
	require.NotNil(t, stored)
	assert.NotContains(t, string(stored.SealedAPIKey), "AIzaSecretValue")

	rec = doRequest(t, router, http.MethodGet, "/api/settings/api-key", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"configured":true}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/api/settings/api-key", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/settings/api-key", nil)
	assert.False(t, decodeBody[APIKeyStatusResponse](t, rec).Configured)

	// Deleting again is not an error.
	rec = doRequest(t, router, http.MethodDelete, "/api/settings/api-key", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSaveAPIKey_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		upsertErr  error
		wantStatus int
	}{
		{"missing key", `{}`, nil, http.StatusBadRequest},
		{"blank key", SaveAPIKeyRequest{APIKey: "   "}, nil, http.StatusBadRequest},
		{"store failure", SaveAPIKeyRequest{APIKey: "AIzaSecretValue"}, errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := mocks.NewMockUserSettingsStore()
			if tt.upsertErr != nil {
				st.UpsertFn = func(context.Context, *domain.UserSettings) error { return tt.upsertErr }
			}

			rec := doRequest(t, settingsRouter(t, uuid.New(), st), http.MethodPut, "/api/settings/api-key", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "AIzaSecretValue")
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}
