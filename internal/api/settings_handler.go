package api

import (
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/service"
)

// SettingsHandler manages the user's Gemini API key.
type SettingsHandler struct {
	settings service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetAPIKeyStatus handles GET /api/settings/api-key.
func (h *SettingsHandler) GetAPIKeyStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	configured, err := h.settings.HasAPIKey(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, APIKeyStatusResponse{Configured: configured})
}

// SaveAPIKey handles PUT /api/settings/api-key.
func (h *SettingsHandler) SaveAPIKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SaveAPIKeyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.settings.SaveAPIKey(r.Context(), userID, req.APIKey); err != nil {
		HandleAPIError(w, r, err, "Failed to save API key")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, APIKeyStatusResponse{Configured: true})
}

// DeleteAPIKey handles DELETE /api/settings/api-key.
func (h *SettingsHandler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.settings.DeleteAPIKey(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete API key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
