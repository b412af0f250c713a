package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gosimple/slug"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Export formats accepted by ExportCardSet.
const (
	ExportFormatJSON = "json"
	ExportFormatYAML = "yaml"
)

// CardSetHandler handles card set CRUD and export requests.
type CardSetHandler struct {
	sets   service.CardSetService
	logger *slog.Logger
}

// NewCardSetHandler creates a new CardSetHandler.
func NewCardSetHandler(sets service.CardSetService, log *slog.Logger) *CardSetHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CardSetHandler{
		sets:   sets,
		logger: log.With(slog.String("component", "card_set_handler")),
	}
}

// CreateCardSet handles POST /api/sets.
func (h *CardSetHandler) CreateCardSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateCardSetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	set, err := h.sets.CreateSet(r.Context(), userID, service.CardSetInput{
		Name:        req.Name,
		Cards:       cardsFromPayload(req.Cards),
		Language:    req.Language,
		AIGenerated: req.AIGenerated,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, cardSetToResponse(set))
}

// ListCardSets handles GET /api/sets.
func (h *CardSetHandler) ListCardSets(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sets, err := h.sets.ListSets(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list card sets")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CardSetListResponse{
		Sets: lo.Map(sets, cardSetToSummary),
	})
}

// GetCardSet handles GET /api/sets/{id}.
func (h *CardSetHandler) GetCardSet(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	set, err := h.sets.GetSet(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardSetToResponse(set))
}

// UpdateCardSet handles PUT /api/sets/{id}.
func (h *CardSetHandler) UpdateCardSet(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCardSetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	set, err := h.sets.UpdateSet(r.Context(), userID, setID, service.CardSetInput{
		Name:     req.Name,
		Cards:    cardsFromPayload(req.Cards),
		Language: req.Language,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardSetToResponse(set))
}

// DeleteCardSet handles DELETE /api/sets/{id}.
func (h *CardSetHandler) DeleteCardSet(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sets.DeleteSet(r.Context(), userID, setID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card set")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCardSet handles GET /api/sets/{id}/export?format=json|yaml and sends
// the set as a file download named after the set.
func (h *CardSetHandler) ExportCardSet(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = ExportFormatJSON
	}
	if format != ExportFormatJSON && format != ExportFormatYAML {
		HandleAPIError(w, r,
			domain.NewValidationError("format", "must be json or yaml", domain.ErrValidation), "")
		return
	}

	set, err := h.sets.GetSet(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export card set")
		return
	}

	body, contentType, err := encodeExport(set, format)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export card set")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("card set exported",
		slog.String("card_set_id", set.ID.String()),
		slog.String("format", format))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, exportFilename(set.Name, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func encodeExport(set *domain.CardSet, format string) ([]byte, string, error) {
	export := cardSetToExport(set)
	if format == ExportFormatYAML {
		body, err := yaml.Marshal(export)
		return body, "application/yaml", err
	}
	body, err := json.MarshalIndent(export, "", "  ")
	return body, "application/json", err
}

// exportFilename builds "<slug>.<ext>", falling back to "card-set" when the
// name has no sluggable characters.
func exportFilename(name, format string) string {
	base := slug.Make(name)
	if base == "" {
		base = "card-set"
	}
	return base + "." + format
}
