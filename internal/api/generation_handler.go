package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/service"
)

// GenerationHandler drafts card sets from source text.
type GenerationHandler struct {
	generation service.GenerationService
	logger     *slog.Logger
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generation service.GenerationService, log *slog.Logger) *GenerationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &GenerationHandler{
		generation: generation,
		logger:     log.With(slog.String("component", "generation_handler")),
	}
}

// GenerateCardSet handles POST /api/sets/generate. The response is an unsaved
// draft for the user to review and then save through POST /api/sets.
func (h *GenerationHandler) GenerateCardSet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateCardSetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	draft, err := h.generation.GenerateDraft(r.Context(), userID, service.GenerateInput{
		Text:      req.Text,
		SetName:   req.SetName,
		CardCount: req.CardCount,
		Language:  req.Language,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate cards")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cardSetToResponse(draft))
}

// GetOptions handles GET /api/generation/options.
func (h *GenerationHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.generation.Options())
}
