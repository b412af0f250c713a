package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/practice"
	"github.com/phrazzld/flashdeck/internal/service"
)

// PracticeSessions is the session store used by PracticeHandler.
// *practice.Manager implements it.
type PracticeSessions interface {
	StartSession(userID uuid.UUID, set *domain.CardSet) (practice.View, error)
	Current(userID, sessionID uuid.UUID) (practice.View, error)
	Reveal(userID, sessionID uuid.UUID) (practice.View, error)
	Next(userID, sessionID uuid.UUID) (practice.View, error)
	Previous(userID, sessionID uuid.UUID) (practice.View, error)
	Restart(userID, sessionID uuid.UUID) (practice.View, error)
	End(userID, sessionID uuid.UUID) error
}

var _ PracticeSessions = (*practice.Manager)(nil)

// PracticeHandler runs practice sessions over the user's card sets.
type PracticeHandler struct {
	sets     service.CardSetService
	sessions PracticeSessions
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(sets service.CardSetService, sessions PracticeSessions) *PracticeHandler {
	return &PracticeHandler{sets: sets, sessions: sessions}
}

// StartPractice handles POST /api/sets/{id}/practice.
func (h *PracticeHandler) StartPractice(w http.ResponseWriter, r *http.Request) {
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	set, err := h.sets.GetSet(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start practice")
		return
	}

	view, err := h.sessions.StartSession(userID, set)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start practice")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetSession handles GET /api/practice/{sessionID}.
func (h *PracticeHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.sessions.Current)
}

// Reveal handles POST /api/practice/{sessionID}/reveal.
func (h *PracticeHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.sessions.Reveal)
}

// Next handles POST /api/practice/{sessionID}/next.
func (h *PracticeHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.sessions.Next)
}

// Previous handles POST /api/practice/{sessionID}/previous.
func (h *PracticeHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.sessions.Previous)
}

// Restart handles POST /api/practice/{sessionID}/restart.
func (h *PracticeHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.sessions.Restart)
}

// EndSession handles DELETE /api/practice/{sessionID}.
func (h *PracticeHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	if err := h.sessions.End(userID, sessionID); err != nil {
		HandleAPIError(w, r, err, "Failed to end practice session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PracticeHandler) step(
	w http.ResponseWriter,
	r *http.Request,
	op func(userID, sessionID uuid.UUID) (practice.View, error),
) {
	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	view, err := op(userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update practice session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
