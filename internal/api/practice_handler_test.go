package api

import (
	"context"
	"math/rand/v2"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/practice"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func practiceRouter(userID uuid.UUID, sets service.CardSetService, manager *practice.Manager) http.Handler {
	h := NewPracticeHandler(sets, manager)
	r := newUserRouter(userID)
	r.Post("/api/sets/{id}/practice", h.StartPractice)
	r.Get("/api/practice/{sessionID}", h.GetSession)
	r.Delete("/api/practice/{sessionID}", h.EndSession)
	r.Post("/api/practice/{sessionID}/reveal", h.Reveal)
	r.Post("/api/practice/{sessionID}/next", h.Next)
	r.Post("/api/practice/{sessionID}/previous", h.Previous)
	r.Post("/api/practice/{sessionID}/restart", h.Restart)
	return r
}

func newTestManager() *practice.Manager {
	return practice.NewManager(practice.ManagerConfig{SessionTTL: time.Hour}, discardLogger(),
		practice.WithRand(rand.New(rand.NewPCG(7, 11))))
}

func setLookup(set *domain.CardSet) *stubCardSetService {
	return &stubCardSetService{
		GetSetFn: func(_ context.Context, userID, setID uuid.UUID) (*domain.CardSet, error) {
			if setID != set.ID || userID != set.UserID {
				return nil, service.ErrNotOwned
			}
			return set, nil
		},
	}
}

func TestPracticeSessionFlow(t *testing.T) {
	userID := uuid.New()
	set := sampleSet(t, userID, "Flow", 3)
	manager := newTestManager()
	router := practiceRouter(userID, setLookup(set), manager)

	rec := doRequest(t, router, http.MethodPost, "/api/sets/"+set.ID.String()+"/practice", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := decodeBody[practice.View](t, rec)
	assert.Equal(t, 1, view.Position)
	assert.Equal(t, 3, view.Total)
	assert.False(t, view.Revealed)
	assert.Empty(t, view.Answer)
	assert.True(t, view.IsFirst)

	base := "/api/practice/" + view.SessionID.String()

	rec = doRequest(t, router, http.MethodPost, base+"/reveal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	revealed := decodeBody[practice.View](t, rec)
	assert.True(t, revealed.Revealed)
	assert.NotEmpty(t, revealed.Answer)

	rec = doRequest(t, router, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeBody[practice.View](t, rec)
	assert.Equal(t, 2, second.Position)
	assert.False(t, second.Revealed, "moving hides the answer")

	rec = doRequest(t, router, http.MethodPost, base+"/next", nil)
	third := decodeBody[practice.View](t, rec)
	assert.True(t, third.IsLast)
	assert.InDelta(t, 100.0, third.Progress, 0.001)

	rec = doRequest(t, router, http.MethodPost, base+"/next", nil)
	assert.Equal(t, 3, decodeBody[practice.View](t, rec).Position, "next on the last card is a no-op")

	rec = doRequest(t, router, http.MethodPost, base+"/previous", nil)
	assert.Equal(t, 2, decodeBody[practice.View](t, rec).Position)

	rec = doRequest(t, router, http.MethodPost, base+"/restart", nil)
	restarted := decodeBody[practice.View](t, rec)
	assert.Equal(t, 1, restarted.Position)
	assert.False(t, restarted.Revealed)

	rec = doRequest(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPracticeSession_OtherUserCannotAccess(t *testing.T) {
	owner := uuid.New()
	set := sampleSet(t, owner, "Private", 2)
	manager := newTestManager()

	rec := doRequest(t, practiceRouter(owner, setLookup(set), manager),
		http.MethodPost, "/api/sets/"+set.ID.String()+"/practice", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionID := decodeBody[practice.View](t, rec).SessionID

	intruder := practiceRouter(uuid.New(), setLookup(set), manager)

	rec = doRequest(t, intruder, http.MethodGet, "/api/practice/"+sessionID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, intruder, http.MethodPost, "/api/sets/"+set.ID.String()+"/practice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartPractice_EmptySet(t *testing.T) {
	userID := uuid.New()
	empty := &domain.CardSet{ID: uuid.New(), UserID: userID, Name: "Empty"}

	rec := doRequest(t, practiceRouter(userID, setLookup(empty), newTestManager()),
		http.MethodPost, "/api/sets/"+empty.ID.String()+"/practice", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Card set has no cards to practice", decodeBody[map[string]string](t, rec)["error"])
}
