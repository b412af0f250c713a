package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// asUser is a test middleware that authenticates every request as userID.
func asUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newUserRouter(userID uuid.UUID) chi.Router {
	r := chi.NewRouter()
	if userID != uuid.Nil {
		r.Use(asUser(userID))
	}
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// stubCardSetService is a CardSetService with function fields.
type stubCardSetService struct {
	CreateSetFn func(ctx context.Context, userID uuid.UUID, input service.CardSetInput) (*domain.CardSet, error)
	GetSetFn    func(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error)
	ListSetsFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error)
	UpdateSetFn func(ctx context.Context, userID, setID uuid.UUID, input service.CardSetInput) (*domain.CardSet, error)
	DeleteSetFn func(ctx context.Context, userID, setID uuid.UUID) error
}

var _ service.CardSetService = (*stubCardSetService)(nil)

func (s *stubCardSetService) CreateSet(ctx context.Context, userID uuid.UUID, input service.CardSetInput) (*domain.CardSet, error) {
	return s.CreateSetFn(ctx, userID, input)
}

func (s *stubCardSetService) GetSet(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error) {
	return s.GetSetFn(ctx, userID, setID)
}

func (s *stubCardSetService) ListSets(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	return s.ListSetsFn(ctx, userID)
}

func (s *stubCardSetService) UpdateSet(ctx context.Context, userID, setID uuid.UUID, input service.CardSetInput) (*domain.CardSet, error) {
	return s.UpdateSetFn(ctx, userID, setID, input)
}

func (s *stubCardSetService) DeleteSet(ctx context.Context, userID, setID uuid.UUID) error {
	return s.DeleteSetFn(ctx, userID, setID)
}

func sampleSet(t *testing.T, userID uuid.UUID, name string, n int) *domain.CardSet {
	t.Helper()
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = domain.Card{Question: "Question " + string(rune('A'+i)), Answer: "Answer " + string(rune('A'+i))}
	}
	set, err := domain.NewCardSet(userID, name, cards, "English", false)
	require.NoError(t, err)
	return set
}
