package practice

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// ErrEmptySet is returned when a session is started on a set without cards.
var ErrEmptySet = errors.New("card set has no cards to practice")

// Session is the state of one practice run. It is not safe for concurrent
// use; Manager serializes access.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SetID     uuid.UUID
	SetName   string
	StartedAt time.Time

	source     []domain.Card
	cards      []domain.Card
	index      int
	revealed   bool
	lastActive time.Time
	lastUse    uint64
	rng        *rand.Rand
}

// View is what a client sees of the current card. Answer is empty until the
// card has been revealed.
type View struct {
	SessionID uuid.UUID `json:"session_id"`
	SetID     uuid.UUID `json:"set_id"`
	SetName   string    `json:"set_name"`
	Position  int       `json:"position"`
	Total     int       `json:"total"`
	Progress  float64   `json:"progress"`
	CardID    uuid.UUID `json:"card_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer,omitempty"`
	Revealed  bool      `json:"revealed"`
	IsFirst   bool      `json:"is_first"`
	IsLast    bool      `json:"is_last"`
}

// NewSession starts a session over a copy of the set's cards, shuffled with rng.
func NewSession(userID uuid.UUID, set *domain.CardSet, rng *rand.Rand, now time.Time) (*Session, error) {
	if len(set.Cards) == 0 {
		return nil, ErrEmptySet
	}
	s := &Session{
		ID:         uuid.New(),
		UserID:     userID,
		SetID:      set.ID,
		SetName:    set.Name,
		StartedAt:  now,
		source:     append([]domain.Card(nil), set.Cards...),
		lastActive: now,
		rng:        rng,
	}
	s.shuffle()
	return s, nil
}

// ToggleReveal shows the answer if hidden and hides it if shown.
func (s *Session) ToggleReveal() {
	s.revealed = !s.revealed
}

// Next moves to the following card and hides the answer.
// It does nothing on the last card.
func (s *Session) Next() {
	if s.index < len(s.cards)-1 {
		s.index++
		s.revealed = false
	}
}

// Previous moves to the preceding card and hides the answer.
// It does nothing on the first card.
func (s *Session) Previous() {
	if s.index > 0 {
		s.index--
		s.revealed = false
	}
}

// Restart reshuffles the cards and returns to the first one.
func (s *Session) Restart() {
	s.shuffle()
}

// View returns the current card as seen by the client.
func (s *Session) View() View {
	card := s.cards[s.index]
	v := View{
		SessionID: s.ID,
		SetID:     s.SetID,
		SetName:   s.SetName,
		Position:  s.index + 1,
		Total:     len(s.cards),
		Progress:  float64(s.index+1) / float64(len(s.cards)) * 100,
		CardID:    card.ID,
		Question:  card.Question,
		Revealed:  s.revealed,
		IsFirst:   s.index == 0,
		IsLast:    s.index == len(s.cards)-1,
	}
	if s.revealed {
		v.Answer = card.Answer
	}
	return v
}

func (s *Session) shuffle() {
	s.cards = append(s.cards[:0], s.source...)
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	s.index = 0
	s.revealed = false
}
