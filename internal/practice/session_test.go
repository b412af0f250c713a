package practice

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet(t *testing.T, n int) *domain.CardSet {
	t.Helper()
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = domain.Card{Question: fmt.Sprintf("Q%d", i+1), Answer: fmt.Sprintf("A%d", i+1)}
	}
	set, err := domain.NewCardSet(uuid.New(), "Practice set", cards, "", false)
	require.NoError(t, err)
	return set
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func questions(s *Session) []string {
	out := make([]string, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.Question
	}
	return out
}

func TestNewSessionShufflesAllCards(t *testing.T) {
	set := testSet(t, 10)
	s, err := NewSession(set.UserID, set, seeded(), time.Now())
	require.NoError(t, err)

	want := make([]string, 0, 10)
	for _, c := range set.Cards {
		want = append(want, c.Question)
	}
	assert.ElementsMatch(t, want, questions(s))

	v := s.View()
	assert.Equal(t, 1, v.Position)
	assert.Equal(t, 10, v.Total)
	assert.InDelta(t, 10.0, v.Progress, 0.001)
	assert.False(t, v.Revealed)
	assert.Empty(t, v.Answer)
	assert.True(t, v.IsFirst)
	assert.False(t, v.IsLast)
}

func TestNewSessionDoesNotReorderSet(t *testing.T) {
	set := testSet(t, 8)
	before := append([]domain.Card(nil), set.Cards...)

	_, err := NewSession(set.UserID, set, seeded(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, before, set.Cards)
}

func TestNewSessionRejectsEmptySet(t *testing.T) {
	set := testSet(t, 1)
	set.Cards = nil

	_, err := NewSession(set.UserID, set, seeded(), time.Now())
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestSessionNavigation(t *testing.T) {
	set := testSet(t, 3)
	s, err := NewSession(set.UserID, set, seeded(), time.Now())
	require.NoError(t, err)

	s.Previous()
	assert.Equal(t, 1, s.View().Position, "previous on the first card is a no-op")

	s.ToggleReveal()
	v := s.View()
	assert.True(t, v.Revealed)
	assert.NotEmpty(t, v.Answer)

	s.Next()
	v = s.View()
	assert.Equal(t, 2, v.Position)
	assert.False(t, v.Revealed, "moving hides the answer")
	assert.Empty(t, v.Answer)

	s.Next()
	v = s.View()
	assert.Equal(t, 3, v.Position)
	assert.True(t, v.IsLast)
	assert.InDelta(t, 100.0, v.Progress, 0.001)

	s.ToggleReveal()
	s.Next()
	v = s.View()
	assert.Equal(t, 3, v.Position, "next on the last card is a no-op")
	assert.True(t, v.Revealed, "a no-op move keeps the answer visible")

	s.ToggleReveal()
	assert.False(t, s.View().Revealed)

	s.Previous()
	assert.Equal(t, 2, s.View().Position)
}

func TestSessionRevealMatchesCard(t *testing.T) {
	set := testSet(t, 5)
	s, err := NewSession(set.UserID, set, seeded(), time.Now())
	require.NoError(t, err)

	answers := make(map[string]string)
	for _, c := range set.Cards {
		answers[c.Question] = c.Answer
	}

	for i := 0; i < 5; i++ {
		s.ToggleReveal()
		v := s.View()
		assert.Equal(t, answers[v.Question], v.Answer)
		s.Next()
	}
}

func TestSessionRestart(t *testing.T) {
	set := testSet(t, 6)
	s, err := NewSession(set.UserID, set, seeded(), time.Now())
	require.NoError(t, err)

	s.Next()
	s.Next()
	s.ToggleReveal()
	s.Restart()

	v := s.View()
	assert.Equal(t, 1, v.Position)
	assert.False(t, v.Revealed)
	assert.Len(t, s.cards, 6)
	assert.ElementsMatch(t, questions(s), []string{"Q1", "Q2", "Q3", "Q4", "Q5", "Q6"})
}

func TestSessionSingleCard(t *testing.T) {
	set := testSet(t, 1)
	s, err := NewSession(set.UserID, set, seeded(), time.Now())
	require.NoError(t, err)

	v := s.View()
	assert.True(t, v.IsFirst)
	assert.True(t, v.IsLast)
	assert.InDelta(t, 100.0, v.Progress, 0.001)
}
