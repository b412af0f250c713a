package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Card field limits.
const (
	MaxQuestionLength = 500
	MaxAnswerLength   = 1000
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardQuestionEmpty is returned when a card has no question text.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card has no answer text.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")

	// ErrCardFieldTooLong is returned when a question or answer exceeds its limit.
	ErrCardFieldTooLong = errors.New("card field too long")
)

// Card is a single question/answer pair inside a card set.
// Cards have no identity outside their set; the ID only keeps them
// stable across edits and practice sessions.
type Card struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
}

// NewCard creates a Card with a fresh ID.
func NewCard(question, answer string) (*Card, error) {
	card := &Card{
		ID:       uuid.New(),
		Question: question,
		Answer:   answer,
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

// Validate checks if the Card has valid data.
// Failures are *ValidationError values wrapping one of the sentinels above.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "", ErrCardIDEmpty)
	}
	if strings.TrimSpace(c.Question) == "" {
		return NewValidationError("question", "", ErrCardQuestionEmpty)
	}
	if strings.TrimSpace(c.Answer) == "" {
		return NewValidationError("answer", "", ErrCardAnswerEmpty)
	}
	if utf8.RuneCountInString(c.Question) > MaxQuestionLength {
		return NewValidationError("question", "must be at most 500 characters", ErrCardFieldTooLong)
	}
	if utf8.RuneCountInString(c.Answer) > MaxAnswerLength {
		return NewValidationError("answer", "must be at most 1000 characters", ErrCardFieldTooLong)
	}
	return nil
}
