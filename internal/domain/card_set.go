package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxSetNameLength is the longest allowed card set name, in characters.
const MaxSetNameLength = 100

// Card set validation errors
var (
	ErrCardSetIDEmpty     = errors.New("card set ID cannot be empty")
	ErrCardSetUserIDEmpty = errors.New("card set user ID cannot be empty")
	ErrCardSetNameEmpty   = errors.New("card set name cannot be empty")
	ErrCardSetNameTooLong = errors.New("card set name must be at most 100 characters")
	ErrCardSetNoCards     = errors.New("card set must contain at least one card")
)

// CardSet is a named, ordered collection of cards owned by one user.
type CardSet struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Cards       []Card    `json:"cards"`
	Language    string    `json:"language,omitempty"`
	AIGenerated bool      `json:"ai_generated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCardSet creates a new CardSet owned by userID. Cards without an ID get
// a fresh one. Returns an error if validation fails.
func NewCardSet(userID uuid.UUID, name string, cards []Card, language string, aiGenerated bool) (*CardSet, error) {
	now := time.Now().UTC()
	set := &CardSet{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Cards:       AssignCardIDs(cards),
		Language:    strings.TrimSpace(language),
		AIGenerated: aiGenerated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Validate checks if the CardSet has valid data.
// Card errors are wrapped with the offending card's 1-based position.
func (s *CardSet) Validate() error {
	if s.ID == uuid.Nil {
		return NewValidationError("id", "", ErrCardSetIDEmpty)
	}
	if s.UserID == uuid.Nil {
		return NewValidationError("user_id", "", ErrCardSetUserIDEmpty)
	}
	if err := ValidateSetName(s.Name); err != nil {
		return NewValidationError("name", "", err)
	}
	if len(s.Cards) == 0 {
		return NewValidationError("cards", "", ErrCardSetNoCards)
	}
	for i := range s.Cards {
		if err := s.Cards[i].Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i+1, err)
		}
	}
	return nil
}

// Update replaces the editable fields of the set and bumps UpdatedAt.
// The set is left unchanged if the new contents are invalid.
func (s *CardSet) Update(name string, cards []Card, language string) error {
	updated := *s
	updated.Name = strings.TrimSpace(name)
	updated.Cards = AssignCardIDs(cards)
	updated.Language = strings.TrimSpace(language)

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*s = updated
	return nil
}

// AssignCardIDs returns a copy of cards in which every card has a non-nil ID.
func AssignCardIDs(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		out[i] = c
	}
	return out
}

// ValidateSetName checks that name is non-blank and at most MaxSetNameLength characters.
func ValidateSetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrCardSetNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxSetNameLength {
		return ErrCardSetNameTooLong
	}
	return nil
}
