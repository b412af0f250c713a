package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/samber/lo"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	// ExpiresAt is the RFC 3339 time at which the access token expires.
	ExpiresAt string `json:"expires_at"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CardPayload is a card as submitted by clients. A missing ID is assigned
// when the set is saved.
type CardPayload struct {
	ID       uuid.UUID `json:"id,omitempty"`
	Question string    `json:"question" validate:"required"`
	Answer   string    `json:"answer"   validate:"required"`
}

// CreateCardSetRequest defines the payload for saving a new card set,
// including a reviewed AI-generated draft.
type CreateCardSetRequest struct {
	Name        string        `json:"name"         validate:"required"`
	Cards       []CardPayload `json:"cards"        validate:"required,min=1,dive"`
	Language    string        `json:"language"`
	AIGenerated bool          `json:"ai_generated"`
}

// UpdateCardSetRequest defines the payload for replacing a card set's contents.
type UpdateCardSetRequest struct {
	Name     string        `json:"name"     validate:"required"`
	Cards    []CardPayload `json:"cards"    validate:"required,min=1,dive"`
	Language string        `json:"language"`
}

// CardSetResponse is the full representation of a card set.
type CardSetResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Cards       []domain.Card `json:"cards"`
	CardCount   int           `json:"card_count"`
	Language    string        `json:"language,omitempty"`
	AIGenerated bool          `json:"ai_generated"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CardSetSummary is the list representation of a card set, without cards.
type CardSetSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CardCount   int       `json:"card_count"`
	Language    string    `json:"language,omitempty"`
	AIGenerated bool      `json:"ai_generated"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CardSetListResponse wraps the user's card sets.
type CardSetListResponse struct {
	Sets []CardSetSummary `json:"sets"`
}

// GenerateCardSetRequest defines the payload for drafting a set from text.
// Zero card_count and empty language use the generation defaults.
type GenerateCardSetRequest struct {
	Text      string `json:"text"       validate:"required,notblank"`
	SetName   string `json:"set_name"   validate:"required,notblank"`
	CardCount int    `json:"card_count" validate:"gte=0"`
	Language  string `json:"language"`
}

// SaveAPIKeyRequest defines the payload for storing the user's Gemini API key.
type SaveAPIKeyRequest struct {
	APIKey string `json:"api_key" validate:"required,notblank"`
}

// APIKeyStatusResponse reports whether a key is stored. The key itself is
// never returned.
type APIKeyStatusResponse struct {
	Configured bool `json:"configured"`
}

func cardsFromPayload(cards []CardPayload) []domain.Card {
	return lo.Map(cards, func(c CardPayload, _ int) domain.Card {
		return domain.Card{ID: c.ID, Question: c.Question, Answer: c.Answer}
	})
}

// CardSetExport is the downloadable form of a set. Both formats carry the
// same fields, and neither includes the owner.
type CardSetExport struct {
	ID          uuid.UUID    `json:"id"                 yaml:"id"`
	Name        string       `json:"name"               yaml:"name"`
	Language    string       `json:"language,omitempty" yaml:"language,omitempty"`
	AIGenerated bool         `json:"ai_generated"       yaml:"ai_generated"`
	CreatedAt   time.Time    `json:"created_at"         yaml:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"         yaml:"updated_at"`
	Cards       []CardExport `json:"cards"              yaml:"cards"`
}

// CardExport is one card inside a CardSetExport.
type CardExport struct {
	ID       uuid.UUID `json:"id"       yaml:"id"`
	Question string    `json:"question" yaml:"question"`
	Answer   string    `json:"answer"   yaml:"answer"`
}

func cardSetToExport(set *domain.CardSet) CardSetExport {
	return CardSetExport{
		ID:          set.ID,
		Name:        set.Name,
		Language:    set.Language,
		AIGenerated: set.AIGenerated,
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
		Cards: lo.Map(set.Cards, func(c domain.Card, _ int) CardExport {
			return CardExport{ID: c.ID, Question: c.Question, Answer: c.Answer}
		}),
	}
}

func cardSetToResponse(set *domain.CardSet) CardSetResponse {
	return CardSetResponse{
		ID:          set.ID,
		Name:        set.Name,
		Cards:       set.Cards,
		CardCount:   len(set.Cards),
		Language:    set.Language,
		AIGenerated: set.AIGenerated,
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
}

func cardSetToSummary(set *domain.CardSet, _ int) CardSetSummary {
	return CardSetSummary{
		ID:          set.ID,
		Name:        set.Name,
		CardCount:   len(set.Cards),
		Language:    set.Language,
		AIGenerated: set.AIGenerated,
		UpdatedAt:   set.UpdatedAt,
	}
}
