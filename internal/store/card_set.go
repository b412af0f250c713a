package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// CardSetStore defines the interface for card set persistence. Cards are
// stored as part of their set and are never addressed on their own.
type CardSetStore interface {
	// Create saves a new card set.
	Create(ctx context.Context, set *domain.CardSet) error

	// GetByID retrieves a card set by ID regardless of owner. Ownership is
	// enforced by the service layer.
	// Returns ErrCardSetNotFound if the set does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CardSet, error)

	// GetByIDForUpdate is like GetByID but locks the row until the enclosing
	// transaction ends. Only meaningful on a store returned by WithTx.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.CardSet, error)

	// ListByUser returns the user's card sets, most recently updated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error)

	// Update replaces the name, cards, language and updated_at of an existing set.
	// Returns ErrCardSetNotFound if the set does not exist.
	Update(ctx context.Context, set *domain.CardSet) error

	// Delete removes a card set.
	// Returns ErrCardSetNotFound if the set does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardSetStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CardSetStore
}
