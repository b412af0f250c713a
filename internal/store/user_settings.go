package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// UserSettingsStore persists per-user settings, including the sealed model API key.
type UserSettingsStore interface {
	// Get returns the user's settings.
	// Returns ErrSettingsNotFound if none have been saved.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	// Upsert creates or replaces the user's settings.
	Upsert(ctx context.Context, settings *domain.UserSettings) error

	// Delete removes the user's settings.
	// Returns ErrSettingsNotFound if none have been saved.
	Delete(ctx context.Context, userID uuid.UUID) error

	// WithTx returns a new UserSettingsStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserSettingsStore
}
