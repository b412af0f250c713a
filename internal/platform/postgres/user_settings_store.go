package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgresUserSettingsStore implements store.UserSettingsStore.
// Only the sealed form of the API key is ever passed to the database.
type PostgresUserSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserSettingsStore creates a new PostgreSQL implementation of the UserSettingsStore interface.
func NewPostgresUserSettingsStore(db store.DBTX, log *slog.Logger) *PostgresUserSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresUserSettingsStore{
		db:     db,
		logger: log.With(slog.String("component", "user_settings_store")),
	}
}

var _ store.UserSettingsStore = (*PostgresUserSettingsStore)(nil)

// Get implements store.UserSettingsStore.Get
func (s *PostgresUserSettingsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	query := `
		SELECT user_id, gemini_api_key_sealed, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`
	var settings domain.UserSettings
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.SealedAPIKey,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSettingsNotFound
		}
		mapped := MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query user settings",
			slog.String("user_id", userID.String()),
			slog.String("error", mapped.Error()))
		return nil, fmt.Errorf("failed to get user settings: %w", mapped)
	}
	return &settings, nil
}

// Upsert implements store.UserSettingsStore.Upsert
func (s *PostgresUserSettingsStore) Upsert(ctx context.Context, settings *domain.UserSettings) error {
	if settings.UserID == uuid.Nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrEmptyUserID)
	}

	query := `
		INSERT INTO user_settings (user_id, gemini_api_key_sealed, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET gemini_api_key_sealed = EXCLUDED.gemini_api_key_sealed,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		settings.UserID,
		settings.SealedAPIKey,
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to upsert user settings",
			slog.String("user_id", settings.UserID.String()),
			slog.String("error", mapped.Error()))
		return fmt.Errorf("failed to save user settings: %w", mapped)
	}
	return nil
}

// Delete implements store.UserSettingsStore.Delete
func (s *PostgresUserSettingsStore) Delete(ctx context.Context, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_settings WHERE user_id = $1`, userID)
	if err != nil {
		return store.NewStoreError("user_settings", "delete", "failed to delete user settings",
			fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err)))
	}
	return CheckRowsAffected(result, store.ErrSettingsNotFound)
}

// WithTx implements store.UserSettingsStore.WithTx
func (s *PostgresUserSettingsStore) WithTx(tx *sql.Tx) store.UserSettingsStore {
	return &PostgresUserSettingsStore{db: tx, logger: s.logger}
}
