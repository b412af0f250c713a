package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgresCardSetStore implements store.CardSetStore. The cards of a set are
// kept in a JSONB column so a set is always read and written as one row.
type PostgresCardSetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardSetStore creates a new PostgreSQL implementation of the CardSetStore interface.
func NewPostgresCardSetStore(db store.DBTX, log *slog.Logger) *PostgresCardSetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PostgresCardSetStore{
		db:     db,
		logger: log.With(slog.String("component", "card_set_store")),
	}
}

var _ store.CardSetStore = (*PostgresCardSetStore)(nil)

const cardSetColumns = `id, user_id, name, cards, language, ai_generated, created_at, updated_at`

// Create implements store.CardSetStore.Create
func (s *PostgresCardSetStore) Create(ctx context.Context, set *domain.CardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	cards, err := json.Marshal(set.Cards)
	if err != nil {
		return fmt.Errorf("failed to encode cards: %w", err)
	}

	query := `
		INSERT INTO card_sets (` + cardSetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(ctx, query,
		set.ID,
		set.UserID,
		set.Name,
		cards,
		nullString(set.Language),
		set.AIGenerated,
		set.CreatedAt,
		set.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		log.Error("failed to insert card set",
			slog.String("card_set_id", set.ID.String()),
			slog.String("error", mapped.Error()))
		return fmt.Errorf("failed to create card set: %w", mapped)
	}

	log.Debug("card set created",
		slog.String("card_set_id", set.ID.String()),
		slog.Int("card_count", len(set.Cards)))
	return nil
}

// GetByID implements store.CardSetStore.GetByID
func (s *PostgresCardSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CardSet, error) {
	query := `SELECT ` + cardSetColumns + ` FROM card_sets WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByIDForUpdate implements store.CardSetStore.GetByIDForUpdate
func (s *PostgresCardSetStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.CardSet, error) {
	query := `SELECT ` + cardSetColumns + ` FROM card_sets WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, query, id)
}

// ListByUser implements store.CardSetStore.ListByUser
func (s *PostgresCardSetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + cardSetColumns + `
		FROM card_sets
		WHERE user_id = $1
		ORDER BY updated_at DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		mapped := MapError(err)
		log.Error("failed to list card sets", slog.String("error", mapped.Error()))
		return nil, fmt.Errorf("failed to list card sets: %w", mapped)
	}
	defer func() { _ = rows.Close() }()

	sets := make([]*domain.CardSet, 0)
	for rows.Next() {
		set, err := scanCardSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list card sets: %w", MapError(err))
	}
	return sets, nil
}

// Update implements store.CardSetStore.Update
func (s *PostgresCardSetStore) Update(ctx context.Context, set *domain.CardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	cards, err := json.Marshal(set.Cards)
	if err != nil {
		return fmt.Errorf("failed to encode cards: %w", err)
	}

	query := `
		UPDATE card_sets
		SET name = $2, cards = $3, language = $4, updated_at = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		set.ID,
		set.Name,
		cards,
		nullString(set.Language),
		set.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		log.Error("failed to update card set",
			slog.String("card_set_id", set.ID.String()),
			slog.String("error", mapped.Error()))
		return store.NewStoreError("card_set", "update", "failed to update card set",
			fmt.Errorf("%w: %w", store.ErrUpdateFailed, mapped))
	}
	return CheckRowsAffected(result, store.ErrCardSetNotFound)
}

// Delete implements store.CardSetStore.Delete
func (s *PostgresCardSetStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM card_sets WHERE id = $1`, id)
	if err != nil {
		mapped := MapError(err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete card set",
			slog.String("card_set_id", id.String()),
			slog.String("error", mapped.Error()))
		return store.NewStoreError("card_set", "delete", "failed to delete card set",
			fmt.Errorf("%w: %w", store.ErrDeleteFailed, mapped))
	}
	return CheckRowsAffected(result, store.ErrCardSetNotFound)
}

// WithTx implements store.CardSetStore.WithTx
func (s *PostgresCardSetStore) WithTx(tx *sql.Tx) store.CardSetStore {
	return &PostgresCardSetStore{db: tx, logger: s.logger}
}

func (s *PostgresCardSetStore) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.CardSet, error) {
	set, err := scanCardSet(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardSetNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query card set",
			slog.String("card_set_id", id.String()),
			slog.String("error", MapError(err).Error()))
		return nil, fmt.Errorf("failed to get card set: %w", MapError(err))
	}
	return set, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCardSet(row rowScanner) (*domain.CardSet, error) {
	var (
		set      domain.CardSet
		cards    []byte
		language sql.NullString
	)
	if err := row.Scan(
		&set.ID,
		&set.UserID,
		&set.Name,
		&cards,
		&language,
		&set.AIGenerated,
		&set.CreatedAt,
		&set.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cards, &set.Cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards of set %s: %w", set.ID, err)
	}
	set.Language = language.String
	return &set, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
