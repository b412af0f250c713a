package service

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

// CardSetInput carries the user-editable fields of a card set.
type CardSetInput struct {
	Name        string
	Cards       []domain.Card
	Language    string
	AIGenerated bool
}

// CardSetService provides card set operations scoped to the requesting user.
// A set owned by someone else is reported as ErrNotOwned, which the API layer
// treats as not found.
type CardSetService interface {
	// CreateSet validates and saves a new set owned by userID.
	CreateSet(ctx context.Context, userID uuid.UUID, input CardSetInput) (*domain.CardSet, error)

	// GetSet returns one of the user's sets.
	GetSet(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error)

	// ListSets returns the user's sets, most recently updated first.
	ListSets(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error)

	// UpdateSet replaces name, cards and language of one of the user's sets.
	// AIGenerated is kept from the stored set.
	UpdateSet(ctx context.Context, userID, setID uuid.UUID, input CardSetInput) (*domain.CardSet, error)

	// DeleteSet removes one of the user's sets.
	DeleteSet(ctx context.Context, userID, setID uuid.UUID) error
}

type cardSetServiceImpl struct {
	sets   store.CardSetStore
	db     *sql.DB
	logger *slog.Logger
}

// NewCardSetService creates a new CardSetService.
// It returns an error if any of the required dependencies are nil.
func NewCardSetService(sets store.CardSetStore, db *sql.DB, log *slog.Logger) (CardSetService, error) {
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &cardSetServiceImpl{
		sets:   sets,
		db:     db,
		logger: log.With(slog.String("component", "card_set_service")),
	}, nil
}

// CreateSet implements CardSetService.CreateSet
func (s *cardSetServiceImpl) CreateSet(
	ctx context.Context,
	userID uuid.UUID,
	input CardSetInput,
) (*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := domain.NewCardSet(userID, input.Name, input.Cards, input.Language, input.AIGenerated)
	if err != nil {
		return nil, err
	}

	if err := s.sets.Create(ctx, set); err != nil {
		log.Error("failed to create card set", slog.String("error", err.Error()))
		return nil, NewServiceError("card_set_service", "create", "failed to save card set", err)
	}

	log.Info("card set created",
		slog.String("card_set_id", set.ID.String()),
		slog.Int("card_count", len(set.Cards)),
		slog.Bool("ai_generated", set.AIGenerated))
	return set, nil
}

// GetSet implements CardSetService.GetSet
func (s *cardSetServiceImpl) GetSet(ctx context.Context, userID, setID uuid.UUID) (*domain.CardSet, error) {
	set, err := s.sets.GetByID(ctx, setID)
	if err != nil {
		return nil, err
	}
	if set.UserID != userID {
		logger.FromContextOrDefault(ctx, s.logger).Debug("card set requested by non-owner",
			slog.String("card_set_id", setID.String()))
		return nil, ErrNotOwned
	}
	return set, nil
}

// ListSets implements CardSetService.ListSets
func (s *cardSetServiceImpl) ListSets(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	sets, err := s.sets.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("card_set_service", "list", "failed to list card sets", err)
	}
	return sets, nil
}

// UpdateSet implements CardSetService.UpdateSet
// The read and write happen in one transaction with the row locked.
func (s *cardSetServiceImpl) UpdateSet(
	ctx context.Context,
	userID, setID uuid.UUID,
	input CardSetInput,
) (*domain.CardSet, error) {
	var updated *domain.CardSet

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txSets := s.sets.WithTx(tx)

		set, err := txSets.GetByIDForUpdate(ctx, setID)
		if err != nil {
			return err
		}
		if set.UserID != userID {
			return ErrNotOwned
		}
		if err := set.Update(input.Name, input.Cards, input.Language); err != nil {
			return err
		}
		if err := txSets.Update(ctx, set); err != nil {
			return err
		}
		updated = set
		return nil
	})
	if err != nil {
		return nil, s.classify(ctx, "update", setID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("card set updated",
		slog.String("card_set_id", setID.String()),
		slog.Int("card_count", len(updated.Cards)))
	return updated, nil
}

// DeleteSet implements CardSetService.DeleteSet
func (s *cardSetServiceImpl) DeleteSet(ctx context.Context, userID, setID uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txSets := s.sets.WithTx(tx)

		set, err := txSets.GetByIDForUpdate(ctx, setID)
		if err != nil {
			return err
		}
		if set.UserID != userID {
			return ErrNotOwned
		}
		return txSets.Delete(ctx, setID)
	})
	if err != nil {
		return s.classify(ctx, "delete", setID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("card set deleted",
		slog.String("card_set_id", setID.String()))
	return nil
}

// classify passes expected outcomes through untouched and wraps the rest.
func (s *cardSetServiceImpl) classify(ctx context.Context, op string, setID uuid.UUID, err error) error {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, ErrNotOwned),
		errors.Is(err, store.ErrCardSetNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.As(err, &validationErr):
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Error(fmt.Sprintf("failed to %s card set", op),
		slog.String("card_set_id", setID.String()),
		slog.String("error", err.Error()))
	return NewServiceError("card_set_service", op, "failed to "+op+" card set", err)
}
