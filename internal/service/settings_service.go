package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/secrets"
	"github.com/phrazzld/flashdeck/internal/store"
)

// ErrEmptyAPIKey is returned when a blank API key is submitted.
var ErrEmptyAPIKey = domain.NewValidationError("api_key", "API key cannot be empty", domain.ErrValidation)

// SettingsService manages the per-user model API key. The plaintext key is
// never stored and never returned to clients; APIKey exists for the
// generation workflow only.
type SettingsService interface {
	// SaveAPIKey seals and stores the key, replacing any previous one.
	SaveAPIKey(ctx context.Context, userID uuid.UUID, apiKey string) error

	// HasAPIKey reports whether the user has stored a key.
	HasAPIKey(ctx context.Context, userID uuid.UUID) (bool, error)

	// DeleteAPIKey removes the stored key. Deleting a missing key is not an error.
	DeleteAPIKey(ctx context.Context, userID uuid.UUID) error

	// APIKey returns the plaintext key. Returns ErrAPIKeyMissing if none is stored.
	APIKey(ctx context.Context, userID uuid.UUID) (string, error)
}

type settingsServiceImpl struct {
	settings store.UserSettingsStore
	sealer   *secrets.Sealer
	now      func() time.Time
	logger   *slog.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(
	settings store.UserSettingsStore,
	sealer *secrets.Sealer,
	log *slog.Logger,
) (SettingsService, error) {
	if settings == nil {
		return nil, domain.NewValidationError("settings", "cannot be nil", domain.ErrValidation)
	}
	if sealer == nil {
		return nil, domain.NewValidationError("sealer", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &settingsServiceImpl{
		settings: settings,
		sealer:   sealer,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   log.With(slog.String("component", "settings_service")),
	}, nil
}

// SaveAPIKey implements SettingsService.SaveAPIKey
func (s *settingsServiceImpl) SaveAPIKey(ctx context.Context, userID uuid.UUID, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return ErrEmptyAPIKey
	}

	sealed, err := s.sealer.Seal(apiKey, userID.String())
	if err != nil {
		return NewServiceError("settings_service", "save_api_key", "failed to seal API key", err)
	}

	now := s.now()
	err = s.settings.Upsert(ctx, &domain.UserSettings{
		UserID:       userID,
		SealedAPIKey: sealed,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return NewServiceError("settings_service", "save_api_key", "failed to store API key", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("API key saved",
		slog.String("user_id", userID.String()))
	return nil
}

// HasAPIKey implements SettingsService.HasAPIKey
func (s *settingsServiceImpl) HasAPIKey(ctx context.Context, userID uuid.UUID) (bool, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			return false, nil
		}
		return false, NewServiceError("settings_service", "has_api_key", "failed to load settings", err)
	}
	return settings.HasAPIKey(), nil
}

// DeleteAPIKey implements SettingsService.DeleteAPIKey
func (s *settingsServiceImpl) DeleteAPIKey(ctx context.Context, userID uuid.UUID) error {
	err := s.settings.Delete(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrSettingsNotFound) {
		return NewServiceError("settings_service", "delete_api_key", "failed to delete API key", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("API key deleted",
		slog.String("user_id", userID.String()))
	return nil
}

// APIKey implements SettingsService.APIKey
func (s *settingsServiceImpl) APIKey(ctx context.Context, userID uuid.UUID) (string, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			return "", ErrAPIKeyMissing
		}
		return "", NewServiceError("settings_service", "api_key", "failed to load settings", err)
	}
	if !settings.HasAPIKey() {
		return "", ErrAPIKeyMissing
	}

	plaintext, err := s.sealer.Open(settings.SealedAPIKey, userID.String())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("stored API key could not be opened",
			slog.String("user_id", userID.String()))
		return "", NewServiceError("settings_service", "api_key", "failed to open API key", err)
	}
	return plaintext, nil
}
