package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/samber/lo"
)

// GenerateInput is a user's request to draft a card set from text.
// Zero CardCount and empty Language fall back to the generation defaults.
type GenerateInput struct {
	Text      string
	SetName   string
	CardCount int
	Language  string
}

// GenerationOptions describes the limits a client should offer.
type GenerationOptions struct {
	MaxCardCount       int      `json:"max_card_count"`
	DefaultCardCount   int      `json:"default_card_count"`
	MaxTextLength      int      `json:"max_text_length"`
	DefaultLanguage    string   `json:"default_language"`
	SuggestedLanguages []string `json:"suggested_languages"`
}

// GenerationService drafts card sets with the user's own model API key.
type GenerationService interface {
	// GenerateDraft calls the card generator and returns an unsaved set marked
	// as AI generated. Errors from the generator are returned unchanged.
	// Returns ErrAPIKeyMissing if the user has no stored key and
	// ErrNoCardsGenerated if the model produced nothing.
	GenerateDraft(ctx context.Context, userID uuid.UUID, input GenerateInput) (*domain.CardSet, error)

	// Options returns the generation limits.
	Options() GenerationOptions
}

type generationServiceImpl struct {
	generator generation.Generator
	settings  SettingsService
	timeout   time.Duration
	logger    *slog.Logger
}

// NewGenerationService creates a new GenerationService. A zero timeout leaves
// the caller's context deadline as the only limit.
func NewGenerationService(
	generator generation.Generator,
	settings SettingsService,
	timeout time.Duration,
	log *slog.Logger,
) (GenerationService, error) {
	if generator == nil {
		return nil, domain.NewValidationError("generator", "cannot be nil", domain.ErrValidation)
	}
	if settings == nil {
		return nil, domain.NewValidationError("settings", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &generationServiceImpl{
		generator: generator,
		settings:  settings,
		timeout:   timeout,
		logger:    log.With(slog.String("component", "generation_service")),
	}, nil
}

// GenerateDraft implements GenerationService.GenerateDraft
func (s *generationServiceImpl) GenerateDraft(
	ctx context.Context,
	userID uuid.UUID,
	input GenerateInput,
) (*domain.CardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	name := strings.TrimSpace(input.SetName)
	if err := domain.ValidateSetName(name); err != nil {
		return nil, domain.NewValidationError("set_name", "", err)
	}

	req := generation.Request{
		SourceText:     input.Text,
		CardCount:      lo.Ternary(input.CardCount == 0, generation.DefaultCardCount, input.CardCount),
		TargetLanguage: lo.Ternary(strings.TrimSpace(input.Language) == "", generation.DefaultLanguage, strings.TrimSpace(input.Language)),
	}

	// Request errors are reported before a missing key.
	check := req
	check.Credential = "pending"
	if err := check.Validate(); err != nil {
		return nil, err
	}

	apiKey, err := s.settings.APIKey(ctx, userID)
	if err != nil {
		return nil, err
	}
	req.Credential = apiKey

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Debug("generating card set draft", slog.Any("request", req))

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		log.Warn("card generation failed", slog.String("error", err.Error()))
		return nil, err
	}
	if len(result.Cards) == 0 {
		return nil, ErrNoCardsGenerated
	}

	now := time.Now().UTC()
	draft := &domain.CardSet{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Cards: lo.Map(result.Cards, func(c generation.Card, _ int) domain.Card {
			return domain.Card{ID: uuid.New(), Question: c.Question, Answer: c.Answer}
		}),
		Language:    req.TargetLanguage,
		AIGenerated: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	log.Info("card set draft generated",
		slog.Int("requested", req.CardCount),
		slog.Int("generated", len(draft.Cards)))
	return draft, nil
}

// Options implements GenerationService.Options
func (s *generationServiceImpl) Options() GenerationOptions {
	return GenerationOptions{
		MaxCardCount:       generation.MaxCardCount,
		DefaultCardCount:   generation.DefaultCardCount,
		MaxTextLength:      generation.MaxSourceTextLength,
		DefaultLanguage:    generation.DefaultLanguage,
		SuggestedLanguages: append([]string(nil), generation.SuggestedLanguages...),
	}
}
