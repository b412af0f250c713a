package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/gemini"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/practice"
	"github.com/phrazzld/flashdeck/internal/secrets"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService        auth.JWTService
	userService       service.UserService
	cardSetService    service.CardSetService
	settingsService   service.SettingsService
	generationService service.GenerationService

	practice *practice.Manager
}

// newApplication creates the stores, services and practice session manager.
// The database connection must already be established.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	log.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	sealer, err := secrets.NewSealer(cfg.Auth.CredentialEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential sealer: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, log)
	cardSetStore := postgres.NewPostgresCardSetStore(db, log)
	settingsStore := postgres.NewPostgresUserSettingsStore(db, log)

	app.userService, err = service.NewUserService(userStore, auth.NewBcryptHasher(cfg.Auth.BCryptCost), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.cardSetService, err = service.NewCardSetService(cardSetStore, db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create card set service: %w", err)
	}

	app.settingsService, err = service.NewSettingsService(settingsStore, sealer, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings service: %w", err)
	}

	generator, err := gemini.NewGeneratorFromConfig(log, cfg.LLM, gemini.NewClientFactory(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	app.generationService, err = service.NewGenerationService(
		generator,
		app.settingsService,
		time.Duration(cfg.LLM.RequestTimeoutSeconds)*time.Second,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	app.practice = practice.NewManager(practice.ManagerConfig{
		SessionTTL:         time.Duration(cfg.Practice.SessionTTLMinutes) * time.Minute,
		MaxSessionsPerUser: cfg.Practice.MaxSessionsPerUser,
	}, log)

	log.Info("application initialized successfully")
	return app, nil
}

// Run starts background work and serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	app.practice.Start()
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.practice != nil {
		app.practice.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
