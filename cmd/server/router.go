package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashdeck/internal/api"
	apiMiddleware "github.com/phrazzld/flashdeck/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(
		app.userService,
		app.jwtService,
		time.Duration(app.config.Auth.TokenLifetimeMinutes)*time.Minute,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	cardSetHandler := api.NewCardSetHandler(app.cardSetService, app.logger)
	generationHandler := api.NewGenerationHandler(app.generationService, app.logger)
	settingsHandler := api.NewSettingsHandler(app.settingsService)
	practiceHandler := api.NewPracticeHandler(app.cardSetService, app.practice)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/sets", cardSetHandler.ListCardSets)
			r.Post("/sets", cardSetHandler.CreateCardSet)
			r.Post("/sets/generate", generationHandler.GenerateCardSet)
			r.Get("/sets/{id}", cardSetHandler.GetCardSet)
			r.Put("/sets/{id}", cardSetHandler.UpdateCardSet)
			r.Delete("/sets/{id}", cardSetHandler.DeleteCardSet)
			r.Get("/sets/{id}/export", cardSetHandler.ExportCardSet)
			r.Post("/sets/{id}/practice", practiceHandler.StartPractice)

			r.Get("/generation/options", generationHandler.GetOptions)

			r.Get("/settings/api-key", settingsHandler.GetAPIKeyStatus)
			r.Put("/settings/api-key", settingsHandler.SaveAPIKey)
			r.Delete("/settings/api-key", settingsHandler.DeleteAPIKey)

			r.Route("/practice/{sessionID}", func(r chi.Router) {
				r.Get("/", practiceHandler.GetSession)
				r.Delete("/", practiceHandler.EndSession)
				r.Post("/reveal", practiceHandler.Reveal)
				r.Post("/next", practiceHandler.Next)
				r.Post("/previous", practiceHandler.Previous)
				r.Post("/restart", practiceHandler.Restart)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
