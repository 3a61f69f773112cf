package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/scry-decks/internal/api"
	apiMiddleware "github.com/phrazzld/scry-decks/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)

	r.Route("/api/decks", func(r chi.Router) {
		r.Use(apiMiddleware.DefaultUser(app.defaultUserID))
		deckHandler.Routes(r)
		reviewHandler.Routes(r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
