package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/config"
	"github.com/phrazzld/scry-decks/internal/domain/review"
	"github.com/phrazzld/scry-decks/internal/platform/postgres"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore       store.UserStore
	deckStore       store.DeckStore
	difficultyStore store.DifficultyStore
	settingsStore   store.SettingsStore

	// Services
	userService   service.UserService
	deckService   service.DeckService
	reviewService service.ReviewService

	// defaultUserID identifies every request; there is no authentication.
	defaultUserID uuid.UUID
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be migrated.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.deckStore = postgres.NewPostgresDeckStore(db, logger)
	app.difficultyStore = postgres.NewPostgresDifficultyStore(db, logger)
	app.settingsStore = postgres.NewPostgresSettingsStore(db, logger)

	if err := app.initServices(); err != nil {
		return nil, err
	}

	user, err := app.userService.EnsureUser(ctx, cfg.Users.DefaultUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure default user: %w", err)
	}
	app.defaultUserID = user.ID
	logger.Info("Default user ready",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	logger.Info("Application initialized successfully")
	return app, nil
}

// initServices builds the service layer from the stores and review config.
func (app *application) initServices() error {
	var err error

	app.userService, err = service.NewUserService(app.userStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create user service: %w", err)
	}

	app.deckService, err = service.NewDeckService(app.db, app.deckStore, app.difficultyStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create deck service: %w", err)
	}

	selector, err := newSelector(app.config.Review)
	if err != nil {
		return fmt.Errorf("invalid review weights: %w", err)
	}

	var rnd review.RandSource
	if app.config.Review.Seed != 0 {
		rnd = review.NewSource(app.config.Review.Seed)
		app.logger.Info("Card selection seeded", slog.Uint64("seed", app.config.Review.Seed))
	}

	app.reviewService, err = service.NewReviewService(
		app.deckStore,
		app.difficultyStore,
		app.settingsStore,
		selector,
		rnd,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create review service: %w", err)
	}

	return nil
}

// newSelector applies the configured weight overrides to the default table.
func newSelector(cfg config.ReviewConfig) (*review.Selector, error) {
	return review.NewSelectorWithWeights(review.NewWeights(review.WeightsConfig{
		Hard:        cfg.Weights.Hard,
		Challenging: cfg.Weights.Challenging,
		Normal:      cfg.Weights.Normal,
		Easy:        cfg.Weights.Easy,
		Unreported:  cfg.Weights.Unreported,
	}))
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}
}
