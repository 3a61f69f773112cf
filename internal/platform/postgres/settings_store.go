package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// PostgresSettingsStore implements the store.SettingsStore interface.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the SettingsStore interface.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get.
func (s *PostgresSettingsStore) Get(
	ctx context.Context,
	deckID, userID uuid.UUID,
) (domain.ReviewSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		settings  domain.ReviewSettings
		direction string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT direction, skip_easy FROM deck_settings WHERE deck_id = $1 AND user_id = $2`,
		deckID, userID,
	).Scan(&direction, &settings.SkipEasy)

	switch {
	case err == nil:
		settings.Direction = domain.Direction(direction)
		if !settings.Direction.IsValid() {
			log.Warn("stored direction is invalid, using default",
				slog.String("deck_id", deckID.String()),
				slog.String("direction", direction))
			settings.Direction = domain.DirectionBoth
		}
		return settings, nil
	case errors.Is(err, sql.ErrNoRows):
		defaults := domain.DefaultReviewSettings()
		if err := s.insertDefaults(ctx, deckID, userID, defaults); err != nil {
			return domain.ReviewSettings{}, err
		}
		log.Debug("inserted default review settings", slog.String("deck_id", deckID.String()))
		return defaults, nil
	default:
		log.Error("failed to get review settings",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return domain.ReviewSettings{}, store.NewStoreError("settings", "get", "failed to get settings", MapError(err))
	}
}

func (s *PostgresSettingsStore) insertDefaults(
	ctx context.Context,
	deckID, userID uuid.UUID,
	defaults domain.ReviewSettings,
) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deck_settings (deck_id, user_id, direction, skip_easy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (deck_id, user_id) DO NOTHING
	`, deckID, userID, string(defaults.Direction), defaults.SkipEasy, now, now)
	if err != nil {
		return store.NewStoreError("settings", "create", "failed to insert default settings", MapError(err))
	}
	return nil
}

// Upsert implements store.SettingsStore.Upsert.
func (s *PostgresSettingsStore) Upsert(
	ctx context.Context,
	deckID, userID uuid.UUID,
	settings domain.ReviewSettings,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deck_settings (deck_id, user_id, direction, skip_easy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (deck_id, user_id)
		DO UPDATE SET direction = EXCLUDED.direction, skip_easy = EXCLUDED.skip_easy, updated_at = EXCLUDED.updated_at
	`, deckID, userID, string(settings.Direction), settings.SkipEasy, now)
	if err != nil {
		log.Error("failed to upsert review settings",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return store.NewStoreError("settings", "upsert", "failed to store settings", MapError(err))
	}

	log.Debug("review settings stored",
		slog.String("deck_id", deckID.String()),
		slog.String("direction", string(settings.Direction)),
		slog.Bool("skip_easy", settings.SkipEasy))
	return nil
}
