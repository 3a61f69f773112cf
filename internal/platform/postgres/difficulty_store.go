package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// PostgresDifficultyStore implements the store.DifficultyStore interface.
type PostgresDifficultyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDifficultyStore creates a new PostgreSQL implementation of the DifficultyStore interface.
func NewPostgresDifficultyStore(db store.DBTX, logger *slog.Logger) *PostgresDifficultyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDifficultyStore{
		db:     db,
		logger: logger.With(slog.String("component", "difficulty_store")),
	}
}

// Ensure PostgresDifficultyStore implements store.DifficultyStore interface
var _ store.DifficultyStore = (*PostgresDifficultyStore)(nil)

// WithTx implements store.DifficultyStore.WithTx.
func (s *PostgresDifficultyStore) WithTx(tx *sql.Tx) store.DifficultyStore {
	return &PostgresDifficultyStore{db: tx, logger: s.logger}
}

// ListForDeck implements store.DifficultyStore.ListForDeck.
// Stored values that are not a rated difficulty are skipped, so they read as
// unreported.
func (s *PostgresDifficultyStore) ListForDeck(
	ctx context.Context,
	deckID, userID uuid.UUID,
) (domain.Ratings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT row_index, difficulty
		FROM deck_difficulties
		WHERE deck_id = $1 AND user_id = $2
	`
	rs, err := s.db.QueryContext(ctx, query, deckID, userID)
	if err != nil {
		log.Error("failed to list difficulties",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, store.NewStoreError("difficulty", "list", "failed to list difficulties", MapError(err))
	}
	defer func() { _ = rs.Close() }()

	ratings := domain.Ratings{}
	for rs.Next() {
		var (
			row int
			raw string
		)
		if err := rs.Scan(&row, &raw); err != nil {
			return nil, store.NewStoreError("difficulty", "list", "failed to scan difficulty", err)
		}
		d := domain.Difficulty(raw)
		if !d.IsRated() {
			log.Warn("ignoring unknown stored difficulty",
				slog.String("deck_id", deckID.String()),
				slog.Int("row_index", row),
				slog.String("difficulty", raw))
			continue
		}
		ratings[row] = d
	}
	if err := rs.Err(); err != nil {
		return nil, store.NewStoreError("difficulty", "list", "failed to iterate difficulties", err)
	}
	return ratings, nil
}

// Upsert implements store.DifficultyStore.Upsert.
func (s *PostgresDifficultyStore) Upsert(
	ctx context.Context,
	deckID, userID uuid.UUID,
	rowIndex int,
	d domain.Difficulty,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !d.IsRated() {
		return domain.ErrInvalidDifficulty
	}
	if rowIndex < 0 {
		return domain.ErrRowOutOfRange
	}

	query := `
		INSERT INTO deck_difficulties (deck_id, user_id, row_index, difficulty, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (deck_id, user_id, row_index)
		DO UPDATE SET difficulty = EXCLUDED.difficulty, updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, deckID, userID, rowIndex, string(d), time.Now().UTC())
	if err != nil {
		log.Error("failed to upsert difficulty",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()),
			slog.Int("row_index", rowIndex))
		return store.NewStoreError("difficulty", "upsert", "failed to store difficulty", MapError(err))
	}

	log.Debug("difficulty stored",
		slog.String("deck_id", deckID.String()),
		slog.Int("row_index", rowIndex),
		slog.String("difficulty", string(d)))
	return nil
}

// DeleteFromRow implements store.DifficultyStore.DeleteFromRow.
func (s *PostgresDifficultyStore) DeleteFromRow(ctx context.Context, deckID uuid.UUID, fromRow int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM deck_difficulties WHERE deck_id = $1 AND row_index >= $2`,
		deckID, fromRow)
	if err != nil {
		log.Error("failed to delete difficulties",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return store.NewStoreError("difficulty", "delete", "failed to delete difficulties", MapError(err))
	}

	if n, err := result.RowsAffected(); err == nil && n > 0 {
		log.Info("dropped ratings of removed rows",
			slog.String("deck_id", deckID.String()),
			slog.Int("from_row", fromRow),
			slog.Int64("count", n))
	}
	return nil
}
