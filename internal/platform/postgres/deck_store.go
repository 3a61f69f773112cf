package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface.
// Headers and rows are encoded as JSONB arrays.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx implements store.DeckStore.WithTx.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{db: tx, logger: s.logger}
}

// Create implements store.DeckStore.Create.
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	headers, rows, err := encodeContent(deck)
	if err != nil {
		return store.NewStoreError("deck", "create", "failed to encode content", err)
	}

	query := `
		INSERT INTO decks (id, user_id, name, headers, rows, created_at, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		deck.ID, deck.UserID, deck.Name, headers, rows, deck.CreatedAt, deck.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("deck owner does not exist",
				slog.String("deck_id", deck.ID.String()),
				slog.String("user_id", deck.UserID.String()))
			return store.NewStoreError("deck", "create", "owner "+deck.UserID.String(), store.ErrDeckOwnerMissing)
		}
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "create", "failed to insert deck", MapError(err))
	}

	log.Info("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", deck.UserID.String()),
		slog.Int("rows", len(deck.Rows)))
	return nil
}

// GetByID implements store.DeckStore.GetByID.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, headers, rows, created_at, updated_at
		FROM decks
		WHERE id = $1
	`

	var (
		deck              domain.Deck
		headersJSON, rows []byte
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&headersJSON,
		&rows,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "failed to get deck", MapError(err))
	}

	if err := json.Unmarshal(headersJSON, &deck.Headers); err != nil {
		return nil, store.NewStoreError("deck", "get", "corrupt headers", err)
	}
	if err := json.Unmarshal(rows, &deck.Rows); err != nil {
		return nil, store.NewStoreError("deck", "get", "corrupt rows", err)
	}
	if deck.Rows == nil {
		deck.Rows = []domain.RowRecord{}
	}
	return &deck, nil
}

// ListByUser implements store.DeckStore.ListByUser.
func (s *PostgresDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]store.DeckSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, jsonb_array_length(rows), updated_at
		FROM decks
		WHERE user_id = $1
		ORDER BY updated_at DESC, name
	`

	rs, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list decks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("deck", "list", "failed to list decks", MapError(err))
	}
	defer func() { _ = rs.Close() }()

	summaries := []store.DeckSummary{}
	for rs.Next() {
		var sum store.DeckSummary
		if err := rs.Scan(&sum.ID, &sum.Name, &sum.RowCount, &sum.UpdatedAt); err != nil {
			return nil, store.NewStoreError("deck", "list", "failed to scan deck", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rs.Err(); err != nil {
		return nil, store.NewStoreError("deck", "list", "failed to iterate decks", err)
	}
	return summaries, nil
}

// Update implements store.DeckStore.Update.
func (s *PostgresDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during update",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	headers, rows, err := encodeContent(deck)
	if err != nil {
		return store.NewStoreError("deck", "update", "failed to encode content", err)
	}

	if deck.UpdatedAt.IsZero() {
		deck.UpdatedAt = time.Now().UTC()
	}

	query := `
		UPDATE decks
		SET name = $1, headers = $2::jsonb, rows = $3::jsonb, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query, deck.Name, headers, rows, deck.UpdatedAt, deck.ID)
	if err != nil {
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "update", "failed to update deck", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		return err
	}

	log.Debug("deck updated",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("rows", len(deck.Rows)))
	return nil
}

// Delete implements store.DeckStore.Delete.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return store.NewStoreError("deck", "delete", "failed to delete deck", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrDeckNotFound); err != nil {
		return err
	}

	log.Info("deck deleted", slog.String("deck_id", id.String()))
	return nil
}

func encodeContent(deck *domain.Deck) (string, string, error) {
	headers, err := json.Marshal(deck.Headers)
	if err != nil {
		return "", "", err
	}
	rows := deck.Rows
	if rows == nil {
		rows = []domain.RowRecord{}
	}
	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return "", "", err
	}
	return string(headers), string(rowsJSON), nil
}
