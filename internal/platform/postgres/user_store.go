package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// EnsureByUsername implements store.UserStore.EnsureByUsername.
// The no-op update on conflict makes RETURNING yield the existing row.
func (s *PostgresUserStore) EnsureByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	candidate, err := domain.NewUser(username)
	if err != nil {
		log.Warn("user validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO users (id, username, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id, username, created_at
	`

	var user domain.User
	err = s.db.QueryRowContext(ctx, query, candidate.ID, candidate.Username, candidate.CreatedAt).
		Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		log.Error("failed to ensure user",
			slog.String("error", err.Error()),
			slog.String("username", candidate.Username))
		return nil, store.NewStoreError("user", "ensure", "failed to ensure user", MapError(err))
	}

	log.Debug("user ensured",
		slog.String("user_id", user.ID.String()),
		slog.Bool("created", user.ID == candidate.ID))
	return &user, nil
}

// GetByID implements store.UserStore.GetByID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, username, created_at FROM users WHERE id = $1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, store.NewStoreError("user", "get", "failed to get user", MapError(err))
	}
	return &user, nil
}
