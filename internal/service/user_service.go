package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/redact"
	"github.com/phrazzld/scry-decks/internal/store"
)

// UserService provides user lookups. Users are not managed through the API;
// the server ensures its configured user at startup.
type UserService interface {
	// EnsureUser returns the user with username, creating it if needed.
	EnsureUser(ctx context.Context, username string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, logger *slog.Logger) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "user_service")),
	}, nil
}

// EnsureUser implements UserService.EnsureUser
func (s *UserServiceImpl) EnsureUser(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := domain.NewUser(username); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	user, err := s.userStore.EnsureByUsername(ctx, username)
	if err != nil {
		log.Error("failed to ensure user",
			slog.String("error", redact.Error(err)),
			slog.String("username", username))
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	log.Info("user ready",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found", slog.String("user_id", userID.String()))
		} else {
			log.Error("failed to retrieve user",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", userID.String()))
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	log.Debug("retrieved user successfully", slog.String("user_id", userID.String()))
	return user, nil
}
