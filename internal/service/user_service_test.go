package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/mocks"
	"github.com/phrazzld/scry-decks/internal/platform/logger"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/store"
)

func TestUserService_EnsureUser(t *testing.T) {
	t.Parallel()

	existing := &domain.User{ID: uuid.New(), Username: "AnkiStudent", CreatedAt: time.Now().UTC()}
	calls := 0
	users := &mocks.MockUserStore{
		EnsureByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			calls++
			assert.Equal(t, "AnkiStudent", username)
			return existing, nil
		},
	}
	log, buf := logger.GetTestLogger(t)
	svc, err := service.NewUserService(users, log)
	require.NoError(t, err)

	first, err := svc.EnsureUser(context.Background(), "AnkiStudent")
	require.NoError(t, err)
	second, err := svc.EnsureUser(context.Background(), "AnkiStudent")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, calls)
	logger.AssertLogContains(t, buf, "user ready")

	_, err = svc.EnsureUser(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyUsername)
	assert.Equal(t, 2, calls)
}

func TestUserService_GetUser(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	users := &mocks.MockUserStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if id == uuid.Nil {
				return nil, storeErr
			}
			return nil, store.ErrUserNotFound
		},
	}
	svc, err := service.NewUserService(users, nil)
	require.NoError(t, err)

	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = svc.GetUser(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, storeErr)

	_, err = service.NewUserService(nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestServiceErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	deckErr := service.NewDeckServiceError("update", "failed to save deck", cause)
	assert.Equal(t, "deck service update failed: failed to save deck: boom", deckErr.Error())
	assert.ErrorIs(t, deckErr, cause)

	reviewErr := service.NewReviewServiceError("next", "failed to load ratings", nil)
	assert.Equal(t, "review service next failed: failed to load ratings", reviewErr.Error())
	assert.Nil(t, errors.Unwrap(reviewErr))

	assert.ErrorIs(t, service.ErrDeckNotOwned, service.ErrNotOwned)
}
