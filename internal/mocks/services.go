package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/scry-decks/internal/domain"
	"github.com/phrazzld/scry-decks/internal/service"
	"github.com/phrazzld/scry-decks/internal/store"
)

// MockDeckService is a testify mock of service.DeckService
type MockDeckService struct {
	mock.Mock
}

var _ service.DeckService = (*MockDeckService)(nil)

func deckResult(args mock.Arguments) (*domain.Deck, error) {
	if deck, ok := args.Get(0).(*domain.Deck); ok {
		return deck, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of service.DeckService.Create
func (m *MockDeckService) Create(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	headers []string,
	rows []domain.RowRecord,
) (*domain.Deck, error) {
	return deckResult(m.Called(ctx, userID, name, headers, rows))
}

// CreateFromText is a mock implementation of service.DeckService.CreateFromText
func (m *MockDeckService) CreateFromText(ctx context.Context, userID uuid.UUID, name, text string) (*domain.Deck, error) {
	return deckResult(m.Called(ctx, userID, name, text))
}

// Get is a mock implementation of service.DeckService.Get
func (m *MockDeckService) Get(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	return deckResult(m.Called(ctx, userID, deckID))
}

// List is a mock implementation of service.DeckService.List
func (m *MockDeckService) List(ctx context.Context, userID uuid.UUID) ([]store.DeckSummary, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]store.DeckSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of service.DeckService.Update
func (m *MockDeckService) Update(
	ctx context.Context,
	userID, deckID uuid.UUID,
	name string,
	headers []string,
	rows []domain.RowRecord,
) (*domain.Deck, error) {
	return deckResult(m.Called(ctx, userID, deckID, name, headers, rows))
}

// UpdateFromText is a mock implementation of service.DeckService.UpdateFromText
func (m *MockDeckService) UpdateFromText(
	ctx context.Context,
	userID, deckID uuid.UUID,
	name, text string,
) (*domain.Deck, error) {
	return deckResult(m.Called(ctx, userID, deckID, name, text))
}

// Delete is a mock implementation of service.DeckService.Delete
func (m *MockDeckService) Delete(ctx context.Context, userID, deckID uuid.UUID) error {
	return m.Called(ctx, userID, deckID).Error(0)
}

// Export is a mock implementation of service.DeckService.Export
func (m *MockDeckService) Export(ctx context.Context, userID, deckID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID, deckID)
	return args.String(0), args.Error(1)
}

// MockReviewService is a testify mock of service.ReviewService
type MockReviewService struct {
	mock.Mock
}

var _ service.ReviewService = (*MockReviewService)(nil)

// Next is a mock implementation of service.ReviewService.Next
func (m *MockReviewService) Next(ctx context.Context, userID, deckID uuid.UUID) (*service.Card, error) {
	args := m.Called(ctx, userID, deckID)
	if card, ok := args.Get(0).(*service.Card); ok {
		return card, args.Error(1)
	}
	return nil, args.Error(1)
}

// Reveal is a mock implementation of service.ReviewService.Reveal
func (m *MockReviewService) Reveal(
	ctx context.Context,
	userID, deckID uuid.UUID,
	rowIndex int,
	frontHeader string,
) (string, error) {
	args := m.Called(ctx, userID, deckID, rowIndex, frontHeader)
	return args.String(0), args.Error(1)
}

// Rate is a mock implementation of service.ReviewService.Rate
func (m *MockReviewService) Rate(
	ctx context.Context,
	userID, deckID uuid.UUID,
	rowIndex int,
	d domain.Difficulty,
) error {
	return m.Called(ctx, userID, deckID, rowIndex, d).Error(0)
}

// Ratings is a mock implementation of service.ReviewService.Ratings
func (m *MockReviewService) Ratings(ctx context.Context, userID, deckID uuid.UUID) (domain.Ratings, error) {
	args := m.Called(ctx, userID, deckID)
	if r, ok := args.Get(0).(domain.Ratings); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// Settings is a mock implementation of service.ReviewService.Settings
func (m *MockReviewService) Settings(ctx context.Context, userID, deckID uuid.UUID) (domain.ReviewSettings, error) {
	args := m.Called(ctx, userID, deckID)
	s, _ := args.Get(0).(domain.ReviewSettings)
	return s, args.Error(1)
}

// UpdateSettings is a mock implementation of service.ReviewService.UpdateSettings
func (m *MockReviewService) UpdateSettings(
	ctx context.Context,
	userID, deckID uuid.UUID,
	settings domain.ReviewSettings,
) (domain.ReviewSettings, error) {
	args := m.Called(ctx, userID, deckID, settings)
	s, _ := args.Get(0).(domain.ReviewSettings)
	return s, args.Error(1)
}

// Statistics is a mock implementation of service.ReviewService.Statistics
func (m *MockReviewService) Statistics(ctx context.Context, userID, deckID uuid.UUID) (*service.DeckStatistics, error) {
	args := m.Called(ctx, userID, deckID)
	if stats, ok := args.Get(0).(*service.DeckStatistics); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
