package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vocabdeck/vocabdeck/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Record(ctx context.Context, card models.Card, expectedRevision int64, event models.ReviewHistory) (int64, error) {
	args := m.Called(ctx, card, expectedRevision, event)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) ListByCard(ctx context.Context, cardID int64) ([]models.ReviewHistory, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewHistory), args.Error(1)
}
