package services

import (
	"context"

	"github.com/vocabdeck/vocabdeck/internal/errors"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
)

// StatsService reports aggregate deck statistics
type StatsService interface {
	DeckStats(ctx context.Context, username string) (*models.DeckStats, error)
}

type statsService struct {
	users repository.UserRepository
	stats repository.StatsRepository
	clock Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(users repository.UserRepository, stats repository.StatsRepository, clock Clock) StatsService {
	return &statsService{users: users, stats: stats, clock: clock}
}

func (s *statsService) DeckStats(ctx context.Context, username string) (*models.DeckStats, error) {
	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.DeckStats(ctx, user.ID, s.clock.Now().UTC())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
