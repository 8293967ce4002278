package services

import (
	"context"

	"github.com/vocabdeck/vocabdeck/internal/errors"
	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
	"github.com/vocabdeck/vocabdeck/internal/srs"
)

// ReviewService handles the review transaction: ownership check, SM-2 step,
// history append and card save as one atomic unit.
type ReviewService interface {
	ReviewCard(ctx context.Context, username string, cardID int64, quality int) (*models.Card, error)
	ReviewHistory(ctx context.Context, username string, cardID int64) ([]models.ReviewHistory, error)
}

type reviewService struct {
	users      repository.UserRepository
	cards      repository.CardRepository
	reviews    repository.ReviewRepository
	clock      Clock
	maxRetries int
}

// NewReviewService creates a new ReviewService
func NewReviewService(users repository.UserRepository, cards repository.CardRepository, reviews repository.ReviewRepository, clock Clock, maxRetries int) ReviewService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &reviewService{
		users:      users,
		cards:      cards,
		reviews:    reviews,
		clock:      clock,
		maxRetries: maxRetries,
	}
}

func (s *reviewService) ReviewCard(ctx context.Context, username string, cardID int64, quality int) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: card_id=%d, quality=%d", cardID, quality)

	if quality < srs.QualityBlackout || quality > srs.QualityPerfect {
		return nil, errors.NewValidationError("quality", "must be between 0 and 5")
	}

	// A lost optimistic race re-runs the whole transaction so the scheduler
	// sees the winning review's post-state.
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		card, err := s.reviewOnce(ctx, username, cardID, quality)
		if err == repository.ErrConflict {
			log.Debug("review conflict on card_id=%d, attempt=%d", cardID, attempt+1)
			continue
		}
		return card, err
	}

	log.Warn("review retries exhausted: card_id=%d", cardID)
	return nil, errors.NewConflictError("card was reviewed concurrently, please retry")
}

func (s *reviewService) reviewOnce(ctx context.Context, username string, cardID int64, quality int) (*models.Card, error) {
	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	// Owner check comes before any scheduling work, on ids only.
	if card.UserID != user.ID {
		return nil, errors.NewForbiddenError("card", cardID)
	}

	// One timestamp per attempt: the card's last_reviewed/next_review and the
	// event's reviewed_at must agree.
	now := s.clock.Now().UTC()

	updated, err := srs.Apply(*card, quality, now)
	if err != nil {
		return nil, errors.NewValidationError("quality", err.Error())
	}

	event := models.ReviewHistory{
		CardID:       card.ID,
		ReviewedAt:   now,
		Quality:      quality,
		EaseFactor:   updated.EaseFactor,
		IntervalDays: updated.IntervalDays,
	}

	if _, err := s.reviews.Record(ctx, updated, card.Revision, event); err != nil {
		if err == repository.ErrConflict {
			return nil, err
		}
		return nil, errors.NewInternalError(err)
	}

	updated.Revision = card.Revision + 1
	return &updated, nil
}

func (s *reviewService) ReviewHistory(ctx context.Context, username string, cardID int64) ([]models.ReviewHistory, error) {
	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	if card.UserID != user.ID {
		return nil, errors.NewForbiddenError("card", cardID)
	}

	events, err := s.reviews.ListByCard(ctx, cardID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return events, nil
}
