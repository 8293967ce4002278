package services

import (
	"context"
	"strings"

	"github.com/vocabdeck/vocabdeck/internal/errors"
	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
)

const defaultEaseFactor = 2.5

// CardService handles card-related business logic
type CardService interface {
	CreateCard(ctx context.Context, username string, input models.CardInput) (*models.Card, error)
	GetCard(ctx context.Context, username string, id int64) (*models.Card, error)
	ListCards(ctx context.Context, username string, filter models.CardFilter) ([]models.LeanCard, error)
	UpdateCard(ctx context.Context, username string, id int64, input models.CardInput) (*models.Card, error)
	DeleteCard(ctx context.Context, username string, id int64) error
	DueCards(ctx context.Context, username string) ([]models.Card, error)
	DueCount(ctx context.Context, username string) (int, error)
	TotalCount(ctx context.Context, username string) (int, error)
}

type cardService struct {
	users repository.UserRepository
	cards repository.CardRepository
	clock Clock
}

// NewCardService creates a new CardService
func NewCardService(users repository.UserRepository, cards repository.CardRepository, clock Clock) CardService {
	return &cardService{users: users, cards: cards, clock: clock}
}

func validateCardInput(input models.CardInput) error {
	if strings.TrimSpace(input.Front) == "" {
		return errors.NewValidationError("front", "cannot be empty")
	}
	if strings.TrimSpace(input.Back) == "" {
		return errors.NewValidationError("back", "cannot be empty")
	}
	if !models.ValidLanguageSelection(input.LanguageSelection) {
		return errors.NewValidationError("language_selection", "unknown language pair")
	}
	return nil
}

func (s *cardService) CreateCard(ctx context.Context, username string, input models.CardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card for %s", username)

	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}
	if err := validateCardInput(input); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	card := models.Card{
		UserID:            user.ID,
		Front:             input.Front,
		Back:              input.Back,
		ExampleSentence:   input.ExampleSentence,
		LanguageSelection: input.LanguageSelection,
		AudioURL:          input.AudioURL,
		EaseFactor:        defaultEaseFactor,
		Repetitions:       0,
		IntervalDays:      0,
		NextReview:        now, // new cards are immediately due
		CreatedAt:         now,
	}

	id, err := s.cards.Insert(ctx, card)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	if len(input.TagIDs) > 0 {
		if err := s.cards.SetTags(ctx, id, user.ID, input.TagIDs); err != nil {
			return nil, errors.NewInternalError(err)
		}
	}

	created, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("card created: id=%d", id)
	return created, nil
}

func (s *cardService) GetCard(ctx context.Context, username string, id int64) (*models.Card, error) {
	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	if card.UserID != user.ID {
		return nil, errors.NewForbiddenError("card", id)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, username string, filter models.CardFilter) ([]models.LeanCard, error) {
	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}

	filter.UserID = user.ID
	cards, err := s.cards.List(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, username string, id int64, input models.CardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)

	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}
	if err := validateCardInput(input); err != nil {
		return nil, err
	}

	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	if card.UserID != user.ID {
		return nil, errors.NewForbiddenError("card", id)
	}

	card.Front = input.Front
	card.Back = input.Back
	card.ExampleSentence = input.ExampleSentence
	card.LanguageSelection = input.LanguageSelection
	card.AudioURL = input.AudioURL

	if err := s.cards.Update(ctx, *card); err != nil {
		return nil, errors.NewInternalError(err)
	}

	// A nil tag list leaves the tag set alone; an empty one clears it.
	if input.TagIDs != nil {
		if err := s.cards.SetTags(ctx, id, user.ID, input.TagIDs); err != nil {
			return nil, errors.NewInternalError(err)
		}
	}

	updated, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("card updated: id=%d", id)
	return updated, nil
}

func (s *cardService) DeleteCard(ctx context.Context, username string, id int64) error {
	log := logger.FromContext(ctx)

	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return err
	}

	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if card == nil {
		return errors.NewNotFoundError("card", id)
	}
	if card.UserID != user.ID {
		return errors.NewForbiddenError("card", id)
	}

	if err := s.cards.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	log.Info("card deleted: id=%d", id)
	return nil
}

func (s *cardService) DueCards(ctx context.Context, username string) ([]models.Card, error) {
	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.ListDue(ctx, user.ID, s.clock.Now().UTC())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) DueCount(ctx context.Context, username string) (int, error) {
	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return 0, err
	}

	n, err := s.cards.CountDue(ctx, user.ID, s.clock.Now().UTC())
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}

func (s *cardService) TotalCount(ctx context.Context, username string) (int, error) {
	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return 0, err
	}

	n, err := s.cards.Count(ctx, user.ID)
	if err != nil {
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}
