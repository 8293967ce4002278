package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vocabdeck/vocabdeck/internal/models"
)

// ErrConflict is returned when an optimistic schedule update loses the race
// against a concurrent review of the same card.
var ErrConflict = errors.New("card was modified concurrently")

// UserRepository handles user data access
type UserRepository interface {
	// GetByUsername returns (nil, nil) when the user does not exist.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user models.User) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CardRepository handles card data access
type CardRepository interface {
	// Get returns the card with its tags, or (nil, nil) when it does not exist.
	Get(ctx context.Context, id int64) (*models.Card, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.LeanCard, error)
	// ListDue returns cards with next_review <= now, ordered by next_review
	// ascending with id as the tiebreaker.
	ListDue(ctx context.Context, userID int64, now time.Time) ([]models.Card, error)
	CountDue(ctx context.Context, userID int64, now time.Time) (int, error)
	Count(ctx context.Context, userID int64) (int, error)
	Insert(ctx context.Context, card models.Card) (int64, error)
	// Update persists the descriptive fields only; scheduling state moves
	// exclusively through ReviewRepository.Record.
	Update(ctx context.Context, card models.Card) error
	// SetTags replaces the card's tag set; tag ids not owned by userID are ignored.
	SetTags(ctx context.Context, cardID, userID int64, tagIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository handles the review history log
type ReviewRepository interface {
	// Record persists the card's new scheduling state and appends the review
	// event in a single transaction. The card update is guarded by
	// expectedRevision; ErrConflict is returned (and nothing is written) when
	// a concurrent review got there first.
	Record(ctx context.Context, card models.Card, expectedRevision int64, event models.ReviewHistory) (int64, error)
	ListByCard(ctx context.Context, cardID int64) ([]models.ReviewHistory, error)
}

// TagRepository handles tag data access
type TagRepository interface {
	// Get returns (nil, nil) when the tag does not exist.
	Get(ctx context.Context, id int64) (*models.Tag, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Tag, error)
	// FindByNameAndUser returns (nil, nil) when no such tag exists.
	FindByNameAndUser(ctx context.Context, name string, userID int64) (*models.Tag, error)
	Insert(ctx context.Context, tag models.Tag) (int64, error)
	Update(ctx context.Context, tag models.Tag) error
	Delete(ctx context.Context, id int64) error
}

// StatsRepository handles deck statistics
type StatsRepository interface {
	DeckStats(ctx context.Context, userID int64, now time.Time) (*models.DeckStats, error)
}
