package sqlite

import (
	"context"
	"database/sql"

	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Record(ctx context.Context, c models.Card, expectedRevision int64, event models.ReviewHistory) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("recording review: card_id=%d, quality=%d, interval=%d, ease=%.2f",
		c.ID, event.Quality, event.IntervalDays, event.EaseFactor)

	var eventID int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO review_history (card_id, reviewed_at, quality, ease_factor, interval_days)
VALUES (?, ?, ?, ?, ?)
`, event.CardID, event.ReviewedAt, event.Quality, event.EaseFactor, event.IntervalDays)
		if err != nil {
			return err
		}
		eventID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx, `
UPDATE cards
SET ease_factor = ?, repetitions = ?, interval_days = ?, last_reviewed = ?, next_review = ?,
    revision = revision + 1
WHERE id = ? AND revision = ?
`, c.EaseFactor, c.Repetitions, c.IntervalDays, c.LastReviewed, c.NextReview, c.ID, expectedRevision)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return repository.ErrConflict
		}
		return nil
	})
	if err != nil {
		if err != repository.ErrConflict {
			log.Error("failed to record review: %v", err)
		}
		return 0, err
	}
	log.Debug("review recorded: event_id=%d", eventID)
	return eventID, nil
}

func (r *reviewRepository) ListByCard(ctx context.Context, cardID int64) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing review history: card_id=%d", cardID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, card_id, reviewed_at, quality, ease_factor, interval_days
FROM review_history
WHERE card_id = ?
ORDER BY reviewed_at ASC, id ASC
`, cardID)
	if err != nil {
		log.Error("failed to query review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []models.ReviewHistory
	for rows.Next() {
		var e models.ReviewHistory
		if err := rows.Scan(&e.ID, &e.CardID, &e.ReviewedAt, &e.Quality, &e.EaseFactor, &e.IntervalDays); err != nil {
			log.Error("failed to scan review history row: %v", err)
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
