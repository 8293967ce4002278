package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) DeckStats(ctx context.Context, userID int64, now time.Time) (*models.DeckStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching deck stats: user_id=%d", userID)

	soon := now.Add(7 * 24 * time.Hour)

	var stats models.DeckStats
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(c.id) AS total_cards,
    COUNT(CASE WHEN c.next_review <= ? THEN 1 END) AS cards_due,
    COUNT(CASE WHEN c.next_review > ? AND c.next_review <= ? THEN 1 END) AS cards_due_soon,
    COALESCE(AVG(c.ease_factor), 0) AS avg_ease_factor,
    COALESCE(AVG(c.interval_days), 0) AS avg_interval_days
FROM cards c
WHERE c.user_id = ?
`, now, now, soon, userID).Scan(
		&stats.TotalCards,
		&stats.CardsDue,
		&stats.CardsDueSoon,
		&stats.AvgEaseFactor,
		&stats.AvgIntervalDays,
	)
	if err != nil {
		log.Error("failed to get deck stats: %v", err)
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(rh.id)
FROM review_history rh
JOIN cards c ON c.id = rh.card_id
WHERE c.user_id = ?
`, userID).Scan(&stats.TotalReviews)
	if err != nil {
		log.Error("failed to count reviews: %v", err)
		return nil, err
	}

	return &stats, nil
}
