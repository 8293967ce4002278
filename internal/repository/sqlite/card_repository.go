package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
)

const cardColumns = `id, user_id, front, back, example_sentence, language_selection, audio_url,
       ease_factor, repetitions, interval_days, last_reviewed, next_review, revision, created_at`

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func scanCard(row interface{ Scan(...any) error }) (*models.Card, error) {
	var c models.Card
	var lastReviewed sql.NullTime
	err := row.Scan(&c.ID, &c.UserID, &c.Front, &c.Back, &c.ExampleSentence, &c.LanguageSelection,
		&c.AudioURL, &c.EaseFactor, &c.Repetitions, &c.IntervalDays, &lastReviewed, &c.NextReview,
		&c.Revision, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		c.LastReviewed = &t
	}
	return &c, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}

	tags, err := r.tagsForCards(ctx, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	c.Tags = tags[c.ID]
	if c.Tags == nil {
		c.Tags = []models.Tag{}
	}
	return c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.LeanCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: user_id=%d, search=%q, sort=%s %s",
		filter.UserID, filter.Search, filter.SortBy, filter.SortDir)

	query := sqlBuilder.Select("id", "front", "back", "language_selection").
		From("cards").
		Where(squirrel.Eq{"user_id": filter.UserID})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Expr("front LIKE ? COLLATE NOCASE", pattern),
			squirrel.Expr("back LIKE ? COLLATE NOCASE", pattern),
			squirrel.Expr("example_sentence LIKE ? COLLATE NOCASE", pattern),
		})
	}

	// Safe ORDER BY with validation
	orderBy := "created_at"
	switch filter.SortBy {
	case "front", "back", "created_at", "next_review":
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortDir == "ASC" || filter.SortDir == "asc" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	cards := []models.LeanCard{}
	for rows.Next() {
		var c models.LeanCard
		if err := rows.Scan(&c.ID, &c.Front, &c.Back, &c.LanguageSelection); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardRepository) ListDue(ctx context.Context, userID int64, now time.Time) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching due cards: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+cardColumns+`
FROM cards
WHERE user_id = ? AND next_review <= ?
ORDER BY next_review ASC, id ASC
`, userID, now)
	if err != nil {
		log.Error("failed to query due cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	var ids []int64
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, *c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := r.tagsForCards(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		cards[i].Tags = tags[cards[i].ID]
		if cards[i].Tags == nil {
			cards[i].Tags = []models.Tag{}
		}
	}
	log.Debug("found %d due cards", len(cards))
	return cards, nil
}

func (r *cardRepository) CountDue(ctx context.Context, userID int64, now time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(1) FROM cards WHERE user_id = ? AND next_review <= ?
`, userID, now).Scan(&n)
	return n, err
}

func (r *cardRepository) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM cards WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: user_id=%d", c.UserID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (user_id, front, back, example_sentence, language_selection, audio_url,
                   ease_factor, repetitions, interval_days, last_reviewed, next_review)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.UserID, c.Front, c.Back, c.ExampleSentence, c.LanguageSelection, c.AudioURL,
		c.EaseFactor, c.Repetitions, c.IntervalDays, c.LastReviewed, c.NextReview)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Update(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d", c.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE cards
SET front = ?, back = ?, example_sentence = ?, language_selection = ?, audio_url = ?
WHERE id = ?
`, c.Front, c.Back, c.ExampleSentence, c.LanguageSelection, c.AudioURL, c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (r *cardRepository) SetTags(ctx context.Context, cardID, userID int64, tagIDs []int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("setting tags: card_id=%d, tags=%v", cardID, tagIDs)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM card_tags WHERE card_id = ?`, cardID); err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			// The subquery keeps foreign tags out of the join table.
			_, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO card_tags (card_id, tag_id)
SELECT ?, id FROM tags WHERE id = ? AND user_id = ?
`, cardID, tagID, userID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}

func (r *cardRepository) tagsForCards(ctx context.Context, cardIDs []int64) (map[int64][]models.Tag, error) {
	result := make(map[int64][]models.Tag)
	if len(cardIDs) == 0 {
		return result, nil
	}

	query := sqlBuilder.Select("ct.card_id", "t.id", "t.user_id", "t.name", "t.color").
		From("card_tags ct").
		Join("tags t ON t.id = ct.tag_id").
		Where(squirrel.Eq{"ct.card_id": cardIDs}).
		OrderBy("t.name ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cardID int64
		var t models.Tag
		if err := rows.Scan(&cardID, &t.ID, &t.UserID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		result[cardID] = append(result[cardID], t)
	}
	return result, rows.Err()
}
