package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
)

type tagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new TagRepository implementation
func NewTagRepository(db *sql.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Get(ctx context.Context, id int64) (*models.Tag, error) {
	log := logger.FromContext(ctx).WithPrefix("tag_repo")

	var t models.Tag
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, color FROM tags WHERE id = ?
`, id).Scan(&t.ID, &t.UserID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("tag not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get tag: %v", err)
		return nil, err
	}
	return &t, nil
}

func (r *tagRepository) ListByUser(ctx context.Context, userID int64) ([]models.Tag, error) {
	log := logger.FromContext(ctx).WithPrefix("tag_repo")
	log.Debug("listing tags: user_id=%d", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, color FROM tags WHERE user_id = ? ORDER BY name ASC
`, userID)
	if err != nil {
		log.Error("failed to list tags: %v", err)
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color); err != nil {
			log.Error("failed to scan tag row: %v", err)
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *tagRepository) FindByNameAndUser(ctx context.Context, name string, userID int64) (*models.Tag, error) {
	var t models.Tag
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, color FROM tags WHERE name = ? AND user_id = ?
`, name, userID).Scan(&t.ID, &t.UserID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tagRepository) Insert(ctx context.Context, t models.Tag) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("tag_repo")
	log.Debug("inserting tag: user_id=%d, name=%s", t.UserID, t.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO tags (user_id, name, color) VALUES (?, ?, ?)
`, t.UserID, t.Name, t.Color)
	if err != nil {
		log.Error("failed to insert tag: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *tagRepository) Update(ctx context.Context, t models.Tag) error {
	log := logger.FromContext(ctx).WithPrefix("tag_repo")
	log.Debug("updating tag: id=%d", t.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE tags SET name = ?, color = ? WHERE id = ?
`, t.Name, t.Color, t.ID)
	if err != nil {
		log.Error("failed to update tag: %v", err)
	}
	return err
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("tag_repo")
	log.Debug("deleting tag: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete tag: %v", err)
	}
	return err
}
