package services

import (
	"context"
	"strings"

	"github.com/vocabdeck/vocabdeck/internal/errors"
	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
)

// TagService handles tag-related business logic
type TagService interface {
	CreateTag(ctx context.Context, username string, input models.TagInput) (*models.Tag, error)
	UpdateTag(ctx context.Context, username string, id int64, input models.TagInput) (*models.Tag, error)
	ListTags(ctx context.Context, username string) ([]models.Tag, error)
	DeleteTag(ctx context.Context, username string, id int64) error
}

type tagService struct {
	users repository.UserRepository
	tags  repository.TagRepository
}

// NewTagService creates a new TagService
func NewTagService(users repository.UserRepository, tags repository.TagRepository) TagService {
	return &tagService{users: users, tags: tags}
}

func (s *tagService) CreateTag(ctx context.Context, username string, input models.TagInput) (*models.Tag, error) {
	log := logger.FromContext(ctx)

	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	existing, err := s.tags.FindByNameAndUser(ctx, input.Name, user.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("tag already exists: " + input.Name)
	}

	tag := models.Tag{UserID: user.ID, Name: input.Name, Color: input.Color}
	id, err := s.tags.Insert(ctx, tag)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	tag.ID = id
	log.Info("tag created: id=%d, name=%s", id, tag.Name)
	return &tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, username string, id int64, input models.TagInput) (*models.Tag, error) {
	log := logger.FromContext(ctx)

	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	tag, err := s.tags.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if tag == nil {
		return nil, errors.NewNotFoundError("tag", id)
	}
	if tag.UserID != user.ID {
		return nil, errors.NewForbiddenError("tag", id)
	}

	// Renaming onto another of the user's tags is a conflict.
	existing, err := s.tags.FindByNameAndUser(ctx, input.Name, user.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing != nil && existing.ID != id {
		return nil, errors.NewConflictError("tag already exists: " + input.Name)
	}

	tag.Name = input.Name
	tag.Color = input.Color
	if err := s.tags.Update(ctx, *tag); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("tag updated: id=%d", id)
	return tag, nil
}

func (s *tagService) ListTags(ctx context.Context, username string) ([]models.Tag, error) {
	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return nil, err
	}

	tags, err := s.tags.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return tags, nil
}

func (s *tagService) DeleteTag(ctx context.Context, username string, id int64) error {
	log := logger.FromContext(ctx)

	user, err := resolveOwner(ctx, s.users, username)
	if err != nil {
		return err
	}

	tag, err := s.tags.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if tag == nil {
		return errors.NewNotFoundError("tag", id)
	}
	if tag.UserID != user.ID {
		return errors.NewForbiddenError("tag", id)
	}

	if err := s.tags.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	log.Info("tag deleted: id=%d", id)
	return nil
}
