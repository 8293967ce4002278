package services

import (
	"context"

	"github.com/vocabdeck/vocabdeck/internal/errors"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
)

// resolveOwner maps the authenticated username to its user row. The error for
// an unknown principal deliberately carries no detail.
func resolveOwner(ctx context.Context, users repository.UserRepository, username string) (*models.User, error) {
	user, err := users.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewUnauthorizedError("unauthorized")
	}
	return user, nil
}
