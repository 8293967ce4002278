package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vocabdeck/vocabdeck/internal/auth"
	"github.com/vocabdeck/vocabdeck/internal/errors"
	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
	"github.com/vocabdeck/vocabdeck/internal/repository"
)

// AuthResult is returned after a successful signup or login.
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserService handles account registration and authentication
type UserService interface {
	Signup(ctx context.Context, input models.SignupInput) (*AuthResult, error)
	Login(ctx context.Context, input models.LoginInput) (*AuthResult, error)
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, tokens *auth.TokenManager) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Signup(ctx context.Context, input models.SignupInput) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(input.Username) == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, errors.NewValidationError("email", "cannot be empty")
	}
	if len(input.Password) < 8 {
		return nil, errors.NewValidationError("password", "must be at least 8 characters")
	}

	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if taken {
		return nil, errors.NewConflictError("username already taken")
	}
	taken, err = s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if taken {
		return nil, errors.NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if _, err := s.users.Insert(ctx, user); err != nil {
		return nil, errors.NewInternalError(err)
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Info("user registered: %s", user.Username)
	return &AuthResult{Token: token, Username: user.Username, Email: user.Email}, nil
}

func (s *userService) Login(ctx context.Context, input models.LoginInput) (*AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		// Same message as a bad password, no account enumeration.
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Info("user logged in: %s", user.Username)
	return &AuthResult{Token: token, Username: user.Username, Email: user.Email}, nil
}
