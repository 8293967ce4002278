package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/vocabdeck/vocabdeck/internal/auth"
	"github.com/vocabdeck/vocabdeck/internal/services"
)

type Server struct {
	UserService   services.UserService
	CardService   services.CardService
	ReviewService services.ReviewService
	TagService    services.TagService
	StatsService  services.StatsService
	Tokens        *auth.TokenManager

	validate *validator.Validate
}

func NewServer(
	users services.UserService,
	cards services.CardService,
	reviews services.ReviewService,
	tags services.TagService,
	stats services.StatsService,
	tokens *auth.TokenManager,
) *Server {
	return &Server{
		UserService:   users,
		CardService:   cards,
		ReviewService: reviews,
		TagService:    tags,
		StatsService:  stats,
		Tokens:        tokens,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}
