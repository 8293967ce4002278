package api

import (
	"net/http"

	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req signupRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("signup attempt for %s", req.Username)
	result, err := s.UserService.Signup(r.Context(), models.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, result)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.UserService.Login(r.Context(), models.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, result)
}
