package api

import (
	"net/http"

	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
)

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req reviewRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("review: card_id=%d quality=%d", req.CardID, *req.Quality)
	card, err := s.ReviewService.ReviewCard(r.Context(), usernameFromContext(r.Context()), req.CardID, *req.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleReviewHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	events, err := s.ReviewService.ReviewHistory(r.Context(), usernameFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if events == nil {
		events = []models.ReviewHistory{}
	}

	respondJSON(w, r, http.StatusOK, events)
}
