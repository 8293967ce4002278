package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vocabdeck/vocabdeck/internal/logger"
	"github.com/vocabdeck/vocabdeck/internal/models"
)

func cardInputFromRequest(req cardRequest) models.CardInput {
	return models.CardInput{
		Front:             req.Front,
		Back:              req.Back,
		ExampleSentence:   req.ExampleSentence,
		LanguageSelection: req.LanguageSelection,
		AudioURL:          req.AudioURL,
		TagIDs:            req.TagIDs,
	}
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), usernameFromContext(r.Context()), cardInputFromRequest(req))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.GetCard(r.Context(), usernameFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := r.URL.Query()

	filter := models.CardFilter{
		Search:  q.Get("search"),
		SortBy:  q.Get("sort_by"),
		SortDir: strings.ToLower(q.Get("sort_dir")),
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		filter.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		filter.Offset = n
	}

	log.Debug("listing cards: search=%q sort_by=%q", filter.Search, filter.SortBy)
	cards, err := s.CardService.ListCards(r.Context(), usernameFromContext(r.Context()), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.LeanCard{}
	}

	respondJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req cardRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateCard(r.Context(), usernameFromContext(r.Context()), id, cardInputFromRequest(req))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), usernameFromContext(r.Context()), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.CardService.DueCards(r.Context(), usernameFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}

	respondJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleDueCount(w http.ResponseWriter, r *http.Request) {
	n, err := s.CardService.DueCount(r.Context(), usernameFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]int{"count": n})
}

func (s *Server) handleTotalCount(w http.ResponseWriter, r *http.Request) {
	n, err := s.CardService.TotalCount(r.Context(), usernameFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]int{"count": n})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.DeckStats(r.Context(), usernameFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, stats)
}
