package api

import (
	"net/http"

	"github.com/vocabdeck/vocabdeck/internal/models"
)

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.TagService.ListTags(r.Context(), usernameFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	respondJSON(w, r, http.StatusOK, tags)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	tag, err := s.TagService.CreateTag(r.Context(), usernameFromContext(r.Context()), models.TagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, tag)
}

func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req tagRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	tag, err := s.TagService.UpdateTag(r.Context(), usernameFromContext(r.Context()), id, models.TagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.TagService.DeleteTag(r.Context(), usernameFromContext(r.Context()), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
