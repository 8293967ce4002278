package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Route("/v1/vocabulary", func(r chi.Router) {
				r.Get("/", s.handleListCards)
				r.Post("/", s.handleCreateCard)
				r.Get("/due", s.handleDueCards)
				r.Get("/due/count", s.handleDueCount)
				r.Get("/count", s.handleTotalCount)
				r.Get("/{id}", s.handleGetCard)
				r.Put("/{id}", s.handleUpdateCard)
				r.Delete("/{id}", s.handleDeleteCard)
				r.Get("/{id}/history", s.handleReviewHistory)
			})

			r.Get("/v1/stats", s.handleStats)

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", s.handleListTags)
				r.Post("/", s.handleCreateTag)
				r.Put("/{id}", s.handleUpdateTag)
				r.Delete("/{id}", s.handleDeleteTag)
			})

			r.Post("/review", s.handleReview)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
