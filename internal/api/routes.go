package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.bodyLimitMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Get("/random", s.handleRandomCards)
			r.Get("/counts", s.handleCardCounts)
			r.Get("/", s.handleListCards)
			r.Get("/group/{groupId}", s.handleListCardsByGroup)
			r.Post("/", s.handleCreateCard)
			r.Patch("/{id}", s.handleUpdateCard)
			r.Post("/{id}/hide", s.handleHideCard)
			r.Post("/{id}/show", s.handleShowCard)
		})
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", s.handleListGroups)
			r.Post("/", s.handleCreateGroup)
			r.Patch("/{id}", s.handleUpdateGroup)
			r.Patch("/{id}/name", s.handleRenameGroup)
			r.Post("/{id}/hide", s.handleHideGroup)
			r.Post("/{id}/show", s.handleShowGroup)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, envelope{OK: false, Message: "route not found"})
	})
	return r
}
