package api

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/vocadeck/server/internal/logger"
)

// handleHealth is a liveness probe: the process is up.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{"ok": true, "status": "healthy"})
}

// handleReady is a readiness probe: 200 when the database answers a ping,
// 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := s.DB.PingContext(r.Context()); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]any{"ok": false, "status": "database unavailable"})
		return
	}
	render.JSON(w, r, map[string]any{"ok": true, "status": "ready"})
}
