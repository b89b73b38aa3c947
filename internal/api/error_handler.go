package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/vocadeck/server/internal/errors"
	"github.com/vocadeck/server/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	// Check if it's already an AppError
	appErr, ok := err.(*errors.AppError)
	if !ok {
		// Wrap unknown errors as internal errors
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	message := appErr.Message
	// Outside production, surface the underlying fault to ease debugging.
	if !s.Production && appErr.Err != nil {
		message = fmt.Sprintf("%s: %v", message, appErr.Err)
	}

	render.Status(r, appErr.Status)
	render.JSON(w, r, envelope{OK: false, Message: message})
}
