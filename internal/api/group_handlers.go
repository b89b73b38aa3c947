package api

import (
	"net/http"

	"github.com/vocadeck/server/internal/errors"
	"github.com/vocadeck/server/internal/logger"
	"github.com/vocadeck/server/internal/models"
	"github.com/vocadeck/server/internal/services"
)

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.Groups.List(r.Context(), enabledParam(r))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, groups)
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var body struct {
		Name        string  `json:"name"`
		Slug        string  `json:"slug"`
		Description string  `json:"description"`
		IconURL     *string `json:"iconUrl"`
		Order       int     `json:"order"`
		Enabled     *bool   `json:"enabled"`
		Fav         *bool   `json:"fav"`
	}
	if err := decodeJSON(r, &body); err != nil {
		log.Warn("invalid create group payload: %v", err)
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	group, err := s.Groups.Create(r.Context(), services.CreateGroupInput{
		Name:        body.Name,
		Slug:        body.Slug,
		Description: body.Description,
		IconURL:     body.IconURL,
		Order:       body.Order,
		Enabled:     body.Enabled,
		Fav:         body.Fav,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	log.Info("group created: id=%d, slug=%s", group.ID, group.Slug)
	respond(w, r, http.StatusCreated, group)
}

func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := parseID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	// An empty body is accepted and treated as a no-op update.
	var upd models.GroupUpdate
	if err := decodeJSON(r, &upd); err != nil && !isEmptyBody(err) {
		log.Warn("invalid update group payload: %v", err)
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	group, err := s.Groups.Update(r.Context(), id, upd)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, group)
}

func (s *Server) handleRenameGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := parseID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		log.Warn("invalid rename group payload: %v", err)
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	group, err := s.Groups.Rename(r.Context(), id, body.Name)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, group)
}

func (s *Server) handleHideGroup(w http.ResponseWriter, r *http.Request) {
	s.setGroupEnabled(w, r, false)
}

func (s *Server) handleShowGroup(w http.ResponseWriter, r *http.Request) {
	s.setGroupEnabled(w, r, true)
}

func (s *Server) setGroupEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	id, err := parseID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	group, err := s.Groups.SetEnabled(r.Context(), id, enabled)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, group)
}
