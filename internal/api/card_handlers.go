package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vocadeck/server/internal/errors"
	"github.com/vocadeck/server/internal/logger"
	"github.com/vocadeck/server/internal/models"
	"github.com/vocadeck/server/internal/services"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	in := services.ListCardsInput{
		Filter:  cardFilterFromQuery(r),
		Page:    queryIntOr(r, "page", 1),
		Limit:   queryIntOr(r, "limit", services.DefaultPageLimit),
		Shuffle: queryBool(r, "shuffle"),
		Reverse: queryBool(r, "reverse"),
	}

	cards, meta, err := s.Cards.List(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondList(w, r, cards, meta)
}

func (s *Server) handleListCardsByGroup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	// Unlike the groupId query parameter, an invalid path parameter is a
	// hard failure.
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil || groupID <= 0 {
		log.Warn("invalid groupId: %s", chi.URLParam(r, "groupId"))
		s.handleError(w, r, errors.NewBadRequestError("invalid groupId"))
		return
	}

	filter := cardFilterFromQuery(r)
	filter.GroupID = groupID

	in := services.ListCardsInput{
		Filter:  filter,
		Page:    queryIntOr(r, "page", 1),
		Limit:   queryIntOr(r, "limit", services.DefaultPageLimit),
		Shuffle: queryBool(r, "shuffle"),
		Reverse: queryBool(r, "reverse"),
	}

	cards, meta, err := s.Cards.List(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondList(w, r, cards, meta)
}

func (s *Server) handleRandomCards(w http.ResponseWriter, r *http.Request) {
	in := services.SampleCardsInput{
		Filter:  cardFilterFromQuery(r),
		Count:   queryIntOr(r, "count", services.DefaultSampleSize),
		Reverse: queryBool(r, "reverse"),
	}

	cards, meta, err := s.Cards.Sample(r.Context(), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respondList(w, r, cards, meta)
}

func (s *Server) handleCardCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.Cards.CountByGroup(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, counts)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var body struct {
		English  string   `json:"english"`
		Spanish  string   `json:"spanish"`
		ImageURL *string  `json:"imageUrl"`
		GroupID  int64    `json:"groupId"`
		Order    int      `json:"order"`
		Enabled  *bool    `json:"enabled"`
		Tags     []string `json:"tags"`
	}
	if err := decodeJSON(r, &body); err != nil {
		log.Warn("invalid create card payload: %v", err)
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	card, err := s.Cards.Create(r.Context(), services.CreateCardInput{
		English:  body.English,
		Spanish:  body.Spanish,
		ImageURL: body.ImageURL,
		GroupID:  body.GroupID,
		Order:    body.Order,
		Enabled:  body.Enabled,
		Tags:     body.Tags,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	log.Info("card created: id=%d", card.ID)
	respond(w, r, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := parseID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var upd models.CardUpdate
	if err := decodeJSON(r, &upd); err != nil && !isEmptyBody(err) {
		log.Warn("invalid update card payload: %v", err)
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	card, err := s.Cards.Update(r.Context(), id, upd)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, card)
}

func (s *Server) handleHideCard(w http.ResponseWriter, r *http.Request) {
	s.setCardEnabled(w, r, false)
}

func (s *Server) handleShowCard(w http.ResponseWriter, r *http.Request) {
	s.setCardEnabled(w, r, true)
}

func (s *Server) setCardEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	id, err := parseID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	card, err := s.Cards.SetEnabled(r.Context(), id, enabled)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, card)
}
