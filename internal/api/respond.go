package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "github.com/vocadeck/server/internal/errors"
	"github.com/vocadeck/server/internal/models"
)

// envelope is the uniform response shape: {ok, data?, meta?, message?}.
type envelope struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, envelope{OK: true, Data: data})
}

func respondList(w http.ResponseWriter, r *http.Request, data any, meta any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, envelope{OK: true, Data: data, Meta: meta})
}

// decodeJSON decodes a request body. An empty body yields io.EOF, which
// some endpoints treat as an empty (no-op) payload.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}

// parseID extracts a positive integer URL parameter.
func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("invalid " + param)
	}
	return id, nil
}

func queryIntOr(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func queryBool(r *http.Request, key string) bool {
	return r.URL.Query().Get(key) == "true"
}

// enabledParam restricts by enabled only when the parameter is present at
// all; "enabled=false" filters for hidden records, absence filters nothing.
func enabledParam(r *http.Request) *bool {
	if !r.URL.Query().Has("enabled") {
		return nil
	}
	b := r.URL.Query().Get("enabled") == "true"
	return &b
}

// cardFilterFromQuery builds the listing filter. An unparseable groupId is
// silently ignored here; the group-scoped route rejects it instead.
func cardFilterFromQuery(r *http.Request) models.CardFilter {
	f := models.CardFilter{
		Enabled: enabledParam(r),
		Search:  r.URL.Query().Get("q"),
	}
	if raw := r.URL.Query().Get("groupId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			f.GroupID = id
		}
	}
	return f
}
