package api

import (
	"github.com/vocadeck/server/internal/db"
	"github.com/vocadeck/server/internal/services"
)

type Server struct {
	DB     *db.DB
	Cards  services.CardService
	Groups services.GroupService

	// Production suppresses diagnostic detail in error responses.
	Production bool
	// BodyLimit caps request body size in bytes.
	BodyLimit int64
}
