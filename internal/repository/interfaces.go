package repository

import (
	"context"

	"github.com/vocadeck/server/internal/models"
)

// CardOrder selects how a card listing is sorted.
type CardOrder int

const (
	// OrderEffective places cards with a positive explicit order first,
	// ascending, then everything else alphabetically by spanish.
	OrderEffective CardOrder = iota
	// OrderShuffled assigns each matching card a fresh random key per
	// query and sorts by it.
	OrderShuffled
)

// CardRepository handles card data access.
// Lookup methods return (nil, nil) when the record does not exist.
type CardRepository interface {
	Get(ctx context.Context, id int64) (*models.Card, error)
	List(ctx context.Context, filter models.CardFilter, order CardOrder, skip, take int) ([]models.Card, error)
	Count(ctx context.Context, filter models.CardFilter) (int, error)
	Sample(ctx context.Context, filter models.CardFilter, size int) ([]models.Card, error)
	Insert(ctx context.Context, card models.Card) (*models.Card, error)
	Update(ctx context.Context, id int64, upd models.CardUpdate) (*models.Card, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Card, error)
	CountByGroup(ctx context.Context) (map[int64]int, error)
}

// GroupRepository handles group data access.
// Lookup methods return (nil, nil) when the record does not exist.
type GroupRepository interface {
	Get(ctx context.Context, id int64) (*models.Group, error)
	List(ctx context.Context, enabled *bool) ([]models.Group, error)
	FindBySlug(ctx context.Context, slug string) (*models.Group, error)
	Insert(ctx context.Context, group models.Group) (*models.Group, error)
	Update(ctx context.Context, id int64, upd models.GroupUpdate) (*models.Group, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Group, error)
}
