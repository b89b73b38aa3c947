package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vocadeck/server/internal/errors"
	"github.com/vocadeck/server/internal/logger"
	"github.com/vocadeck/server/internal/models"
	"github.com/vocadeck/server/internal/repository"
)

const (
	DefaultPageLimit  = 20
	MaxPageLimit      = 9999
	DefaultSampleSize = 20
	MaxSampleSize     = 200
)

// ListCardsInput drives one paginated listing request. Shuffle trades the
// default effective ordering for a per-request random one; Reverse swaps
// the two text fields in the response.
type ListCardsInput struct {
	Filter  models.CardFilter
	Page    int
	Limit   int
	Shuffle bool
	Reverse bool
}

// SampleCardsInput drives one unpaginated random-sample request.
type SampleCardsInput struct {
	Filter  models.CardFilter
	Count   int
	Reverse bool
}

type CreateCardInput struct {
	English  string
	Spanish  string
	ImageURL *string
	GroupID  int64
	Order    int
	Enabled  *bool
	Tags     []string
}

// CardService handles card-related business logic
type CardService interface {
	List(ctx context.Context, in ListCardsInput) ([]models.Card, models.PageMeta, error)
	Sample(ctx context.Context, in SampleCardsInput) ([]models.Card, models.SampleMeta, error)
	Create(ctx context.Context, in CreateCardInput) (*models.Card, error)
	Update(ctx context.Context, id int64, upd models.CardUpdate) (*models.Card, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Card, error)
	CountByGroup(ctx context.Context) (map[int64]int, error)
}

type cardService struct {
	repo repository.CardRepository
}

// NewCardService creates a new CardService
func NewCardService(repo repository.CardRepository) CardService {
	return &cardService{repo: repo}
}

func (s *cardService) List(ctx context.Context, in ListCardsInput) ([]models.Card, models.PageMeta, error) {
	log := logger.FromContext(ctx)

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	order := repository.OrderEffective
	if in.Shuffle {
		order = repository.OrderShuffled
	}
	skip := (page - 1) * limit
	log.Debug("listing cards: page=%d, limit=%d, shuffle=%v, reverse=%v", page, limit, in.Shuffle, in.Reverse)

	// The page and the total are independent reads, so issue them together.
	// A write landing between them is a tolerated inconsistency.
	var (
		cards []models.Card
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cards, err = s.repo.List(gctx, in.Filter, order, skip, limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, in.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, models.PageMeta{}, errors.NewInternalError(err)
	}

	meta := models.PageMeta{
		Page:     page,
		Limit:    limit,
		Total:    total,
		Pages:    (total + limit - 1) / limit,
		Shuffled: in.Shuffle,
	}
	return applyReverse(cards, in.Reverse), meta, nil
}

func (s *cardService) Sample(ctx context.Context, in SampleCardsInput) ([]models.Card, models.SampleMeta, error) {
	log := logger.FromContext(ctx)

	size := in.Count
	if size < 1 {
		size = 1
	}
	if size > MaxSampleSize {
		size = MaxSampleSize
	}
	log.Debug("sampling cards: size=%d, reverse=%v", size, in.Reverse)

	cards, err := s.repo.Sample(ctx, in.Filter, size)
	if err != nil {
		log.Error("failed to sample cards: %v", err)
		return nil, models.SampleMeta{}, errors.NewInternalError(err)
	}

	data := applyReverse(cards, in.Reverse)
	return data, models.SampleMeta{Count: len(data), Sampled: true}, nil
}

func (s *cardService) Create(ctx context.Context, in CreateCardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)

	english := strings.TrimSpace(in.English)
	spanish := strings.TrimSpace(in.Spanish)
	if english == "" {
		return nil, errors.NewValidationError("english", "is required")
	}
	if spanish == "" {
		return nil, errors.NewValidationError("spanish", "is required")
	}
	if in.GroupID <= 0 {
		return nil, errors.NewValidationError("groupId", "must be a valid group id")
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	card, err := s.repo.Insert(ctx, models.Card{
		English:  english,
		Spanish:  spanish,
		ImageURL: in.ImageURL,
		GroupID:  in.GroupID,
		Order:    in.Order,
		Enabled:  enabled,
		Tags:     tags,
	})
	if err != nil {
		log.Error("failed to create card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("card created: id=%d, group_id=%d", card.ID, card.GroupID)
	return card, nil
}

func (s *cardService) Update(ctx context.Context, id int64, upd models.CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx)

	if upd.GroupID != nil && *upd.GroupID <= 0 {
		return nil, errors.NewValidationError("groupId", "must be a valid group id")
	}

	card, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *cardService) SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Card, error) {
	log := logger.FromContext(ctx)

	card, err := s.repo.SetEnabled(ctx, id, enabled)
	if err != nil {
		log.Error("failed to set card enabled: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	log.Debug("card enabled set: id=%d, enabled=%v", id, enabled)
	return card, nil
}

func (s *cardService) CountByGroup(ctx context.Context) (map[int64]int, error) {
	counts, err := s.repo.CountByGroup(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return counts, nil
}

// applyReverse swaps english and spanish in the response representation
// only. It always returns a fresh slice of fresh values so store-returned
// records are never mutated in place.
func applyReverse(cards []models.Card, reverse bool) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	if !reverse {
		return out
	}
	for i := range out {
		out[i].English, out[i].Spanish = out[i].Spanish, out[i].English
	}
	return out
}
