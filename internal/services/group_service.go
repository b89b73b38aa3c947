package services

import (
	"context"
	"strings"

	"github.com/vocadeck/server/internal/errors"
	"github.com/vocadeck/server/internal/logger"
	"github.com/vocadeck/server/internal/models"
	"github.com/vocadeck/server/internal/repository"
)

type CreateGroupInput struct {
	Name        string
	Slug        string
	Description string
	IconURL     *string
	Order       int
	Enabled     *bool
	Fav         *bool
}

// GroupService handles group-related business logic
type GroupService interface {
	List(ctx context.Context, enabled *bool) ([]models.Group, error)
	Create(ctx context.Context, in CreateGroupInput) (*models.Group, error)
	Update(ctx context.Context, id int64, upd models.GroupUpdate) (*models.Group, error)
	Rename(ctx context.Context, id int64, name string) (*models.Group, error)
	SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Group, error)
}

type groupService struct {
	repo repository.GroupRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(repo repository.GroupRepository) GroupService {
	return &groupService{repo: repo}
}

func (s *groupService) List(ctx context.Context, enabled *bool) ([]models.Group, error) {
	log := logger.FromContext(ctx)

	groups, err := s.repo.List(ctx, enabled)
	if err != nil {
		log.Error("failed to list groups: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

func (s *groupService) Create(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(in.Name)
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if name == "" {
		return nil, errors.NewValidationError("name", "is required")
	}
	if slug == "" {
		return nil, errors.NewValidationError("slug", "is required")
	}

	// Pre-check so a duplicate surfaces as a conflict the caller can act
	// on instead of a generic constraint failure.
	existing, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		log.Error("failed to check slug: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("a group with this slug already exists")
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	fav := false
	if in.Fav != nil {
		fav = *in.Fav
	}

	group, err := s.repo.Insert(ctx, models.Group{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
		IconURL:     in.IconURL,
		Order:       in.Order,
		Enabled:     enabled,
		Fav:         fav,
	})
	if err != nil {
		log.Error("failed to create group: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("group created: id=%d, slug=%s", group.ID, group.Slug)
	return group, nil
}

func (s *groupService) Update(ctx context.Context, id int64, upd models.GroupUpdate) (*models.Group, error) {
	log := logger.FromContext(ctx)

	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		upd.Name = &trimmed
	}
	if upd.Description != nil {
		trimmed := strings.TrimSpace(*upd.Description)
		upd.Description = &trimmed
	}

	// An empty payload is a no-op success returning the current record.
	group, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		log.Error("failed to update group: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("group", id)
	}
	return group, nil
}

func (s *groupService) Rename(ctx context.Context, id int64, name string) (*models.Group, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, errors.NewValidationError("name", "is required")
	}
	return s.Update(ctx, id, models.GroupUpdate{Name: &trimmed})
}

func (s *groupService) SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Group, error) {
	log := logger.FromContext(ctx)

	group, err := s.repo.SetEnabled(ctx, id, enabled)
	if err != nil {
		log.Error("failed to set group enabled: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if group == nil {
		return nil, errors.NewNotFoundError("group", id)
	}
	log.Debug("group enabled set: id=%d, enabled=%v", id, enabled)
	return group, nil
}
