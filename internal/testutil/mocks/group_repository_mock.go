package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vocadeck/server/internal/models"
)

// MockGroupRepository is a mock implementation of repository.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Get(ctx context.Context, id int64) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) List(ctx context.Context, enabled *bool) ([]models.Group, error) {
	args := m.Called(ctx, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockGroupRepository) FindBySlug(ctx context.Context, slug string) (*models.Group, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) Insert(ctx context.Context, group models.Group) (*models.Group, error) {
	args := m.Called(ctx, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) Update(ctx context.Context, id int64, upd models.GroupUpdate) (*models.Group, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupRepository) SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Group, error) {
	args := m.Called(ctx, id, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}
