package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vocadeck/server/internal/models"
	"github.com/vocadeck/server/internal/services"
	"github.com/vocadeck/server/internal/testutil/mocks"
)

func TestGroupCreate_NormalizesNameAndSlug(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	repo.On("FindBySlug", mock.Anything, "food").Return(nil, nil)
	want := models.Group{Name: "Food", Slug: "food", Enabled: true}
	repo.On("Insert", mock.Anything, want).Return(&models.Group{ID: 3, Name: "Food", Slug: "food", Enabled: true}, nil)

	group, err := svc.Create(context.Background(), services.CreateGroupInput{
		Name: "  Food  ",
		Slug: "  FOOD  ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), group.ID)
	repo.AssertExpectations(t)
}

func TestGroupCreate_DuplicateSlug(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	repo.On("FindBySlug", mock.Anything, "food").Return(&models.Group{ID: 1, Slug: "food"}, nil)

	_, err := svc.Create(context.Background(), services.CreateGroupInput{Name: "Food", Slug: "food"})
	appErr := asAppError(t, err)
	assert.Equal(t, 409, appErr.Status)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGroupCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   services.CreateGroupInput
	}{
		{"missing name", services.CreateGroupInput{Slug: "food"}},
		{"blank name", services.CreateGroupInput{Name: "   ", Slug: "food"}},
		{"missing slug", services.CreateGroupInput{Name: "Food"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockGroupRepository)
			svc := services.NewGroupService(repo)

			_, err := svc.Create(context.Background(), tt.in)
			appErr := asAppError(t, err)
			assert.Equal(t, 400, appErr.Status)
			repo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
		})
	}
}

func TestGroupCreate_Overrides(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	disabled := false
	fav := true
	repo.On("FindBySlug", mock.Anything, "animals").Return(nil, nil)
	want := models.Group{Name: "Animals", Slug: "animals", Order: 5, Enabled: false, Fav: true}
	repo.On("Insert", mock.Anything, want).Return(&want, nil)

	_, err := svc.Create(context.Background(), services.CreateGroupInput{
		Name:    "Animals",
		Slug:    "animals",
		Order:   5,
		Enabled: &disabled,
		Fav:     &fav,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGroupUpdate_EmptyPayloadIsNoOp(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	current := &models.Group{ID: 1, Name: "Food", Slug: "food"}
	repo.On("Update", mock.Anything, int64(1), models.GroupUpdate{}).Return(current, nil)

	group, err := svc.Update(context.Background(), 1, models.GroupUpdate{})
	require.NoError(t, err)
	assert.Equal(t, current, group)
}

func TestGroupUpdate_TrimsFields(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	trimmedName := "Food"
	trimmedDesc := "everyday words"
	repo.On("Update", mock.Anything, int64(1), models.GroupUpdate{Name: &trimmedName, Description: &trimmedDesc}).
		Return(&models.Group{ID: 1, Name: "Food"}, nil)

	name := "  Food  "
	desc := " everyday words "
	_, err := svc.Update(context.Background(), 1, models.GroupUpdate{Name: &name, Description: &desc})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGroupUpdate_NotFound(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	repo.On("Update", mock.Anything, int64(99), models.GroupUpdate{}).Return(nil, nil)

	_, err := svc.Update(context.Background(), 99, models.GroupUpdate{})
	appErr := asAppError(t, err)
	assert.Equal(t, 404, appErr.Status)
}

func TestGroupRename(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	name := "Animals"
	repo.On("Update", mock.Anything, int64(1), models.GroupUpdate{Name: &name}).
		Return(&models.Group{ID: 1, Name: "Animals"}, nil)

	group, err := svc.Rename(context.Background(), 1, "  Animals  ")
	require.NoError(t, err)
	assert.Equal(t, "Animals", group.Name)
}

func TestGroupRename_BlankName(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	_, err := svc.Rename(context.Background(), 1, "   ")
	appErr := asAppError(t, err)
	assert.Equal(t, 400, appErr.Status)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestGroupList_NilBecomesEmptySlice(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	repo.On("List", mock.Anything, (*bool)(nil)).Return(nil, nil)

	groups, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupSetEnabled_NotFound(t *testing.T) {
	repo := new(mocks.MockGroupRepository)
	svc := services.NewGroupService(repo)

	repo.On("SetEnabled", mock.Anything, int64(8), true).Return(nil, nil)

	_, err := svc.SetEnabled(context.Background(), 8, true)
	appErr := asAppError(t, err)
	assert.Equal(t, 404, appErr.Status)
}
