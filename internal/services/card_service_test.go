package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vocadeck/server/internal/errors"
	"github.com/vocadeck/server/internal/models"
	"github.com/vocadeck/server/internal/repository"
	"github.com/vocadeck/server/internal/services"
	"github.com/vocadeck/server/internal/testutil/mocks"
)

func asAppError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, stderrors.As(err, &appErr), "expected an AppError, got %v", err)
	return appErr
}

func TestCardList_MetaMath(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	cards := []models.Card{{ID: 1, English: "dog", Spanish: "perro"}}
	repo.On("List", mock.Anything, models.CardFilter{}, repository.OrderEffective, 20, 20).Return(cards, nil)
	repo.On("Count", mock.Anything, models.CardFilter{}).Return(45, nil)

	data, meta, err := svc.List(context.Background(), services.ListCardsInput{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, cards, data)
	assert.Equal(t, models.PageMeta{Page: 2, Limit: 20, Total: 45, Pages: 3, Shuffled: false}, meta)
	repo.AssertExpectations(t)
}

func TestCardList_PageBeyondRange(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	repo.On("List", mock.Anything, models.CardFilter{}, repository.OrderEffective, 40, 20).Return([]models.Card{}, nil)
	repo.On("Count", mock.Anything, models.CardFilter{}).Return(5, nil)

	data, meta, err := svc.List(context.Background(), services.ListCardsInput{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 1, meta.Pages)
}

func TestCardList_EmptyResult(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	repo.On("List", mock.Anything, models.CardFilter{}, repository.OrderEffective, 0, 20).Return(nil, nil)
	repo.On("Count", mock.Anything, models.CardFilter{}).Return(0, nil)

	data, meta, err := svc.List(context.Background(), services.ListCardsInput{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
	assert.Equal(t, 0, meta.Pages)
}

func TestCardList_ClampsPageAndLimit(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantSkip  int
		wantTake  int
		wantPage  int
		wantLimit int
	}{
		{"negative page floors to 1", -3, 20, 0, 20, 1, 20},
		{"zero limit raises to 1", 1, 0, 0, 1, 1, 1},
		{"huge limit caps at 9999", 1, 50000, 0, 9999, 1, 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCardRepository)
			svc := services.NewCardService(repo)

			repo.On("List", mock.Anything, models.CardFilter{}, repository.OrderEffective, tt.wantSkip, tt.wantTake).Return([]models.Card{}, nil)
			repo.On("Count", mock.Anything, models.CardFilter{}).Return(0, nil)

			_, meta, err := svc.List(context.Background(), services.ListCardsInput{Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, meta.Page)
			assert.Equal(t, tt.wantLimit, meta.Limit)
			repo.AssertExpectations(t)
		})
	}
}

func TestCardList_Shuffle(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	repo.On("List", mock.Anything, models.CardFilter{}, repository.OrderShuffled, 0, 20).Return([]models.Card{{ID: 1}}, nil)
	repo.On("Count", mock.Anything, models.CardFilter{}).Return(1, nil)

	_, meta, err := svc.List(context.Background(), services.ListCardsInput{Page: 1, Limit: 20, Shuffle: true})
	require.NoError(t, err)
	assert.True(t, meta.Shuffled)
	repo.AssertExpectations(t)
}

func TestCardList_ReverseSwapsWithoutMutating(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	stored := []models.Card{
		{ID: 1, English: "dog", Spanish: "perro"},
		{ID: 2, English: "cat", Spanish: "gato"},
	}
	repo.On("List", mock.Anything, models.CardFilter{}, repository.OrderEffective, 0, 20).Return(stored, nil)
	repo.On("Count", mock.Anything, models.CardFilter{}).Return(2, nil)

	data, _, err := svc.List(context.Background(), services.ListCardsInput{Page: 1, Limit: 20, Reverse: true})
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, "perro", data[0].English)
	assert.Equal(t, "dog", data[0].Spanish)
	assert.Equal(t, "gato", data[1].English)

	// The store-returned slice is untouched.
	assert.Equal(t, "dog", stored[0].English)
	assert.Equal(t, "perro", stored[0].Spanish)
}

func TestCardList_RepoError(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	repo.On("List", mock.Anything, models.CardFilter{}, repository.OrderEffective, 0, 20).Return([]models.Card{}, nil).Maybe()
	repo.On("Count", mock.Anything, models.CardFilter{}).Return(0, stderrors.New("disk on fire"))

	_, _, err := svc.List(context.Background(), services.ListCardsInput{Page: 1, Limit: 20})
	appErr := asAppError(t, err)
	assert.Equal(t, 500, appErr.Status)
}

func TestCardSample_Clamps(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		wantSize int
	}{
		{"oversized count caps at 200", 500, 200},
		{"zero count raises to 1", 0, 1},
		{"negative count raises to 1", -7, 1},
		{"normal count passes through", 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCardRepository)
			svc := services.NewCardService(repo)

			repo.On("Sample", mock.Anything, models.CardFilter{}, tt.wantSize).Return([]models.Card{{ID: 1}}, nil)

			data, meta, err := svc.Sample(context.Background(), services.SampleCardsInput{Count: tt.count})
			require.NoError(t, err)
			assert.Len(t, data, 1)
			assert.Equal(t, models.SampleMeta{Count: 1, Sampled: true}, meta)
			repo.AssertExpectations(t)
		})
	}
}

func TestCardSample_Reverse(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	repo.On("Sample", mock.Anything, models.CardFilter{}, 20).Return([]models.Card{{English: "sun", Spanish: "sol"}}, nil)

	data, _, err := svc.Sample(context.Background(), services.SampleCardsInput{Count: 20, Reverse: true})
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "sol", data[0].English)
	assert.Equal(t, "sun", data[0].Spanish)
}

func TestCardCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   services.CreateCardInput
	}{
		{"missing english", services.CreateCardInput{Spanish: "perro", GroupID: 1}},
		{"blank english", services.CreateCardInput{English: "   ", Spanish: "perro", GroupID: 1}},
		{"missing spanish", services.CreateCardInput{English: "dog", GroupID: 1}},
		{"missing group", services.CreateCardInput{English: "dog", Spanish: "perro"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCardRepository)
			svc := services.NewCardService(repo)

			_, err := svc.Create(context.Background(), tt.in)
			appErr := asAppError(t, err)
			assert.Equal(t, 400, appErr.Status)
			repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestCardCreate_TrimsAndDefaults(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	want := models.Card{English: "dog", Spanish: "perro", GroupID: 1, Enabled: true, Tags: []string{}}
	repo.On("Insert", mock.Anything, want).Return(&models.Card{ID: 7, English: "dog", Spanish: "perro", GroupID: 1, Enabled: true, Tags: []string{}}, nil)

	card, err := svc.Create(context.Background(), services.CreateCardInput{
		English: "  dog  ",
		Spanish: " perro ",
		GroupID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), card.ID)
	repo.AssertExpectations(t)
}

func TestCardUpdate_NotFound(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	repo.On("Update", mock.Anything, int64(42), models.CardUpdate{}).Return(nil, nil)

	_, err := svc.Update(context.Background(), 42, models.CardUpdate{})
	appErr := asAppError(t, err)
	assert.Equal(t, 404, appErr.Status)
}

func TestCardUpdate_InvalidGroupID(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	bad := int64(-1)
	_, err := svc.Update(context.Background(), 42, models.CardUpdate{GroupID: &bad})
	appErr := asAppError(t, err)
	assert.Equal(t, 400, appErr.Status)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCardSetEnabled(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	repo.On("SetEnabled", mock.Anything, int64(1), true).Return(&models.Card{ID: 1, Enabled: true}, nil)

	card, err := svc.SetEnabled(context.Background(), 1, true)
	require.NoError(t, err)
	assert.True(t, card.Enabled)
}

func TestCardSetEnabled_NotFound(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	repo.On("SetEnabled", mock.Anything, int64(9), false).Return(nil, nil)

	_, err := svc.SetEnabled(context.Background(), 9, false)
	appErr := asAppError(t, err)
	assert.Equal(t, 404, appErr.Status)
}

func TestCardCountByGroup(t *testing.T) {
	repo := new(mocks.MockCardRepository)
	svc := services.NewCardService(repo)

	repo.On("CountByGroup", mock.Anything).Return(map[int64]int{1: 3, 2: 1}, nil)

	counts, err := svc.CountByGroup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 3, 2: 1}, counts)
}
