package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"book-catalog/internal/domains/author/model"
	"book-catalog/pkg/cache/cachetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FindByName(ctx context.Context, name string) (*model.Author, error) {
	args := m.Called(ctx, name)
	a, _ := args.Get(0).(*model.Author)
	return a, args.Error(1)
}

func (m *mockRepo) ListAll(ctx context.Context) ([]model.Author, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).([]model.Author)
	return a, args.Error(1)
}

func (m *mockRepo) GetOrCreateByName(ctx context.Context, name string) (*model.Author, bool, error) {
	args := m.Called(ctx, name)
	a, _ := args.Get(0).(*model.Author)
	return a, args.Bool(1), args.Error(2)
}

func TestResolveByName(t *testing.T) {
	ctx := context.Background()
	herbert := &model.Author{ID: 3, Name: "Frank Herbert"}

	t.Run("existing author is reused", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByName", ctx, "Frank Herbert").Return(herbert, nil).Once()

		svc := NewAuthorService(repo, cachetest.NewMemory(), time.Minute)
		got, err := svc.ResolveByName(ctx, "Frank Herbert", true)

		require.NoError(t, err)
		assert.Equal(t, herbert, got)
		repo.AssertNotCalled(t, "GetOrCreateByName", mock.Anything, mock.Anything)
	})

	t.Run("missing author is created and list cache dropped", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByName", ctx, "Frank Herbert").Return(nil, model.ErrAuthorNotFound).Once()
		repo.On("GetOrCreateByName", ctx, "Frank Herbert").Return(herbert, true, nil).Once()

		mem := cachetest.NewMemory()
		require.NoError(t, mem.Set(ctx, authorListCacheKey, []model.Author{}, 0))

		svc := NewAuthorService(repo, mem, time.Minute)
		got, err := svc.ResolveByName(ctx, "Frank Herbert", true)

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
		exists, _ := mem.Exists(ctx, authorListCacheKey)
		assert.False(t, exists)
		repo.AssertExpectations(t)
	})

	t.Run("creation disabled", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("FindByName", ctx, "Nobody").Return(nil, model.ErrAuthorNotFound).Once()

		svc := NewAuthorService(repo, cachetest.NewMemory(), time.Minute)
		_, err := svc.ResolveByName(ctx, "Nobody", false)

		assert.ErrorIs(t, err, model.ErrAuthorNotFound)
		repo.AssertNotCalled(t, "GetOrCreateByName", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure is wrapped", func(t *testing.T) {
		repo := new(mockRepo)
		boom := errors.New("connection refused")
		repo.On("FindByName", ctx, "X").Return(nil, boom).Once()

		svc := NewAuthorService(repo, cachetest.NewMemory(), time.Minute)
		_, err := svc.ResolveByName(ctx, "X", true)

		assert.ErrorIs(t, err, boom)
	})
}

func TestListAuthors(t *testing.T) {
	ctx := context.Background()

	t.Run("second call served from cache", func(t *testing.T) {
		repo := new(mockRepo)
		authors := []model.Author{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
		repo.On("ListAll", ctx).Return(authors, nil).Once()

		svc := NewAuthorService(repo, cachetest.NewMemory(), time.Minute)

		first, err := svc.ListAuthors(ctx)
		require.NoError(t, err)
		second, err := svc.ListAuthors(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		repo.AssertNumberOfCalls(t, "ListAll", 1)
	})

	t.Run("empty table gives empty slice", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ListAll", ctx).Return(nil, nil).Once()

		svc := NewAuthorService(repo, cachetest.NewMemory(), time.Minute)
		got, err := svc.ListAuthors(ctx)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("cache failure falls through to store", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("ListAll", ctx).Return([]model.Author{{ID: 1, Name: "A"}}, nil).Once()

		mem := cachetest.NewMemory()
		mem.FailGet = errors.New("redis down")

		svc := NewAuthorService(repo, mem, time.Minute)
		got, err := svc.ListAuthors(ctx)

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
