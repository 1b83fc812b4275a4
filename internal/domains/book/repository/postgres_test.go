package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	authorRepo "book-catalog/internal/domains/author/repository"
	"book-catalog/internal/domains/book/model"
	"book-catalog/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, (&database.PostgresDB{Pool: pool}).EnsureSchema(ctx))
	return pool
}

func TestBookStoreLifecycle(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	books := NewPostgresRepository(pool)
	authors := authorRepo.NewPostgresRepository(pool, 3)

	authorName := "Herbert " + uuid.NewString()
	author, _, err := authors.GetOrCreateByName(ctx, authorName)
	require.NoError(t, err)

	id, err := books.Create(ctx, model.NewBook{Title: "Dune", Price: 9.99, AuthorID: author.ID})
	require.NoError(t, err)

	got, err := books.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.BookResponse{ID: id, Title: "Dune", Author: authorName, Price: 9.99}, *got)
	assert.Nil(t, got.Description)

	listed, err := books.List(ctx, model.ListFilter{Author: authorName, Limit: 10})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, id, listed[0].ID)

	desc := "Arrakis"
	updated, err := books.Update(ctx, id, model.BookPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Dune", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Arrakis", *updated.Description)

	page, err := books.CatalogPage(ctx, id-1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, id, page[0].ID)

	require.NoError(t, books.Delete(ctx, id))
	assert.ErrorIs(t, books.Delete(ctx, id), model.ErrBookNotFound)

	_, err = books.GetByID(ctx, id)
	assert.ErrorIs(t, err, model.ErrBookNotFound)

	_, err = books.Update(ctx, id, model.BookPatch{Description: &desc})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestBookStorePagesAreDisjoint(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	books := NewPostgresRepository(pool)
	authors := authorRepo.NewPostgresRepository(pool, 3)

	authorName := "Pager " + uuid.NewString()
	author, _, err := authors.GetOrCreateByName(ctx, authorName)
	require.NoError(t, err)

	ids := make([]int64, 0, 13)
	for i := 0; i < 13; i++ {
		id, err := books.Create(ctx, model.NewBook{Title: fmt.Sprintf("Volume %02d", i), Price: float64(i), AuthorID: author.ID})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	t.Cleanup(func() {
		for _, id := range ids {
			_ = books.Delete(context.Background(), id)
		}
	})

	first, err := books.List(ctx, model.ListFilter{Author: authorName, Offset: 0, Limit: 10})
	require.NoError(t, err)
	second, err := books.List(ctx, model.ListFilter{Author: authorName, Offset: 10, Limit: 10})
	require.NoError(t, err)

	require.Len(t, first, 10)
	require.Len(t, second, 3)

	var got []int64
	for _, b := range append(first, second...) {
		got = append(got, b.ID)
	}
	assert.Equal(t, ids, got, "page 2 tiếp nối page 1, không trùng, id tăng dần")
	assert.Less(t, first[len(first)-1].ID, second[0].ID)
}
