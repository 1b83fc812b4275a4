package repository

import (
	"testing"

	"book-catalog/internal/domains/book/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func int64Ptr(i int64) *int64     { return &i }

func TestBuildListQuery(t *testing.T) {
	t.Run("unfiltered", func(t *testing.T) {
		query, args, err := buildListQuery(model.ListFilter{Offset: 20, Limit: 10})
		require.NoError(t, err)

		assert.Contains(t, query, "FROM books b JOIN authors a ON a.id = b.author_id")
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY b.id ASC LIMIT 10 OFFSET 20")
		assert.Empty(t, args)
	})

	t.Run("filtered by author", func(t *testing.T) {
		query, args, err := buildListQuery(model.ListFilter{Author: "Frank Herbert", Limit: 10})
		require.NoError(t, err)

		assert.Contains(t, query, "WHERE a.name = $1")
		assert.Contains(t, query, "OFFSET 0")
		assert.Equal(t, []interface{}{"Frank Herbert"}, args)
	})
}

func TestBuildGetQuery(t *testing.T) {
	query, args, err := buildGetQuery(42)
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT b.id, b.title, a.name, b.description, b.price")
	assert.Contains(t, query, "WHERE b.id = $1")
	assert.Equal(t, []interface{}{int64(42)}, args)
}

func TestBuildInsertQuery(t *testing.T) {
	query, args, err := buildInsertQuery(model.NewBook{Title: "Dune", Price: 9.99, AuthorID: 3})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO books")
	assert.Contains(t, query, "RETURNING id")
	require.Len(t, args, 4)
	assert.Equal(t, "Dune", args[0])
	assert.Nil(t, args[1])
	assert.Equal(t, 9.99, args[2])
	assert.Equal(t, int64(3), args[3])
}

func TestBuildUpdateQuery(t *testing.T) {
	t.Run("only supplied fields are set", func(t *testing.T) {
		query, args, err := buildUpdateQuery(7, model.BookPatch{Price: floatPtr(5), AuthorID: int64Ptr(2)})
		require.NoError(t, err)

		assert.Equal(t, "UPDATE books SET price = $1, author_id = $2 WHERE id = $3", query)
		assert.Equal(t, []interface{}{5.0, int64(2), int64(7)}, args)
	})

	t.Run("all fields in column order", func(t *testing.T) {
		query, _, err := buildUpdateQuery(1, model.BookPatch{
			Title:       strPtr("T"),
			Description: strPtr("D"),
			Price:       floatPtr(1),
			AuthorID:    int64Ptr(1),
		})
		require.NoError(t, err)
		assert.Equal(t, "UPDATE books SET title = $1, description = $2, price = $3, author_id = $4 WHERE id = $5", query)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		_, _, err := buildUpdateQuery(1, model.BookPatch{})
		assert.ErrorIs(t, err, errEmptyPatch)
	})
}

func TestBuildDeleteQuery(t *testing.T) {
	query, args, err := buildDeleteQuery(9)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM books WHERE id = $1", query)
	assert.Equal(t, []interface{}{int64(9)}, args)
}

func TestBuildCatalogPageQuery(t *testing.T) {
	query, args, err := buildCatalogPageQuery(20000, 20000)
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, title, price FROM books WHERE id > $1 ORDER BY id ASC LIMIT 20000", query)
	assert.Equal(t, []interface{}{int64(20000)}, args)
}
