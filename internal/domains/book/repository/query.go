package repository

import (
	"errors"

	"book-catalog/internal/domains/book/model"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var errEmptyPatch = errors.New("update patch has no fields")

func projectionSelect() sq.SelectBuilder {
	return psql.
		Select("b.id", "b.title", "a.name", "b.description", "b.price").
		From("books b").
		Join("authors a ON a.id = b.author_id")
}

func buildListQuery(f model.ListFilter) (string, []interface{}, error) {
	q := projectionSelect().
		OrderBy("b.id ASC").
		Limit(f.Limit).
		Offset(f.Offset)

	if f.Author != "" {
		q = q.Where(sq.Eq{"a.name": f.Author})
	}
	return q.ToSql()
}

func buildGetQuery(id int64) (string, []interface{}, error) {
	return projectionSelect().Where(sq.Eq{"b.id": id}).ToSql()
}

func buildInsertQuery(b model.NewBook) (string, []interface{}, error) {
	return psql.
		Insert("books").
		Columns("title", "description", "price", "author_id").
		Values(b.Title, b.Description, b.Price, b.AuthorID).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateQuery(id int64, p model.BookPatch) (string, []interface{}, error) {
	if p.IsEmpty() {
		return "", nil, errEmptyPatch
	}

	q := psql.Update("books")
	if p.Title != nil {
		q = q.Set("title", *p.Title)
	}
	if p.Description != nil {
		q = q.Set("description", *p.Description)
	}
	if p.Price != nil {
		q = q.Set("price", *p.Price)
	}
	if p.AuthorID != nil {
		q = q.Set("author_id", *p.AuthorID)
	}
	return q.Where(sq.Eq{"id": id}).ToSql()
}

func buildDeleteQuery(id int64) (string, []interface{}, error) {
	return psql.Delete("books").Where(sq.Eq{"id": id}).ToSql()
}

func buildCatalogPageQuery(afterID int64, limit uint64) (string, []interface{}, error) {
	return psql.
		Select("id", "title", "price").
		From("books").
		Where(sq.Gt{"id": afterID}).
		OrderBy("id ASC").
		Limit(limit).
		ToSql()
}
