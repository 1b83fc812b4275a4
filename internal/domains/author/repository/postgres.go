package repository

import (
	"context"
	"errors"
	"fmt"

	"book-catalog/internal/domains/author/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// DBTX is the subset of *pgxpool.Pool (and pgx.Tx) the stores need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepository struct {
	db         DBTX
	maxRetries int
}

// NewPostgresRepository - maxRetries là số lần chạy lại get-or-create khi
// statement không thấy row (insert đồng thời chưa visible với snapshot hiện tại)
func NewPostgresRepository(db DBTX, maxRetries int) RepositoryInterface {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &postgresRepository{db: db, maxRetries: maxRetries}
}

const (
	findByNameQuery = `
		SELECT id, name, created_at
		FROM authors
		WHERE name = $1
		LIMIT 1`

	listAllQuery = `
		SELECT id, name, created_at
		FROM authors
		ORDER BY id ASC`

	// Một statement duy nhất: insert nếu chưa có, ngược lại đọc row hiện tại.
	// ON CONFLICT dựa trên unique index authors_name_key.
	getOrCreateQuery = `
		WITH ins AS (
			INSERT INTO authors (name)
			VALUES ($1)
			ON CONFLICT (name) DO NOTHING
			RETURNING id, name, created_at
		)
		SELECT id, name, created_at, TRUE AS created FROM ins
		UNION ALL
		SELECT id, name, created_at, FALSE AS created FROM authors WHERE name = $1
		LIMIT 1`
)

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*model.Author, error) {
	var a model.Author
	err := r.db.QueryRow(ctx, findByNameQuery, name).Scan(&a.ID, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to find author by name: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Author, error) {
	rows, err := r.db.Query(ctx, listAllQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	authors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Author, error) {
		var a model.Author
		err := row.Scan(&a.ID, &a.Name, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan authors: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) GetOrCreateByName(ctx context.Context, name string) (*model.Author, bool, error) {
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		var (
			a       model.Author
			created bool
		)
		err := r.db.QueryRow(ctx, getOrCreateQuery, name).Scan(&a.ID, &a.Name, &a.CreatedAt, &created)
		if err == nil {
			return &a, created, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, fmt.Errorf("failed to upsert author: %w", err)
		}

		log.Debug().Str("author", name).Int("attempt", attempt).Msg("author upsert raced, retrying")
	}

	return nil, false, fmt.Errorf("%w: %q", model.ErrAuthorUpsertConflict, name)
}
