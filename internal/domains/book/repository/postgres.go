package repository

import (
	"context"
	"errors"
	"fmt"

	"book-catalog/internal/domains/book/model"
	pkgdb "book-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
)

// postgresRepository - raw SQL (squirrel builder) trên pgxpool
type postgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) RepositoryInterface {
	return &postgresRepository{db: db}
}

func scanProjection(row pgx.Row) (*model.BookResponse, error) {
	var b model.BookResponse
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Price); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.BookResponse, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.BookResponse, error) {
		b, err := scanProjection(row)
		if err != nil {
			return model.BookResponse{}, err
		}
		return *b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.BookResponse, error) {
	return r.getByID(ctx, r.db, id)
}

// rowQuerier: pool hoặc tx
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *postgresRepository) getByID(ctx context.Context, q rowQuerier, id int64) (*model.BookResponse, error) {
	query, args, err := buildGetQuery(id)
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	b, err := scanProjection(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b model.NewBook) (int64, error) {
	query, args, err := buildInsertQuery(b)
	if err != nil {
		return 0, fmt.Errorf("build insert query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create book: %w", err)
	}
	return id, nil
}

// Update chạy UPDATE + SELECT trong cùng transaction để projection trả về
// đúng với dữ liệu vừa ghi
func (r *postgresRepository) Update(ctx context.Context, id int64, patch model.BookPatch) (*model.BookResponse, error) {
	query, args, err := buildUpdateQuery(id, patch)
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	return pkgdb.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.BookResponse, error) {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update book: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrBookNotFound
		}
		return r.getByID(ctx, tx, id)
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := buildDeleteQuery(id)
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) CatalogPage(ctx context.Context, afterID int64, limit uint64) ([]model.CatalogRow, error) {
	query, args, err := buildCatalogPageQuery(afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("build catalog query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog page: %w", err)
	}

	page, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.CatalogRow, error) {
		var c model.CatalogRow
		err := row.Scan(&c.ID, &c.Title, &c.Price)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog page: %w", err)
	}
	return page, nil
}
