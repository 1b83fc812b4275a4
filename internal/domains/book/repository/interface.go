package repository

import (
	"context"

	"book-catalog/internal/domains/book/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RepositoryInterface là Book Store. Các method đọc trả về BookResponse
// (đã join author name) vì service không cần row thô.
type RepositoryInterface interface {
	// List sắp xếp theo id tăng dần; Author rỗng = không lọc
	List(ctx context.Context, filter model.ListFilter) ([]model.BookResponse, error)

	// GetByID trả ErrBookNotFound nếu không có
	GetByID(ctx context.Context, id int64) (*model.BookResponse, error)

	Create(ctx context.Context, b model.NewBook) (int64, error)

	// Update chỉ ghi các field có trong patch, trả về projection sau khi update
	Update(ctx context.Context, id int64, patch model.BookPatch) (*model.BookResponse, error)

	// Delete trả ErrBookNotFound khi không có row nào bị xóa
	Delete(ctx context.Context, id int64) error

	// CatalogPage đọc tối đa limit book có id > afterID, id tăng dần
	CatalogPage(ctx context.Context, afterID int64, limit uint64) ([]model.CatalogRow, error)
}
