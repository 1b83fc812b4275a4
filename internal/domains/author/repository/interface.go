package repository

import (
	"context"

	"book-catalog/internal/domains/author/model"
)

// RepositoryInterface là Author Store
type RepositoryInterface interface {
	// FindByName so khớp chính xác, phân biệt hoa thường. ErrAuthorNotFound nếu không có.
	FindByName(ctx context.Context, name string) (*model.Author, error)

	// ListAll trả về toàn bộ author theo id tăng dần
	ListAll(ctx context.Context) ([]model.Author, error)

	// GetOrCreateByName là thao tác atomic: hai request đồng thời cùng name
	// nhận về cùng một author. created = true nếu row vừa được insert.
	GetOrCreateByName(ctx context.Context, name string) (author *model.Author, created bool, err error)
}
