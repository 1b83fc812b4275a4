package service

import (
	"context"

	authorModel "book-catalog/internal/domains/author/model"
	"book-catalog/internal/domains/book/model"
)

// ServiceInterface - business logic của book. Mọi error trả về đều là
// *apperror.Error (NotFound / MissingParams / Validation / System).
type ServiceInterface interface {
	// ListBooks: page 1-based, author rỗng = không lọc. Trang rỗng -> NotFound.
	ListBooks(ctx context.Context, page int, author string) ([]model.BookResponse, error)
	GetBook(ctx context.Context, id int64) (*model.BookResponse, error)
	CreateBook(ctx context.Context, input map[string]interface{}) (*model.CreatedResponse, error)
	UpdateBook(ctx context.Context, id int64, input map[string]interface{}) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, id int64) error
}

// AuthorResolver là phần của author service mà book cần
type AuthorResolver interface {
	ResolveByName(ctx context.Context, name string, allowCreate bool) (*authorModel.Author, error)
}
