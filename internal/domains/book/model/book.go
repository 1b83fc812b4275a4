package model

import (
	"fmt"

	"book-catalog/internal/shared/validator"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength       = 100
	MaxAuthorNameLength  = 100
	MaxDescriptionLength = 255

	FieldTitle       = "title"
	FieldPrice       = "price"
	FieldAuthorName  = "author_name"
	FieldDescription = "description"
)

// Book là row của bảng books
type Book struct {
	ID          int64
	Title       string
	Description *string
	Price       float64
	AuthorID    int64
}

// BookResponse là hình dạng book trả ra API (author đã được flatten thành name)
type BookResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

// ListFilter: Offset đã được tính từ page, Author rỗng = không lọc
type ListFilter struct {
	Author string
	Offset uint64
	Limit  uint64
}

// NewBook là dữ liệu đã validate để insert
type NewBook struct {
	Title       string
	Description *string
	Price       float64
	AuthorID    int64
}

// BookPatch chỉ chứa các field client gửi lên; nil = giữ nguyên
type BookPatch struct {
	Title       *string
	Description *string
	Price       *float64
	AuthorID    *int64
}

func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil && p.AuthorID == nil
}

// CatalogRow là projection tối thiểu cho export
type CatalogRow struct {
	ID    int64
	Title string
	Price float64
}

// Rules dùng chung cho create (full) và update (partial).
// Thứ tự khai báo quyết định lỗi nào được báo trước.
var Rules = validator.Ruleset{
	{
		Name: FieldTitle,
		Rules: []validation.Rule{
			validator.NotNull(FieldTitle),
			validator.String(FieldTitle),
			validator.MaxLength(FieldTitle, MaxTitleLength),
		},
	},
	{
		Name: FieldPrice,
		Rules: []validation.Rule{
			validator.NotNull(FieldPrice),
			validator.Number(FieldPrice),
			validator.NonNegative(FieldPrice),
		},
	},
	{
		Name: FieldAuthorName,
		Rules: []validation.Rule{
			validator.NotNull(FieldAuthorName),
			validator.String(FieldAuthorName),
			validator.MaxLength(FieldAuthorName, MaxAuthorNameLength),
		},
	},
	{
		Name:     FieldDescription,
		Optional: true,
		Rules: []validation.Rule{
			validator.String(FieldDescription),
			validator.MaxLength(FieldDescription, MaxDescriptionLength),
		},
	},
}

// Cache keys
const (
	bookDetailKeyPrefix = "books:detail:"
	BookListKeyPattern  = "books:list:*"
)

func DetailCacheKey(id int64) string {
	return fmt.Sprintf("%s%d", bookDetailKeyPrefix, id)
}

func ListCacheKey(page int, author string) string {
	return fmt.Sprintf("books:list:%d:%s", page, author)
}
