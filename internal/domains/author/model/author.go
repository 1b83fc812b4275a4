package model

import (
	"errors"
	"time"
)

// Author được định danh bằng name khi ghi book; id chỉ dùng nội bộ
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

var (
	ErrAuthorNotFound = errors.New("author not found")
	// ErrAuthorUpsertConflict: get-or-create không thấy row sau khi đã retry
	ErrAuthorUpsertConflict = errors.New("author upsert did not converge")
)
