package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
// Cho phép swap implementation (Redis, in-memory cho test)
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// - found = true: cache hit, data đã unmarshal vào dest
	// - found = false: cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set marshal value sang JSON và lưu với TTL (0 = không hết hạn)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// SetNX chỉ ghi khi key chưa tồn tại; ok = false nghĩa là key đã có chủ
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa mọi key khớp glob pattern, vd "books:list:*"
	DeletePattern(ctx context.Context, pattern string) error

	Exists(ctx context.Context, key string) (bool, error)

	Ping(ctx context.Context) error
}
