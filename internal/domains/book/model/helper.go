package model

import (
	"strconv"
	"strings"
)

// ParseID nhận id từ path param; chỉ chấp nhận số nguyên dương
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ParsePage: query page rỗng = trang đầu (0). Page là 1-based,
// giá trị <= 1 đều trỏ về trang đầu.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidPage
	}
	return page, nil
}

// EffectivePage đổi page 1-based của client sang index 0-based
func EffectivePage(page int) int {
	if page-1 < 0 {
		return 0
	}
	return page - 1
}
