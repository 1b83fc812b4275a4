package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	bookModel "book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/catalog/model"

	"github.com/shopspring/decimal"
)

// RowWriter ghi từng batch book ra file export
type RowWriter interface {
	WriteRows(rows []bookModel.CatalogRow) error
	Close() error
}

func newRowWriter(format model.Format, path string) (RowWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	switch format {
	case model.FormatCSV:
		return newCSVWriter(path)
	case model.FormatXLSX:
		return newXLSXWriter(path)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, format)
	}
}

// createExclusive không bao giờ ghi đè file đã có: mỗi file export thuộc về đúng một job
func createExclusive(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%w: %s", model.ErrFileExists, path)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// formatPrice in giá dạng ngắn nhất, không có số 0 thừa (12.5, 10, 0.99)
func formatPrice(price float64) string {
	return decimal.NewFromFloat(price).String()
}
