package service

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	bookModel "book-catalog/internal/domains/book/model"
)

// lineEnding theo nền tảng đang chạy
func lineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// csvWriter ghi mỗi book một dòng "title";"price", luôn bọc quote, không header
type csvWriter struct {
	file *os.File
	buf  *bufio.Writer
	eol  string
}

func newCSVWriter(path string) (*csvWriter, error) {
	f, err := createExclusive(path)
	if err != nil {
		return nil, err
	}
	return &csvWriter{file: f, buf: bufio.NewWriterSize(f, 64*1024), eol: lineEnding()}, nil
}

func (w *csvWriter) WriteRows(rows []bookModel.CatalogRow) error {
	for _, row := range rows {
		if _, err := w.buf.WriteString(formatCSVLine(row, w.eol)); err != nil {
			return fmt.Errorf("write csv row %d: %w", row.ID, err)
		}
	}
	return nil
}

func (w *csvWriter) Close() error {
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return fmt.Errorf("flush csv: %w", flushErr)
	}
	return closeErr
}

func formatCSVLine(row bookModel.CatalogRow, eol string) string {
	return quoteField(row.Title) + ";" + quoteField(formatPrice(row.Price)) + eol
}

func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
