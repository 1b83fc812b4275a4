package service

import (
	"fmt"
	"os"

	bookModel "book-catalog/internal/domains/book/model"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

// xlsxWriter dùng StreamWriter để không giữ toàn bộ catalog trong bộ nhớ
type xlsxWriter struct {
	out    *os.File
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
}

func newXLSXWriter(path string) (*xlsxWriter, error) {
	out, err := createExclusive(path)
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	sw, err := f.NewStreamWriter(xlsxSheet)
	if err != nil {
		_ = f.Close()
		_ = out.Close()
		return nil, fmt.Errorf("create xlsx stream: %w", err)
	}
	return &xlsxWriter{out: out, file: f, stream: sw}, nil
}

func (w *xlsxWriter) WriteRows(rows []bookModel.CatalogRow) error {
	for _, r := range rows {
		w.row++
		cell, err := excelize.CoordinatesToCellName(1, w.row)
		if err != nil {
			return err
		}
		if err := w.stream.SetRow(cell, []interface{}{r.Title, r.Price}); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", r.ID, err)
		}
	}
	return nil
}

func (w *xlsxWriter) Close() error {
	defer w.file.Close()
	defer w.out.Close()

	if err := w.stream.Flush(); err != nil {
		return fmt.Errorf("flush xlsx: %w", err)
	}
	if err := w.file.Write(w.out); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return w.out.Sync()
}
