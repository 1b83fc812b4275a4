package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

const (
	FilePrefix     = "books_catalog_"
	fileTimeLayout = "20060102150405"
	jobKeyPrefix   = "catalog:job:"
	fileKeyPrefix  = "catalog:file:"
)

var (
	ErrJobNotFound       = errors.New("export job not found")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrFileExists        = errors.New("export file already exists")
)

// ExportJob là trạng thái của một lần export, lưu trong Redis
type ExportJob struct {
	ID         string     `json:"job_id"`
	Status     Status     `json:"status"`
	Format     Format     `json:"format"`
	FilePath   string     `json:"file_path"`
	FileURL    string     `json:"file_url"`
	ObjectURL  string     `json:"object_url,omitempty"`
	Rows       int64      `json:"rows"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Accepted là data trả về ngay khi export được nhận
type Accepted struct {
	JobID   string `json:"job_id"`
	Status  Status `json:"status"`
	FileURL string `json:"file_url"`
}

func (j *ExportJob) Accepted() Accepted {
	return Accepted{JobID: j.ID, Status: j.Status, FileURL: j.FileURL}
}

func (j *ExportJob) IsFinished() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// ParseFormat: rỗng = csv
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// FileName: books_catalog_<YYYYMMDDHHMMSS>.<ext>
func FileName(f Format, at time.Time) string {
	return FilePrefix + at.Format(fileTimeLayout) + "." + string(f)
}

func JobKey(id string) string {
	return jobKeyPrefix + id
}

// FileKey giữ id của job sở hữu file export
func FileKey(name string) string {
	return fileKeyPrefix + name
}
