package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	bookModel "book-catalog/internal/domains/book/model"
	"book-catalog/internal/domains/catalog/model"
	"book-catalog/internal/domains/catalog/repository"
	"book-catalog/internal/shared/apperror"
	"book-catalog/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ServiceInterface - export catalog chạy nền
type ServiceInterface interface {
	// CreateJob chỉ ghi job pending, không enqueue. jobID rỗng = sinh id mới;
	// job đã có với jobID đó được trả lại nguyên trạng (task retry).
	// owned = false khi file của giây hiện tại đã thuộc job khác: job trả về là job đó.
	CreateJob(ctx context.Context, jobID, format string) (job *model.ExportJob, owned bool, err error)
	// StartExport = CreateJob + đẩy task vào queue
	StartExport(ctx context.Context, format string) (*model.ExportJob, error)
	GetJob(ctx context.Context, id string) (*model.ExportJob, error)
	// RunExport được worker gọi; ghi toàn bộ catalog ra file của job
	RunExport(ctx context.Context, jobID string) error
}

// RowSource đọc catalog theo keyset (id > afterID), id tăng dần
type RowSource interface {
	CatalogPage(ctx context.Context, afterID int64, limit uint64) ([]bookModel.CatalogRow, error)
}

type Enqueuer interface {
	EnqueueCatalogExport(ctx context.Context, jobID string) error
}

// Uploader mirror file export lên object storage, trả về URL của object
type Uploader interface {
	UploadFile(ctx context.Context, objectKey, filePath, contentType string) (string, error)
}

type Config struct {
	Dir           string
	PublicBaseURL string
	BatchSize     int
}

type CatalogService struct {
	rows     RowSource
	jobs     repository.JobStore
	queue    Enqueuer
	uploader Uploader // nil = không upload
	cfg      Config

	now   func() time.Time
	newID func() string
}

func NewService(rows RowSource, jobs repository.JobStore, queue Enqueuer, uploader Uploader, cfg Config) *CatalogService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20000
	}
	if cfg.Dir == "" {
		cfg.Dir = "catalog"
	}
	return &CatalogService{
		rows:     rows,
		jobs:     jobs,
		queue:    queue,
		uploader: uploader,
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *CatalogService) CreateJob(ctx context.Context, jobID, rawFormat string) (*model.ExportJob, bool, error) {
	format, err := model.ParseFormat(rawFormat)
	if err != nil {
		return nil, false, apperror.Validation("The format parameter must be one of: csv, xlsx.")
	}

	if jobID != "" {
		existing, err := s.jobs.Get(ctx, jobID)
		if err == nil {
			return existing, true, nil
		}
		if !errors.Is(err, model.ErrJobNotFound) {
			return nil, false, apperror.System(err)
		}
	} else {
		jobID = s.newID()
	}

	now := s.now()
	name := model.FileName(format, now)
	job := &model.ExportJob{
		ID:        jobID,
		Status:    model.StatusPending,
		Format:    format,
		FilePath:  filepath.Join(s.cfg.Dir, name),
		FileURL:   s.fileURL(name),
		CreatedAt: now.UTC(),
	}

	// lưu job trước khi giữ file để job thắng luôn đọc được từ Redis
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, false, apperror.System(err)
	}
	owner, err := s.jobs.ReserveFile(ctx, name, job.ID)
	if err != nil {
		return nil, false, apperror.System(err)
	}
	if owner != job.ID {
		return s.takeOver(ctx, job, owner)
	}

	metrics.CatalogExportsTotal.WithLabelValues(string(format), "started").Inc()
	return job, true, nil
}

// takeOver bỏ job vừa tạo và trả về job đang giữ cùng file
func (s *CatalogService) takeOver(ctx context.Context, job *model.ExportJob, ownerID string) (*model.ExportJob, bool, error) {
	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		log.Warn().Err(err).Str("job_id", job.ID).Msg("[CatalogService] cannot drop duplicate job")
	}

	owner, err := s.jobs.Get(ctx, ownerID)
	if err != nil {
		return nil, false, apperror.System(fmt.Errorf("owner %s of %s: %w", ownerID, job.FilePath, err))
	}

	log.Info().
		Str("job_id", owner.ID).
		Str("file", owner.FilePath).
		Msg("[CatalogService] export for this second already exists, reuse")
	return owner, false, nil
}

func (s *CatalogService) StartExport(ctx context.Context, rawFormat string) (*model.ExportJob, error) {
	job, owned, err := s.CreateJob(ctx, "", rawFormat)
	if err != nil {
		return nil, err
	}
	if !owned {
		return job, nil
	}

	if err := s.queue.EnqueueCatalogExport(ctx, job.ID); err != nil {
		s.finish(ctx, job, 0, false, fmt.Errorf("enqueue: %w", err))
		return nil, apperror.System(err)
	}

	log.Info().
		Str("job_id", job.ID).
		Str("format", string(job.Format)).
		Str("file", job.FilePath).
		Msg("[CatalogService] export queued")

	return job, nil
}

func (s *CatalogService) GetJob(ctx context.Context, id string) (*model.ExportJob, error) {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrJobNotFound) {
			return nil, apperror.NotFound(err)
		}
		return nil, apperror.System(err)
	}
	return job, nil
}

func (s *CatalogService) RunExport(ctx context.Context, jobID string) error {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status == model.StatusCompleted {
		log.Info().Str("job_id", jobID).Msg("[CatalogService] job already completed, skip")
		return nil
	}

	if job.Status == model.StatusRunning {
		// lần chạy trước chết giữa chừng, file dở dang vẫn thuộc job này
		removeFile(job.FilePath)
	}

	job.Status = model.StatusRunning
	job.Error = ""
	if err := s.jobs.Save(ctx, job); err != nil {
		return err
	}

	start := s.now()
	written, created, err := s.writeCatalog(ctx, job)
	if err == nil && s.uploader != nil {
		key := path.Base(filepath.ToSlash(job.FilePath))
		job.ObjectURL, err = s.uploader.UploadFile(ctx, key, job.FilePath, job.Format.ContentType())
	}
	metrics.CatalogExportDuration.Observe(s.now().Sub(start).Seconds())

	s.finish(ctx, job, written, created, err)
	return err
}

// writeCatalog đọc từng trang BatchSize book cho tới khi gặp trang rỗng.
// created = true khi file do chính lần chạy này tạo ra.
func (s *CatalogService) writeCatalog(ctx context.Context, job *model.ExportJob) (int64, bool, error) {
	w, err := newRowWriter(job.Format, job.FilePath)
	if err != nil {
		return 0, false, err
	}

	var (
		afterID int64
		written int64
	)
	for {
		rows, err := s.rows.CatalogPage(ctx, afterID, uint64(s.cfg.BatchSize))
		if err != nil {
			_ = w.Close()
			return written, true, fmt.Errorf("read catalog after id %d: %w", afterID, err)
		}
		if len(rows) == 0 {
			break
		}
		if err := w.WriteRows(rows); err != nil {
			_ = w.Close()
			return written, true, err
		}
		written += int64(len(rows))
		afterID = rows[len(rows)-1].ID
	}

	if err := w.Close(); err != nil {
		return written, true, err
	}
	return written, true, nil
}

// finish ghi trạng thái cuối; file chỉ bị xóa khi job tự tạo ra nó
func (s *CatalogService) finish(ctx context.Context, job *model.ExportJob, rows int64, created bool, runErr error) {
	finished := s.now().UTC()
	job.FinishedAt = &finished
	job.Rows = rows

	status := "completed"
	if runErr != nil {
		status = "failed"
		job.Status = model.StatusFailed
		job.Error = runErr.Error()
		if created {
			removeFile(job.FilePath)
		}
		log.Error().Err(runErr).Str("job_id", job.ID).Msg("[CatalogService] export failed")
	} else {
		job.Status = model.StatusCompleted
		metrics.CatalogExportedRows.Add(float64(rows))
		log.Info().Str("job_id", job.ID).Int64("rows", rows).Msg("[CatalogService] export completed")
	}
	metrics.CatalogExportsTotal.WithLabelValues(string(job.Format), status).Inc()

	// job status vẫn phải được ghi khi ctx của task đã hết hạn
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.jobs.Save(saveCtx, job); err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("[CatalogService] cannot persist job status")
	}
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", path).Msg("[CatalogService] cannot remove partial file")
	}
}

func (s *CatalogService) fileURL(name string) string {
	return s.cfg.PublicBaseURL + "/catalog/" + name
}
