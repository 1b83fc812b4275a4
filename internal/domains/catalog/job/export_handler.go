package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"book-catalog/internal/domains/catalog/model"
	"book-catalog/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Exporter là phần của catalog service mà worker cần
type Exporter interface {
	CreateJob(ctx context.Context, jobID, format string) (*model.ExportJob, bool, error)
	RunExport(ctx context.Context, jobID string) error
}

// ExportHandler xử lý task catalog:export
type ExportHandler struct {
	exporter Exporter
}

func NewExportHandler(exporter Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// ProcessTask:
// 1. Parse payload (hỏng -> SkipRetry)
// 2. Task từ scheduler không có job_id -> tạo job CSV với id = task id
// 3. Chạy export; job đã hết hạn trong Redis -> SkipRetry
// 4. Lỗi khác trả về để asynq retry
func (h *ExportHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CatalogExportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("[CatalogExport] invalid payload")
		return fmt.Errorf("unmarshal catalog export payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.JobID == "" {
		// task id giữ nguyên qua các lần retry -> retry chạy lại đúng job cũ
		taskID, _ := asynq.GetTaskID(ctx)
		job, owned, err := h.exporter.CreateJob(ctx, taskID, string(model.FormatCSV))
		if err != nil {
			return fmt.Errorf("create scheduled catalog export: %w", err)
		}
		if !owned {
			log.Info().Str("job_id", job.ID).Msg("[CatalogExport] same-second export already owned, skip")
			return nil
		}
		payload.JobID = job.ID
	}

	log.Info().Str("job_id", payload.JobID).Msg("[CatalogExport] start")

	if err := h.exporter.RunExport(ctx, payload.JobID); err != nil {
		if errors.Is(err, model.ErrJobNotFound) {
			log.Warn().Str("job_id", payload.JobID).Msg("[CatalogExport] job expired, skip")
			return fmt.Errorf("catalog export %s: %v: %w", payload.JobID, err, asynq.SkipRetry)
		}
		return fmt.Errorf("catalog export %s: %w", payload.JobID, err)
	}
	return nil
}
