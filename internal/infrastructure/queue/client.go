package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"book-catalog/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// TaskEnqueuer là phần của asynq.Client mà Client cần
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client đẩy task export catalog vào queue
type Client struct {
	enqueuer TaskEnqueuer
	timeout  time.Duration
}

func NewClient(enqueuer TaskEnqueuer, exportTimeout time.Duration) *Client {
	return &Client{enqueuer: enqueuer, timeout: exportTimeout}
}

// NewCatalogExportTask build task kèm các option chung cho cả enqueue lẫn scheduler
func NewCatalogExportTask(jobID string, timeout time.Duration) (*asynq.Task, []asynq.Option, error) {
	data, err := json.Marshal(shared.CatalogExportPayload{JobID: jobID})
	if err != nil {
		return nil, nil, err
	}

	opts := []asynq.Option{
		asynq.Queue(shared.QueueCatalog),
		asynq.MaxRetry(2),
		asynq.Timeout(timeout),
	}
	return asynq.NewTask(shared.TypeCatalogExport, data), opts, nil
}

func (c *Client) EnqueueCatalogExport(ctx context.Context, jobID string) error {
	task, opts, err := NewCatalogExportTask(jobID, c.timeout)
	if err != nil {
		return fmt.Errorf("build catalog export task: %w", err)
	}

	info, err := c.enqueuer.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue catalog export: %w", err)
	}

	log.Debug().Str("task_id", info.ID).Str("job_id", jobID).Msg("[Queue] catalog export enqueued")
	return nil
}
