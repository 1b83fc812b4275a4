package queue

import (
	"context"

	"book-catalog/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Handlers gom các task handler mà worker đăng ký
type Handlers struct {
	CatalogExport asynq.Handler
}

func (h Handlers) Register(mux *asynq.ServeMux) {
	mux.Handle(shared.TypeCatalogExport, h.CatalogExport)
}

// NewServer tạo asynq server + mux. Dùng chung cho cmd/worker và worker nhúng trong api.
func NewServer(redisOpt asynq.RedisClientOpt, concurrency int, handlers Handlers) (*asynq.Server, *asynq.ServeMux) {
	mux := asynq.NewServeMux()
	handlers.Register(mux)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Queues: map[string]int{
			shared.QueueCatalog: 10,
		},
		Concurrency: concurrency,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.Error().
				Err(err).
				Str("type", task.Type()).
				Int("retry", retried).
				Int("max_retry", maxRetry).
				Msg("[Asynq] Task failed")
		}),
	})

	return srv, mux
}
