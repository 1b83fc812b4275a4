package main

import (
	"book-catalog/internal/infrastructure/queue"
	"book-catalog/pkg/container"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// asynqServer wraps asynq.Server
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer tạo server với các handler từ container và start (non-blocking)
func setupAsynqServer(c *container.Container) (*asynqServer, error) {
	srv, mux := queue.NewServer(c.RedisOpt, c.Config.Worker.Concurrency, c.QueueHandlers())

	log.Info().Int("concurrency", c.Config.Worker.Concurrency).Msg("[Worker] Starting...")
	if err := srv.Start(mux); err != nil {
		return nil, err
	}

	return &asynqServer{Server: srv}, nil
}

// Shutdown chờ các task đang chạy xong (tối đa ShutdownTimeout của asynq, mặc định 8s)
func (s *asynqServer) Shutdown() {
	log.Info().Msg("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Info().Msg("[Worker] ✓ Gracefully stopped")
}
