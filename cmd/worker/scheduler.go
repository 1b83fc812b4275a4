package main

import (
	"book-catalog/internal/infrastructure/queue"
	"book-catalog/pkg/container"

	"github.com/rs/zerolog/log"
)

// asynqScheduler wraps queue.Scheduler; Scheduler nil = không có lịch export
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(c *container.Container) (*asynqScheduler, error) {
	cron := c.Config.Catalog.Cron
	if cron == "" {
		log.Info().Msg("[Scheduler] CATALOG_EXPORT_CRON not set, scheduled export disabled")
		return &asynqScheduler{}, nil
	}

	scheduler := queue.NewScheduler(c.RedisOpt, cron, c.Config.Catalog.Timeout)
	if err := scheduler.RegisterCatalogExport(); err != nil {
		return nil, err
	}

	log.Info().Msg("[Scheduler] Starting...")
	if err := scheduler.Start(); err != nil {
		return nil, err
	}

	return &asynqScheduler{Scheduler: scheduler}, nil
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	if s == nil || s.Scheduler == nil {
		return
	}
	log.Info().Msg("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Info().Msg("[Scheduler] ✓ Stopped")
}
