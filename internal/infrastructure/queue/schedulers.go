package queue

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	cron      string
	timeout   time.Duration
}

func NewScheduler(redisOpt asynq.RedisClientOpt, cron string, timeout time.Duration) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler, cron: cron, timeout: timeout}
}

// RegisterCatalogExport đăng ký export CSV định kỳ.
// Task định kỳ không mang job id; handler tự tạo job khi nhận task.
func (s *Scheduler) RegisterCatalogExport() error {
	task, opts, err := NewCatalogExportTask("", s.timeout)
	if err != nil {
		return err
	}

	entryID, err := s.scheduler.Register(s.cron, task, opts...)
	if err != nil {
		log.Error().Err(err).Str("cron", s.cron).Msg("[Scheduler] Failed to register catalog export")
		return err
	}

	log.Info().Str("cron", s.cron).Str("entry_id", entryID).Msg("[Scheduler] ✓ Registered catalog export")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
