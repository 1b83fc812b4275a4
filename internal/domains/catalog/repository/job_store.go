package repository

import (
	"context"
	"fmt"
	"time"

	"book-catalog/internal/domains/catalog/model"
	"book-catalog/pkg/cache"
)

// JobStore lưu trạng thái export job
type JobStore interface {
	Save(ctx context.Context, job *model.ExportJob) error
	Get(ctx context.Context, id string) (*model.ExportJob, error)
	Delete(ctx context.Context, id string) error
	// ReserveFile gán file cho job nếu chưa ai giữ; trả về id của job đang sở hữu file
	ReserveFile(ctx context.Context, fileName, jobID string) (string, error)
}

// redisJobStore giữ job dưới key catalog:job:<id>, hết hạn sau ttl
type redisJobStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewJobStore(c cache.Cache, ttl time.Duration) JobStore {
	return &redisJobStore{cache: c, ttl: ttl}
}

func (s *redisJobStore) Save(ctx context.Context, job *model.ExportJob) error {
	if err := s.cache.Set(ctx, model.JobKey(job.ID), job, s.ttl); err != nil {
		return fmt.Errorf("save export job %s: %w", job.ID, err)
	}
	return nil
}

func (s *redisJobStore) Get(ctx context.Context, id string) (*model.ExportJob, error) {
	var job model.ExportJob
	found, err := s.cache.Get(ctx, model.JobKey(id), &job)
	if err != nil {
		return nil, fmt.Errorf("load export job %s: %w", id, err)
	}
	if !found {
		return nil, model.ErrJobNotFound
	}
	return &job, nil
}

func (s *redisJobStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, model.JobKey(id)); err != nil {
		return fmt.Errorf("delete export job %s: %w", id, err)
	}
	return nil
}

func (s *redisJobStore) ReserveFile(ctx context.Context, fileName, jobID string) (string, error) {
	key := model.FileKey(fileName)
	// owner có thể hết hạn giữa SETNX và GET -> thử lại
	for attempt := 0; attempt < 3; attempt++ {
		ok, err := s.cache.SetNX(ctx, key, jobID, s.ttl)
		if err != nil {
			return "", fmt.Errorf("reserve export file %s: %w", fileName, err)
		}
		if ok {
			return jobID, nil
		}

		var owner string
		found, err := s.cache.Get(ctx, key, &owner)
		if err != nil {
			return "", fmt.Errorf("load owner of %s: %w", fileName, err)
		}
		if found {
			return owner, nil
		}
	}
	return "", fmt.Errorf("reserve export file %s: owner key flapping", fileName)
}
