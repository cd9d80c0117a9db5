package repository

import (
	"coa-backend/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrJobNotFound = errors.New("import job not found")

// ImportJobRepository keeps asynchronous import state in Redis.
type ImportJobRepository struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewImportJobRepository(client *redis.Client, ttl time.Duration) *ImportJobRepository {
	return &ImportJobRepository{redis: client, ttl: ttl}
}

func jobKey(id string) string {
	return fmt.Sprintf("import:job:%s", id)
}

func (r *ImportJobRepository) Save(ctx context.Context, job *models.ImportJob) error {
	job.UpdatedAt = time.Now()
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode import job: %w", err)
	}
	return r.redis.Set(ctx, jobKey(job.ID), data, r.ttl).Err()
}

func (r *ImportJobRepository) Get(ctx context.Context, id string) (*models.ImportJob, error) {
	data, err := r.redis.Get(ctx, jobKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}

	var job models.ImportJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode import job %s: %w", id, err)
	}
	return &job, nil
}
