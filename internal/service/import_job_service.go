package service

import (
	"coa-backend/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

const TypeImportSpreadsheet = "import:spreadsheet"

type ImportTaskPayload struct {
	JobID    string `json:"job_id"`
	Entity   string `json:"entity"`
	FilePath string `json:"file_path"`
}

// JobStore keeps the state of asynchronous imports.
type JobStore interface {
	Save(ctx context.Context, job *models.ImportJob) error
	Get(ctx context.Context, id string) (*models.ImportJob, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ImportJobService hands imports over to the background worker.
type ImportJobService struct {
	jobs     JobStore
	enqueuer TaskEnqueuer
	logger   *logrus.Logger
}

func NewImportJobService(jobs JobStore, enqueuer TaskEnqueuer, logger *logrus.Logger) *ImportJobService {
	return &ImportJobService{jobs: jobs, enqueuer: enqueuer, logger: logger}
}

func NewImportTask(payload ImportTaskPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeImportSpreadsheet, data, asynq.MaxRetry(0), asynq.Queue("default")), nil
}

// Enqueue records a queued job and schedules the import of filePath.
func (s *ImportJobService) Enqueue(ctx context.Context, schema *models.EntitySchema, filePath, filename string) (*models.ImportJob, error) {
	now := time.Now()
	job := &models.ImportJob{
		ID:        uuid.NewString(),
		Entity:    schema.Kind,
		Filename:  filename,
		Status:    models.JobQueued,
		CreatedAt: now,
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to record import job: %w", err)
	}

	task, err := NewImportTask(ImportTaskPayload{JobID: job.ID, Entity: schema.Kind, FilePath: filePath})
	if err != nil {
		return nil, err
	}
	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		job.Status = models.JobFailed
		job.Error = err.Error()
		_ = s.jobs.Save(ctx, job)
		return nil, fmt.Errorf("failed to enqueue import: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"job_id": job.ID, "entity": job.Entity}).Info("Import job queued")
	return job, nil
}

func (s *ImportJobService) Get(ctx context.Context, id string) (*models.ImportJob, error) {
	return s.jobs.Get(ctx, id)
}
