package worker

import (
	"coa-backend/internal/models"
	"coa-backend/internal/service"
	"coa-backend/internal/utils"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Importer runs one spreadsheet import.
type Importer interface {
	Import(ctx context.Context, schema *models.EntitySchema, filePath string) (*models.ImportResult, error)
}

type ImportTaskHandler struct {
	importer Importer
	jobs     service.JobStore
}

func NewImportTaskHandler(importer Importer, jobs service.JobStore) *ImportTaskHandler {
	return &ImportTaskHandler{
		importer: importer,
		jobs:     jobs,
	}
}

// Handle processes an import:spreadsheet task. Failed imports are not retried
// because the importer has already removed the uploaded file.
func (h *ImportTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload service.ImportTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log := utils.GetLogger().WithFields(logrus.Fields{
		"job_id": payload.JobID,
		"entity": payload.Entity,
	})

	job, err := h.jobs.Get(ctx, payload.JobID)
	if err != nil {
		log.WithError(err).Warn("Import job record missing, recreating")
		job = &models.ImportJob{ID: payload.JobID, Entity: payload.Entity}
	}

	schema, err := models.LookupSchema(payload.Entity)
	if err != nil {
		_ = os.Remove(payload.FilePath)
		return h.fail(ctx, job, err)
	}

	job.Status = models.JobRunning
	if err := h.jobs.Save(ctx, job); err != nil {
		log.WithError(err).Warn("Failed to mark import job running")
	}

	log.Info("Starting spreadsheet import")
	result, err := h.importer.Import(ctx, schema, payload.FilePath)
	if err != nil {
		return h.fail(ctx, job, err)
	}

	job.Status = models.JobCompleted
	job.Result = result
	if err := h.jobs.Save(ctx, job); err != nil {
		return fmt.Errorf("failed to store import result: %w", err)
	}

	log.WithFields(logrus.Fields{
		"success": result.SuccessCount,
		"errors":  result.ErrorCount,
	}).Info("Import job completed")
	return nil
}

func (h *ImportTaskHandler) fail(ctx context.Context, job *models.ImportJob, cause error) error {
	job.Status = models.JobFailed
	job.Error = cause.Error()
	if err := h.jobs.Save(ctx, job); err != nil {
		utils.GetLogger().WithError(err).WithField("job_id", job.ID).Error("Failed to store import failure")
	}
	return fmt.Errorf("import job %s failed: %v: %w", job.ID, cause, asynq.SkipRetry)
}
