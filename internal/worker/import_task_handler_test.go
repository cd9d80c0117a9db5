package worker

import (
	"coa-backend/internal/models"
	"coa-backend/internal/service"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubImporter struct {
	result *models.ImportResult
	err    error
	calls  []string
}

func (s *stubImporter) Import(_ context.Context, schema *models.EntitySchema, _ string) (*models.ImportResult, error) {
	s.calls = append(s.calls, schema.Kind)
	return s.result, s.err
}

type memoryJobs struct {
	jobs map[string]models.ImportJob
}

func (m *memoryJobs) Save(_ context.Context, job *models.ImportJob) error {
	m.jobs[job.ID] = *job
	return nil
}

func (m *memoryJobs) Get(_ context.Context, id string) (*models.ImportJob, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, errors.New("missing")
	}
	return &job, nil
}

func newTask(t *testing.T, payload service.ImportTaskPayload) *asynq.Task {
	t.Helper()
	task, err := service.NewImportTask(payload)
	require.NoError(t, err)
	return task
}

func TestHandleCompletesJob(t *testing.T) {
	jobs := &memoryJobs{jobs: map[string]models.ImportJob{
		"job-1": {ID: "job-1", Entity: "ledgers", Status: models.JobQueued},
	}}
	importer := &stubImporter{result: &models.ImportResult{Message: "Import completed", SuccessCount: 3, Errors: []string{}}}
	h := NewImportTaskHandler(importer, jobs)

	err := h.Handle(context.Background(), newTask(t, service.ImportTaskPayload{
		JobID: "job-1", Entity: "ledgers", FilePath: "/tmp/x.xlsx",
	}))
	require.NoError(t, err)

	job := jobs.jobs["job-1"]
	assert.Equal(t, models.JobCompleted, job.Status)
	require.NotNil(t, job.Result)
	assert.Equal(t, 3, job.Result.SuccessCount)
	assert.Equal(t, []string{"ledgers"}, importer.calls)
}

func TestHandleRecordsFailureWithoutRetry(t *testing.T) {
	jobs := &memoryJobs{jobs: map[string]models.ImportJob{}}
	importer := &stubImporter{err: errors.New("no worksheet found in the Excel file")}
	h := NewImportTaskHandler(importer, jobs)

	err := h.Handle(context.Background(), newTask(t, service.ImportTaskPayload{
		JobID: "job-2", Entity: "divisions", FilePath: "/tmp/y.xlsx",
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)

	job := jobs.jobs["job-2"]
	assert.Equal(t, models.JobFailed, job.Status)
	assert.Equal(t, "no worksheet found in the Excel file", job.Error)
}

func TestHandleUnknownEntityRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	jobs := &memoryJobs{jobs: map[string]models.ImportJob{}}
	importer := &stubImporter{}
	h := NewImportTaskHandler(importer, jobs)

	err := h.Handle(context.Background(), newTask(t, service.ImportTaskPayload{
		JobID: "job-3", Entity: "accounts", FilePath: path,
	}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, importer.calls)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, models.JobFailed, jobs.jobs["job-3"].Status)
}

func TestHandleBadPayload(t *testing.T) {
	h := NewImportTaskHandler(&stubImporter{}, &memoryJobs{jobs: map[string]models.ImportJob{}})

	raw, _ := json.Marshal("not an object")
	err := h.Handle(context.Background(), asynq.NewTask(service.TypeImportSpreadsheet, raw))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
