package models

import "time"

// ImportResult is the response body of a spreadsheet import.
type ImportResult struct {
	Message      string   `json:"message"`
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors"`
}

const (
	JobQueued    = "queued"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// ImportJob tracks an asynchronous import queued on the worker.
type ImportJob struct {
	ID        string        `json:"job_id"`
	Entity    string        `json:"entity"`
	Filename  string        `json:"filename"`
	Status    string        `json:"status"`
	Result    *ImportResult `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
