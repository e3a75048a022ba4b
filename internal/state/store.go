// Package state records command runs and their results in SQLite.
package state

import (
	"errors"
	"time"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// RunStatus is the lifecycle state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one invocation of a recording command.
type Run struct {
	ID          string     `json:"id"`
	Command     string     `json:"command"`
	Args        string     `json:"args,omitempty"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// ResultRow is one evaluated constant stored with a run.
type ResultRow struct {
	RunID        string  `json:"run_id"`
	Name         string  `json:"name"`
	Predicted    float64 `json:"predicted"`
	Experimental float64 `json:"experimental"`
	ErrorPPM     float64 `json:"error_ppm"`
	Sigma        float64 `json:"sigma"`
}

// Store is the run history interface.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	CreateRun(command, args string) (*Run, error)
	CompleteRun(id string, status RunStatus, errMsg string) error
	GetRun(id string) (*Run, error)
	ListRuns(limit int) ([]*Run, error)

	SaveResults(runID string, rows []ResultRow) error
	GetResults(runID string) ([]ResultRow, error)
}

var _ Store = (*SQLiteStore)(nil)
