// Package store persists comparison run history. Two backends are
// provided: SQLite for single-machine use (the default) and Postgres for
// shared deployments.
package store

import (
	"context"
	"encoding/json"
	"time"
)

// RunStatus is the lifecycle state of a recorded comparison run.
type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one recorded comparison: the two input files, the outcome, and
// the full comparison report as JSON.
type Run struct {
	ID        string          `json:"id"`
	DocFile   string          `json:"doc_file"`
	XlsxFile  string          `json:"xlsx_file"`
	Status    RunStatus       `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status RunStatus `json:"status,omitempty"`
	Limit  int       `json:"limit,omitempty"`
	Offset int       `json:"offset,omitempty"`
}

// Store defines the persistence interface for comparison runs.
type Store interface {
	Migrate(ctx context.Context) error

	// CreateRun records a new pending run for the given input files.
	CreateRun(ctx context.Context, docFile, xlsxFile string) (*Run, error)

	// CompleteRun stores the comparison report and marks the run complete.
	CompleteRun(ctx context.Context, runID string, result any) error

	// FailRun marks the run failed with the given cause.
	FailRun(ctx context.Context, runID string, cause error) error

	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)

	Close() error
}
