package store

import "time"

// RunStatus is the lifecycle state of a ledger run.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run is one invocation of the iteration driver.
type Run struct {
	ID          string    `json:"id"`
	InputPath   string    `json:"input_path"`
	Aligner     string    `json:"aligner"`
	ShiftLength int       `json:"shift_length"`
	Iterations  int       `json:"iterations"`
	Status      RunStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at,omitzero"`
}

// Step is one persisted alignment of a run. Iteration 0 is the initial
// alignment of the user's input.
type Step struct {
	RunID     string `json:"run_id"`
	Seq       int64  `json:"seq"`
	Iteration int    `json:"iteration"`
	Artifact  string `json:"artifact"`
	Records   int    `json:"records"`
	Columns   int    `json:"columns"`
	Digest    string `json:"digest"`
}
