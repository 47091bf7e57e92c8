package store

import (
	"context"
	"fmt"
	"time"
)

// BeginRun inserts a run with status running.
// A duplicate run ID is an error: run IDs are never reused.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, input_path, aligner, shift_length, iterations, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.InputPath,
		run.Aligner,
		run.ShiftLength,
		run.Iterations,
		string(StatusRunning),
		formatTime(run.StartedAt),
	)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// RecordStep inserts a persisted alignment for a run.
// The run must exist (foreign key constraint); each iteration is recorded
// at most once.
func (s *Store) RecordStep(ctx context.Context, step Step) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO steps
		(run_id, seq, iteration, artifact, records, columns, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		step.RunID,
		step.Seq,
		step.Iteration,
		step.Artifact,
		step.Records,
		step.Columns,
		step.Digest,
	)
	if err != nil {
		return fmt.Errorf("record step: %w", err)
	}
	return nil
}

// FinishRun moves a running run to its terminal status.
// Returns ErrRunNotFound if no running run has the given ID.
func (s *Store) FinishRun(ctx context.Context, id string, status RunStatus, runErr string, finishedAt time.Time) error {
	if status != StatusCompleted && status != StatusFailed {
		return fmt.Errorf("finish run: invalid terminal status %q", status)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, error = ?, finished_at = ?
		WHERE id = ? AND status = ?
	`,
		string(status),
		runErr,
		formatTime(finishedAt),
		id,
		string(StatusRunning),
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrRunNotFound)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
