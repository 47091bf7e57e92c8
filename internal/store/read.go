package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned when a run ID is not in the ledger.
var ErrRunNotFound = errors.New("run not found")

// ListRuns returns up to limit runs, newest first. limit <= 0 means all.
//
// Returns an empty slice (not nil) for an empty ledger.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, input_path, aligner, shift_length, iterations, status, error, started_at, finished_at
		FROM runs
		ORDER BY id COLLATE BINARY DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a single run. Returns ErrRunNotFound if absent.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, input_path, aligner, shift_length, iterations, status, error, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	return run, err
}

// ReadSteps returns a run's steps ordered by seq.
func (s *Store) ReadSteps(ctx context.Context, runID string) ([]Step, error) {
	return s.querySteps(ctx, `
		SELECT run_id, seq, iteration, artifact, records, columns, digest
		FROM steps
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
}

// FindStepsByDigest returns every step, across all runs, that persisted an
// alignment with the given digest. Ordered by run then seq.
func (s *Store) FindStepsByDigest(ctx context.Context, digest string) ([]Step, error) {
	return s.querySteps(ctx, `
		SELECT run_id, seq, iteration, artifact, records, columns, digest
		FROM steps
		WHERE digest = ?
		ORDER BY run_id COLLATE BINARY ASC, seq ASC
	`, digest)
}

func (s *Store) querySteps(ctx context.Context, query string, arg string) ([]Step, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := []Step{}
	for rows.Next() {
		var st Step
		if err := rows.Scan(&st.RunID, &st.Seq, &st.Iteration, &st.Artifact, &st.Records, &st.Columns, &st.Digest); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run               Run
		status            string
		started, finished string
	)
	err := sc.Scan(&run.ID, &run.InputPath, &run.Aligner, &run.ShiftLength, &run.Iterations,
		&status, &run.Error, &started, &finished)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Status = RunStatus(status)

	if run.StartedAt, err = parseTime(started); err != nil {
		return Run{}, fmt.Errorf("parse started_at for run %s: %w", run.ID, err)
	}
	if run.FinishedAt, err = parseTime(finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at for run %s: %w", run.ID, err)
	}
	return run, nil
}
