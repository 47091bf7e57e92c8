package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// createTestRun creates a run with minimal required fields.
func createTestRun(id string) Run {
	return Run{
		ID:          id,
		InputPath:   "input.fasta",
		Aligner:     "clustalo -v --auto",
		ShiftLength: 50,
		Iterations:  5,
		StartedAt:   testEpoch,
	}
}

// beginTestRun inserts a run and fails the test on error.
func beginTestRun(t *testing.T, s *Store, id string) {
	t.Helper()
	if err := s.BeginRun(context.Background(), createTestRun(id)); err != nil {
		t.Fatalf("BeginRun(%s) failed: %v", id, err)
	}
}
