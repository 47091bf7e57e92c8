package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginRun_ReadRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	beginTestRun(t, s, "run-a")

	run, err := s.ReadRun(ctx, "run-a")
	require.NoError(t, err)
	assert.Equal(t, "run-a", run.ID)
	assert.Equal(t, "input.fasta", run.InputPath)
	assert.Equal(t, "clustalo -v --auto", run.Aligner)
	assert.Equal(t, 50, run.ShiftLength)
	assert.Equal(t, 5, run.Iterations)
	assert.Equal(t, StatusRunning, run.Status)
	assert.True(t, run.StartedAt.Equal(testEpoch))
	assert.True(t, run.FinishedAt.IsZero())
}

func TestBeginRun_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	beginTestRun(t, s, "run-a")

	err := s.BeginRun(context.Background(), createTestRun("run-a"))
	assert.Error(t, err)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestFinishRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	finished := testEpoch.Add(90 * time.Second)

	beginTestRun(t, s, "ok")
	beginTestRun(t, s, "bad")

	require.NoError(t, s.FinishRun(ctx, "ok", StatusCompleted, "", finished))
	require.NoError(t, s.FinishRun(ctx, "bad", StatusFailed, "clustalo failed", finished))

	ok, err := s.ReadRun(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, ok.Status)
	assert.True(t, ok.FinishedAt.Equal(finished))

	bad, err := s.ReadRun(ctx, "bad")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, bad.Status)
	assert.Equal(t, "clustalo failed", bad.Error)
}

func TestFinishRun_OnlyOnce(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	beginTestRun(t, s, "r")
	require.NoError(t, s.FinishRun(ctx, "r", StatusCompleted, "", testEpoch))

	err := s.FinishRun(ctx, "r", StatusFailed, "late", testEpoch)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestFinishRun_InvalidStatus(t *testing.T) {
	s := createTestStore(t)
	beginTestRun(t, s, "r")

	err := s.FinishRun(context.Background(), "r", StatusRunning, "", testEpoch)
	assert.Error(t, err)
}

func TestRecordStep_ReadSteps(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "r")

	// Insert out of order; reads come back by seq.
	for _, st := range []Step{
		{RunID: "r", Seq: 2, Iteration: 1, Artifact: "alignment_after_iteration_1.fasta", Records: 2, Columns: 10, Digest: "d1"},
		{RunID: "r", Seq: 1, Iteration: 0, Artifact: "initial_alignment_result.fasta", Records: 2, Columns: 9, Digest: "d0"},
	} {
		require.NoError(t, s.RecordStep(ctx, st))
	}

	steps, err := s.ReadSteps(ctx, "r")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 0, steps[0].Iteration)
	assert.Equal(t, "initial_alignment_result.fasta", steps[0].Artifact)
	assert.Equal(t, 9, steps[0].Columns)
	assert.Equal(t, 1, steps[1].Iteration)
}

func TestRecordStep_DuplicateIteration(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "r")

	step := Step{RunID: "r", Seq: 1, Iteration: 0, Artifact: "a", Records: 1, Columns: 1, Digest: "d"}
	require.NoError(t, s.RecordStep(ctx, step))

	step.Seq = 2
	assert.Error(t, s.RecordStep(ctx, step))
}

func TestReadSteps_Empty(t *testing.T) {
	s := createTestStore(t)

	steps, err := s.ReadSteps(context.Background(), "none")
	require.NoError(t, err)
	assert.NotNil(t, steps)
	assert.Empty(t, steps)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// UUIDv7 ids sort by creation time; plain strings stand in here.
	for _, id := range []string{"0001", "0003", "0002"} {
		beginTestRun(t, s, id)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "0003", runs[0].ID)
	assert.Equal(t, "0002", runs[1].ID)
	assert.Equal(t, "0001", runs[2].ID)

	limited, err := s.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "0003", limited[0].ID)
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestFindStepsByDigest(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	beginTestRun(t, s, "a")
	beginTestRun(t, s, "b")

	require.NoError(t, s.RecordStep(ctx, Step{RunID: "b", Seq: 1, Iteration: 0, Artifact: "x", Records: 1, Columns: 4, Digest: "same"}))
	require.NoError(t, s.RecordStep(ctx, Step{RunID: "a", Seq: 1, Iteration: 0, Artifact: "x", Records: 1, Columns: 4, Digest: "other"}))
	require.NoError(t, s.RecordStep(ctx, Step{RunID: "a", Seq: 2, Iteration: 1, Artifact: "y", Records: 1, Columns: 4, Digest: "same"}))

	steps, err := s.FindStepsByDigest(ctx, "same")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "a", steps[0].RunID)
	assert.Equal(t, "b", steps[1].RunID)
}
