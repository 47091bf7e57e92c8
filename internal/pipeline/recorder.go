package pipeline

import (
	"context"
	"time"

	"github.com/roach88/rotalign/internal/store"
)

// Recorder receives the run lifecycle. *store.Store implements it.
type Recorder interface {
	BeginRun(ctx context.Context, run store.Run) error
	RecordStep(ctx context.Context, step store.Step) error
	FinishRun(ctx context.Context, id string, status store.RunStatus, runErr string, finishedAt time.Time) error
}

type nopRecorder struct{}

func (nopRecorder) BeginRun(context.Context, store.Run) error { return nil }
func (nopRecorder) RecordStep(context.Context, store.Step) error { return nil }
func (nopRecorder) FinishRun(context.Context, string, store.RunStatus, string, time.Time) error {
	return nil
}
