package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/rotalign/internal/aligner"
	"github.com/roach88/rotalign/internal/digest"
	"github.com/roach88/rotalign/internal/fasta"
	"github.com/roach88/rotalign/internal/metrics"
	"github.com/roach88/rotalign/internal/rotate"
	"github.com/roach88/rotalign/internal/store"
)

// InitialArtifact is the file name of the persisted initial alignment.
const InitialArtifact = "initial_alignment_result.fasta"

// IterationArtifact returns the file name of the alignment persisted after
// iteration i.
func IterationArtifact(i int) string {
	return fmt.Sprintf("alignment_after_iteration_%d.fasta", i)
}

// Options configures a Driver.
type Options struct {
	// Shift is the rotation applied before every re-alignment.
	Shift int

	// Iterations is the number of shift-and-realign rounds. Zero performs
	// only the initial alignment.
	Iterations int

	// OutputDir receives the numbered artifacts. Created if missing.
	OutputDir string

	// Wrap is the sequence line width of persisted artifacts; 0 writes
	// single-line sequences. Intermediate files are always single-line.
	Wrap int

	// ScratchDir is the parent of the per-run scratch directory.
	// Empty means os.TempDir().
	ScratchDir string

	// AlignerName describes the aligner in the ledger.
	AlignerName string

	Recorder Recorder
	Metrics  *metrics.Metrics

	// RunIDs defaults to UUIDv7Generator.
	RunIDs RunIDGenerator

	// Now defaults to time.Now. Only used for ledger timestamps.
	Now func() time.Time

	Logger *slog.Logger
}

// Artifact describes one persisted alignment.
type Artifact struct {
	Iteration int    `json:"iteration"`
	Path      string `json:"path"`
	Records   int    `json:"records"`
	Columns   int    `json:"columns"`
	Digest    string `json:"digest"`
}

// Result summarises a completed run.
type Result struct {
	RunID     string          `json:"run_id"`
	Artifacts []Artifact      `json:"artifacts"`
	Final     fasta.Alignment `json:"-"`
}

// Driver runs the iteration state machine. A Driver runs one pipeline at a
// time and is not safe for concurrent use.
type Driver struct {
	aligner aligner.Aligner
	opts    Options
	logger  *slog.Logger
	state   State
}

// New creates a driver around a.
func New(a aligner.Aligner, opts Options) *Driver {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.RunIDs == nil {
		opts.RunIDs = UUIDv7Generator{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{aligner: a, opts: opts, logger: logger, state: StateIdle}
}

// State returns the current state. After Run returns it is StateDone or
// StateFailed.
func (d *Driver) State() State {
	return d.state
}

// run holds the per-run mutable state.
type run struct {
	id        string
	scratch   string
	clock     seqClock
	current   fasta.Alignment
	artifacts []Artifact
	logger    *slog.Logger
}

// Run executes the pipeline on the FASTA file at input.
//
// The returned Result lists every persisted artifact. On error the run is
// recorded as failed and the error is returned unchanged; artifacts already
// persisted are not removed.
func (d *Driver) Run(ctx context.Context, input string) (*Result, error) {
	if d.opts.Shift < 0 {
		return nil, rotate.ErrNegativeShift
	}
	if d.opts.Iterations < 0 {
		return nil, fmt.Errorf("iterations must be non-negative, got %d", d.opts.Iterations)
	}
	if _, err := os.Stat(input); err != nil {
		return nil, &fasta.IOError{Op: "read", Path: input, Err: err}
	}
	if err := os.MkdirAll(d.opts.OutputDir, 0o755); err != nil {
		return nil, &fasta.IOError{Op: "write", Path: d.opts.OutputDir, Err: err}
	}

	scratch, err := os.MkdirTemp(d.opts.ScratchDir, "rotalign-")
	if err != nil {
		return nil, &fasta.IOError{Op: "write", Path: d.opts.ScratchDir, Err: err}
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			d.logger.Warn("failed to remove scratch directory", "path", scratch, "error", rmErr)
		}
	}()

	r := &run{id: d.opts.RunIDs.Generate(), scratch: scratch}
	r.logger = d.logger.With("run_id", r.id)

	err = d.opts.Recorder.BeginRun(ctx, store.Run{
		ID:          r.id,
		InputPath:   input,
		Aligner:     d.opts.AlignerName,
		ShiftLength: d.opts.Shift,
		Iterations:  d.opts.Iterations,
		StartedAt:   d.opts.Now(),
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("run started", "input", input, "shift", d.opts.Shift, "iterations", d.opts.Iterations)

	if err := d.execute(ctx, r, input); err != nil {
		r.logger.Error("run failed", "state", d.state, "error", err)
		d.transition(r, StateFailed, 0)
		return nil, d.finish(ctx, r, err)
	}

	d.transition(r, StateDone, d.opts.Iterations)
	if err := d.finish(ctx, r, nil); err != nil {
		return nil, err
	}
	r.logger.Info("run completed", "artifacts", len(r.artifacts))

	return &Result{RunID: r.id, Artifacts: r.artifacts, Final: r.current}, nil
}

func (d *Driver) execute(ctx context.Context, r *run, input string) error {
	d.transition(r, StateInitializing, 0)
	aln, err := d.align(ctx, input, filepath.Join(r.scratch, "initial_alignment.fasta"))
	if err != nil {
		return err
	}
	if err := d.persist(ctx, r, 0, aln, InitialArtifact); err != nil {
		return err
	}

	for i := 1; i <= d.opts.Iterations; i++ {
		d.transition(r, StateShifting, i)
		shifted, err := rotate.Alignment(r.current, d.opts.Shift)
		if err != nil {
			return err
		}
		d.opts.Metrics.ResiduesShifted(residuesMoved(r.current, d.opts.Shift))

		shiftedPath := filepath.Join(r.scratch, fmt.Sprintf("shifted_%d.fasta", i))
		if err := fasta.WriteFile(shiftedPath, shifted, 0); err != nil {
			return err
		}

		d.transition(r, StateAligning, i)
		aln, err := d.align(ctx, shiftedPath, filepath.Join(r.scratch, fmt.Sprintf("aligned_%d.fasta", i)))
		if err != nil {
			return err
		}

		d.transition(r, StatePersisting, i)
		if err := d.persist(ctx, r, i, aln, IterationArtifact(i)); err != nil {
			return err
		}
		d.opts.Metrics.IterationCompleted()
	}
	return nil
}

func (d *Driver) align(ctx context.Context, input, output string) (fasta.Alignment, error) {
	start := time.Now()
	aln, err := d.aligner.Align(ctx, input, output)
	d.opts.Metrics.ObserveAlignment(time.Since(start), err)
	if err != nil {
		return nil, err
	}
	// aligner.Func implementations bypass ReadResult.
	if len(aln) == 0 {
		return nil, &aligner.AlignmentToolError{Tool: d.opts.AlignerName, Input: input, ExitCode: -1, Err: aligner.ErrNoRecords}
	}
	if err := aln.CheckEqualLength(); err != nil {
		return nil, &aligner.AlignmentToolError{Tool: d.opts.AlignerName, Input: input, ExitCode: -1, Err: err}
	}
	return aln, nil
}

// persist writes aln as a numbered artifact, records it and makes it the
// current alignment.
func (d *Driver) persist(ctx context.Context, r *run, iteration int, aln fasta.Alignment, name string) error {
	path := filepath.Join(d.opts.OutputDir, name)
	if err := fasta.WriteFile(path, aln, d.opts.Wrap); err != nil {
		return err
	}

	cols, _ := aln.Columns()
	art := Artifact{
		Iteration: iteration,
		Path:      path,
		Records:   len(aln),
		Columns:   cols,
		Digest:    digest.Alignment(aln),
	}

	err := d.opts.Recorder.RecordStep(ctx, store.Step{
		RunID:     r.id,
		Seq:       r.clock.Next(),
		Iteration: art.Iteration,
		Artifact:  art.Path,
		Records:   art.Records,
		Columns:   art.Columns,
		Digest:    art.Digest,
	})
	if err != nil {
		return err
	}

	if n := len(r.artifacts); n > 0 && r.artifacts[n-1].Digest == art.Digest {
		r.logger.Info("alignment unchanged since previous iteration", "iteration", iteration, "digest", digest.Short(art.Digest))
	}

	r.artifacts = append(r.artifacts, art)
	r.current = aln
	r.logger.Info("alignment persisted",
		"iteration", iteration,
		"path", path,
		"records", art.Records,
		"columns", art.Columns,
		"digest", digest.Short(art.Digest),
	)
	return nil
}

// finish records the terminal status. The run error always wins over a
// ledger error, which is joined to it.
func (d *Driver) finish(ctx context.Context, r *run, runErr error) error {
	status := store.StatusCompleted
	msg := ""
	if runErr != nil {
		status = store.StatusFailed
		msg = runErr.Error()
	}

	// The run may have failed because ctx was cancelled; still record it.
	ctx = context.WithoutCancel(ctx)
	if err := d.opts.Recorder.FinishRun(ctx, r.id, status, msg, d.opts.Now()); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func (d *Driver) transition(r *run, to State, iteration int) {
	r.logger.Debug("state transition", "from", d.state, "to", to, "iteration", iteration)
	d.state = to
}

func residuesMoved(aln fasta.Alignment, shift int) int {
	n := 0
	for _, rec := range aln {
		if l := rec.Len(); l > 0 {
			n += shift % l
		}
	}
	return n
}
