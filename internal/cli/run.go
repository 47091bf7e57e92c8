package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/rotalign/internal/aligner"
	"github.com/roach88/rotalign/internal/config"
	"github.com/roach88/rotalign/internal/metrics"
	"github.com/roach88/rotalign/internal/pipeline"
	"github.com/roach88/rotalign/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConfigPath  string
	Shift       int
	Iterations  int
	OutputDir   string
	Aligner     string
	Wrap        int
	Database    string
	MetricsFile string

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs pipeline.RunIDGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <input.fasta>",
		Short: "Align, rotate and re-align a FASTA file",
		Long: `Align the sequences in a FASTA file, then repeatedly rotate every aligned
sequence left by --shift residues and align again.

The initial alignment is saved as initial_alignment_result.fasta and the
alignment after iteration i as alignment_after_iteration_<i>.fasta, both in
--out-dir. The aligner binary is looked up before any work starts.

Flags override values from --config (.yaml, .yml or .cue).

Example:
  rotalign run sequences.fasta
  rotalign run sequences.fasta --shift 25 --iterations 10
  rotalign run sequences.fasta --config rotalign.cue --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.yaml, .yml or .cue)")
	cmd.Flags().IntVar(&opts.Shift, "shift", config.DefaultShift, "residues to rotate left before each re-alignment")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", config.DefaultIterations, "number of shift and re-align rounds")
	cmd.Flags().StringVarP(&opts.OutputDir, "out-dir", "o", config.DefaultOutputDir, "directory for alignment results")
	cmd.Flags().StringVar(&opts.Aligner, "aligner", aligner.DefaultBinary, "aligner executable")
	cmd.Flags().IntVar(&opts.Wrap, "wrap", config.DefaultWrap, "sequence line width of saved alignments (0 = single line)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite run ledger (disabled when empty)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	return cmd
}

// resolveConfig loads the config file and applies explicitly set flags.
func resolveConfig(opts *RunOptions, cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("shift") {
		cfg.Shift = opts.Shift
	}
	if flags.Changed("iterations") {
		cfg.Iterations = opts.Iterations
	}
	if flags.Changed("out-dir") {
		cfg.OutputDir = opts.OutputDir
	}
	if flags.Changed("aligner") {
		cfg.Aligner.Binary = opts.Aligner
	}
	if flags.Changed("wrap") {
		cfg.Wrap = opts.Wrap
	}
	if flags.Changed("db") {
		cfg.Ledger = opts.Database
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.MetricsFile
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, &config.Error{Path: "flags", Err: err}
	}
	return cfg, nil
}

func runPipeline(opts *RunOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	cfg, err := resolveConfig(opts, cmd)
	if err != nil {
		return reportError(formatter, "invalid configuration", err)
	}

	clustal := aligner.NewClustal(cfg.Aligner.Binary, cfg.Aligner.Args)
	clustal.Logger = logger
	if err := clustal.Check(); err != nil {
		return reportError(formatter, "aligner not available", err)
	}

	var recorder pipeline.Recorder
	if cfg.Ledger != "" {
		logger.Debug("opening ledger", "path", cfg.Ledger)
		st, err := store.Open(cfg.Ledger)
		if err != nil {
			return reportError(formatter, "failed to open ledger", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing ledger", "error", closeErr)
			}
		}()
		recorder = st
	}

	m := metrics.New()
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := m.WriteTextfile(cfg.MetricsFile); werr != nil {
				logger.Error("failed to write metrics", "path", cfg.MetricsFile, "error", werr)
			}
		}()
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping aligner", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	driver := pipeline.New(clustal, pipeline.Options{
		Shift:       cfg.Shift,
		Iterations:  cfg.Iterations,
		OutputDir:   cfg.OutputDir,
		Wrap:        cfg.Wrap,
		AlignerName: clustal.String(),
		Recorder:    recorder,
		Metrics:     m,
		RunIDs:      opts.RunIDs,
		Logger:      logger,
	})

	result, err := driver.Run(ctx, input)
	if err != nil {
		return reportError(formatter, "run failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(runSummary(result))
}

// runSummary renders the text listing of saved alignments.
func runSummary(result *pipeline.Result) string {
	s := "All iterations completed. Alignment results saved as:"
	for _, art := range result.Artifacts {
		s += fmt.Sprintf("\n- %s", art.Path)
	}
	return s
}
