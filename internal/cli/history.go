package cli

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rotalign/internal/digest"
	"github.com/roach88/rotalign/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Digest   string
}

// RunDetail is the JSON payload of "history <run-id>".
type RunDetail struct {
	Run   store.Run    `json:"run"`
	Steps []store.Step `json:"steps"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show runs recorded in a ledger",
		Long: `List the runs recorded in a run ledger, newest first.

With a run ID, show that run and every alignment it saved, including the
digest of each alignment. Equal consecutive digests mean an iteration left
the alignment unchanged. With --digest, list every saved alignment with that
content across all runs.

Example:
  rotalign history --db runs.db
  rotalign history --db runs.db --limit 5
  rotalign history --db runs.db --digest 4f1c2a9b...
  rotalign history --db runs.db 0192b5c3-7d7e-7c4a-9b1e-3f2a1d0c9e8f --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runHistory(opts, runID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run ledger (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 = all)")
	cmd.Flags().StringVar(&opts.Digest, "digest", "", "find alignments with this full digest")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, runID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	ctx := cmd.Context()

	// Opening a missing path would create an empty ledger.
	if _, err := os.Stat(opts.Database); err != nil {
		_ = formatter.Error(CodeNotFound, err.Error(), nil)
		exitErr := WrapExitError(ExitCommandError, "ledger not found", err)
		exitErr.Reported = true
		return exitErr
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return reportError(formatter, "failed to open ledger", err)
	}
	defer st.Close()

	if opts.Digest != "" {
		steps, err := st.FindStepsByDigest(ctx, opts.Digest)
		if err != nil {
			return reportError(formatter, "failed to search steps", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(steps)
		}
		return formatter.Table(stepHeaders, stepRows(steps))
	}

	if runID == "" {
		runs, err := st.ListRuns(ctx, opts.Limit)
		if err != nil {
			return reportError(formatter, "failed to list runs", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(runs)
		}
		if len(runs) == 0 {
			return formatter.Success("No runs recorded.")
		}
		rows := make([][]string, len(runs))
		for i, r := range runs {
			rows[i] = []string{
				r.ID,
				string(r.Status),
				strconv.Itoa(r.ShiftLength),
				strconv.Itoa(r.Iterations),
				r.StartedAt.Format(time.RFC3339),
				r.InputPath,
			}
		}
		return formatter.Table([]string{"RUN", "STATUS", "SHIFT", "ITERATIONS", "STARTED", "INPUT"}, rows)
	}

	run, err := st.ReadRun(ctx, runID)
	if err != nil {
		return reportError(formatter, "failed to read run", err)
	}
	steps, err := st.ReadSteps(ctx, runID)
	if err != nil {
		return reportError(formatter, "failed to read steps", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(RunDetail{Run: run, Steps: steps})
	}

	header := "Run " + run.ID + " (" + string(run.Status) + ")"
	if run.Error != "" {
		header += ": " + run.Error
	}
	if err := formatter.Success(header); err != nil {
		return err
	}
	return formatter.Table(stepHeaders, stepRows(steps))
}

var stepHeaders = []string{"RUN", "ITERATION", "RECORDS", "COLUMNS", "DIGEST", "ARTIFACT"}

func stepRows(steps []store.Step) [][]string {
	rows := make([][]string, len(steps))
	for i, s := range steps {
		rows[i] = []string{
			s.RunID,
			strconv.Itoa(s.Iteration),
			strconv.Itoa(s.Records),
			strconv.Itoa(s.Columns),
			digest.Short(s.Digest),
			s.Artifact,
		}
	}
	return rows
}
