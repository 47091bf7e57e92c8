package aligner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/roach88/rotalign/internal/fasta"
)

// DefaultBinary is the Clustal Omega executable name.
const DefaultBinary = "clustalo"

// DefaultArgs are appended after the fixed input/output arguments.
var DefaultArgs = []string{"-v", "--auto"}

// Clustal invokes Clustal Omega (or any tool accepting the same
// "-i IN -o OUT" arguments) as a child process.
type Clustal struct {
	// Binary is a name resolved through PATH or a path to the executable.
	Binary string

	// Args are extra arguments appended to every invocation.
	Args []string

	Logger *slog.Logger
}

// NewClustal creates an aligner for binary. An empty binary selects
// DefaultBinary; nil args select DefaultArgs.
func NewClustal(binary string, args []string) *Clustal {
	if binary == "" {
		binary = DefaultBinary
	}
	if args == nil {
		args = DefaultArgs
	}
	return &Clustal{Binary: binary, Args: args}
}

// Check verifies the binary is reachable. It returns *ToolNotFoundError
// otherwise.
func (c *Clustal) Check() error {
	if _, err := exec.LookPath(c.Binary); err != nil {
		return &ToolNotFoundError{Binary: c.Binary, Err: err}
	}
	return nil
}

// CommandArgs returns the argument list for one invocation.
func (c *Clustal) CommandArgs(input, output string) []string {
	args := []string{"-i", input, "-o", output, "--outfmt=fasta", "--force"}
	return append(args, c.Args...)
}

// Align runs the tool synchronously and parses its output.
func (c *Clustal) Align(ctx context.Context, input, output string) (fasta.Alignment, error) {
	logger := c.logger()
	args := c.CommandArgs(input, output)
	logger.Debug("invoking aligner", "binary", c.Binary, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	var diag bytes.Buffer
	cmd.Stdout = &diag
	cmd.Stderr = &diag

	if err := cmd.Run(); err != nil {
		toolErr := &AlignmentToolError{
			Tool:        c.Binary,
			Input:       input,
			ExitCode:    -1,
			Diagnostics: strings.TrimSpace(diag.String()),
			Err:         err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			toolErr.ExitCode = exitErr.ExitCode()
			toolErr.Err = nil
		}
		logger.Error("aligner failed", "binary", c.Binary, "input", input, "exit_code", toolErr.ExitCode, "diagnostics", toolErr.Diagnostics)
		return nil, toolErr
	}
	logger.Debug("aligner finished", "output", output, "diagnostics_bytes", diag.Len())

	aln, err := ReadResult(c.Binary, input, output)
	if err != nil {
		return nil, err
	}
	return aln, nil
}

// String describes the configured command line.
func (c *Clustal) String() string {
	return strings.TrimSpace(c.Binary + " " + strings.Join(c.Args, " "))
}

func (c *Clustal) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
