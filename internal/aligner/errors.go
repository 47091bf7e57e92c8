package aligner

import (
	"errors"
	"fmt"
)

// ToolNotFoundError reports that the aligner binary could not be located.
// It is raised by the pre-flight check before any work starts.
type ToolNotFoundError struct {
	Binary string
	Err    error
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("alignment tool %q not found in PATH: %v", e.Binary, e.Err)
}

func (e *ToolNotFoundError) Unwrap() error {
	return e.Err
}

// AlignmentToolError reports a failed aligner invocation: the process could
// not start, exited non-zero, or produced output that is not a usable
// alignment.
type AlignmentToolError struct {
	Tool     string
	Input    string
	ExitCode int // -1 when the process never ran or exited by signal

	// Diagnostics is the tool's combined stderr/stdout, trimmed.
	Diagnostics string

	Err error
}

func (e *AlignmentToolError) Error() string {
	msg := fmt.Sprintf("%s failed on %s", e.Tool, e.Input)
	if e.ExitCode > 0 {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Diagnostics != "" {
		msg = fmt.Sprintf("%s\n%s", msg, e.Diagnostics)
	}
	return msg
}

func (e *AlignmentToolError) Unwrap() error {
	return e.Err
}

// ErrNoRecords is wrapped by an AlignmentToolError when the aligner output
// contains no sequences.
var ErrNoRecords = errors.New("aligner produced no sequences")

// IsToolNotFound reports whether err carries a *ToolNotFoundError.
func IsToolNotFound(err error) bool {
	var tnf *ToolNotFoundError
	return errors.As(err, &tnf)
}

// IsAlignmentToolError reports whether err carries an *AlignmentToolError.
func IsAlignmentToolError(err error) bool {
	var ate *AlignmentToolError
	return errors.As(err, &ate)
}
