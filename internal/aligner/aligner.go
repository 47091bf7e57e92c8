// Package aligner runs the external multiple-sequence aligner.
//
// The aligner is a black box: it is given an input FASTA path and an output
// path, and whatever it writes to the output path is parsed back as an
// alignment. Every alignment returned by this package has at least one
// record and all records share one length.
package aligner

import (
	"context"

	"github.com/roach88/rotalign/internal/fasta"
)

// Aligner aligns the FASTA file at input and writes the result to output.
// The returned alignment is the parsed content of output.
type Aligner interface {
	Align(ctx context.Context, input, output string) (fasta.Alignment, error)
}

// Func adapts an ordinary function to the Aligner interface.
type Func func(ctx context.Context, input, output string) (fasta.Alignment, error)

// Align calls f.
func (f Func) Align(ctx context.Context, input, output string) (fasta.Alignment, error) {
	return f(ctx, input, output)
}

// ReadResult parses the aligner output at path and checks the alignment
// invariants. Failures are reported as *AlignmentToolError attributed to tool.
func ReadResult(tool, input, path string) (fasta.Alignment, error) {
	aln, err := fasta.ReadFile(path)
	if err != nil {
		return nil, &AlignmentToolError{Tool: tool, Input: input, ExitCode: -1, Err: err}
	}
	if len(aln) == 0 {
		return nil, &AlignmentToolError{Tool: tool, Input: input, ExitCode: -1, Err: ErrNoRecords}
	}
	if err := aln.CheckEqualLength(); err != nil {
		return nil, &AlignmentToolError{Tool: tool, Input: input, ExitCode: -1, Err: err}
	}
	return aln, nil
}
