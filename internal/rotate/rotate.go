// Package rotate implements the circular shift applied between alignment
// rounds: the first n residues of every sequence move to its end.
package rotate

import (
	"errors"
	"fmt"

	"github.com/roach88/rotalign/internal/fasta"
)

// ErrNegativeShift is returned for a shift length below zero.
var ErrNegativeShift = errors.New("rotate: shift length must be non-negative")

// EmptySequenceError is returned when a zero-length sequence reaches the
// transform. Rotation of an empty sequence is undefined.
type EmptySequenceError struct {
	ID string
}

func (e *EmptySequenceError) Error() string {
	return fmt.Sprintf("rotate: sequence %q is empty", e.ID)
}

// Left rotates s left by n positions. n is reduced modulo len(s), so any
// multiple of the length returns s unchanged. s must be non-empty.
func Left(s string, n int) string {
	k := n % len(s)
	if k == 0 {
		return s
	}
	return s[k:] + s[:k]
}

// Alignment returns a new alignment with every record rotated left by n.
// Identifiers and record order are preserved; the input is not modified.
func Alignment(aln fasta.Alignment, n int) (fasta.Alignment, error) {
	if n < 0 {
		return nil, ErrNegativeShift
	}
	out := make(fasta.Alignment, len(aln))
	for i, rec := range aln {
		if rec.Len() == 0 {
			return nil, &EmptySequenceError{ID: rec.ID}
		}
		out[i] = fasta.Record{ID: rec.ID, Residues: Left(rec.Residues, n)}
	}
	return out, nil
}
