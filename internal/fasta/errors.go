package fasta

import "fmt"

// IOError reports a failed read or write of a FASTA file.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// SyntaxError reports structurally invalid FASTA input.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("fasta: line %d: %s", e.Line, e.Msg)
}

// RaggedError reports an alignment whose records differ in length.
type RaggedError struct {
	ID   string
	Len  int
	Want int
}

func (e *RaggedError) Error() string {
	return fmt.Sprintf("fasta: record %q has length %d, other records have length %d", e.ID, e.Len, e.Want)
}
