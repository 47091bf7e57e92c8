package fasta

import (
	"errors"
	"os"
)

// ReadFile reads every record of the FASTA file at path.
// Open and read failures are returned as *IOError; malformed content as
// *SyntaxError wrapped in an *IOError.
func ReadFile(path string) (Alignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	aln, err := NewReader(f).ReadAll()
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return aln, nil
}

// WriteFile writes aln to path, truncating any existing file.
// cols is the sequence line width; cols <= 0 writes single-line sequences.
func WriteFile(path string, aln Alignment, cols int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "write", Path: path, Err: cerr}
		}
	}()

	w := NewWriter(f)
	w.Columns = cols
	if err := w.WriteAll(aln); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// IsSyntaxError reports whether err carries a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
