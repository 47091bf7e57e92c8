package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Record is a single FASTA entry: the header line without its leading '>'
// and the residues of every following sequence line concatenated.
type Record struct {
	ID       string `json:"id"`
	Residues string `json:"residues"`
}

// Len returns the number of residues, gaps included.
func (r Record) Len() int {
	return len(r.Residues)
}

// Alignment is an ordered collection of records. Order is the order the
// records were read in and is preserved by every transform.
type Alignment []Record

// IDs returns the identifiers in alignment order.
func (a Alignment) IDs() []string {
	ids := make([]string, len(a))
	for i, r := range a {
		ids[i] = r.ID
	}
	return ids
}

// Columns returns the common residue length of the alignment.
// ok is false when the alignment is empty or ragged.
func (a Alignment) Columns() (n int, ok bool) {
	if len(a) == 0 {
		return 0, false
	}
	n = a[0].Len()
	for _, r := range a[1:] {
		if r.Len() != n {
			return 0, false
		}
	}
	return n, true
}

// CheckEqualLength returns a *RaggedError naming the first record whose
// length differs from the first record's length.
func (a Alignment) CheckEqualLength() error {
	if len(a) == 0 {
		return nil
	}
	want := a[0].Len()
	for _, r := range a[1:] {
		if r.Len() != want {
			return &RaggedError{ID: r.ID, Len: r.Len(), Want: want}
		}
	}
	return nil
}

// A Reader reads records from FASTA encoded input.
//
// Blank lines and surrounding whitespace are ignored. Residues are kept as
// written; no alphabet is enforced.
//
// It is NOT safe to call Read from multiple goroutines.
type Reader struct {
	buf        *bufio.Reader
	line       int
	nextHeader string
	haveNext   bool
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		buf:  bufio.NewReader(r),
		line: 0,
	}
}

// ReadAll reads every remaining record.
func (r *Reader) ReadAll() (Alignment, error) {
	var aln Alignment
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		aln = append(aln, rec)
	}
	return aln, nil
}

// Read returns the next record, or io.EOF once the input is exhausted.
func (r *Reader) Read() (Record, error) {
	var (
		rec        Record
		seenHeader bool
		seq        strings.Builder
	)

	// The previous call may already have consumed this record's header.
	if r.haveNext {
		rec.ID = r.nextHeader
		r.haveNext = false
		seenHeader = true
	}

	for {
		raw, err := r.buf.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return Record{}, err
		}
		if err == io.EOF && len(raw) == 0 {
			if !seenHeader {
				return Record{}, io.EOF
			}
			rec.Residues = seq.String()
			return rec, nil
		}
		r.line++
		line := bytes.TrimSpace(raw)

		switch {
		case len(line) == 0:
		case line[0] == '>':
			header, herr := r.header(line)
			if herr != nil {
				return Record{}, herr
			}
			if seenHeader {
				r.nextHeader = header
				r.haveNext = true
				rec.Residues = seq.String()
				return rec, nil
			}
			rec.ID = header
			seenHeader = true
		case !seenHeader:
			return Record{}, &SyntaxError{Line: r.line, Msg: fmt.Sprintf("expected '>', got %q", line[0])}
		default:
			seq.Write(line)
		}

		if err == io.EOF {
			rec.Residues = seq.String()
			return rec, nil
		}
	}
}

func (r *Reader) header(line []byte) (string, error) {
	id := string(bytes.TrimSpace(line[1:]))
	if id == "" {
		return "", &SyntaxError{Line: r.line, Msg: "empty header"}
	}
	return id, nil
}

// A Writer writes records in FASTA format.
//
// Columns is the width sequences are wrapped at. A value <= 0 writes each
// sequence on a single line. Headers are never wrapped.
type Writer struct {
	Columns int
	buf     *bufio.Writer
}

// NewWriter returns a Writer that writes single-line sequences to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(w)}
}

// Write writes one record. Call Flush to push buffered output to the
// underlying writer.
func (w *Writer) Write(rec Record) error {
	if _, err := fmt.Fprintf(w.buf, ">%s\n", rec.ID); err != nil {
		return err
	}
	res := rec.Residues
	if w.Columns <= 0 || len(res) <= w.Columns {
		_, err := fmt.Fprintf(w.buf, "%s\n", res)
		return err
	}
	for start := 0; start < len(res); start += w.Columns {
		end := min(start+w.Columns, len(res))
		if _, err := fmt.Fprintf(w.buf, "%s\n", res[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll writes every record and flushes.
func (w *Writer) WriteAll(aln Alignment) error {
	for _, rec := range aln {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}
