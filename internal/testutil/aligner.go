package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FakeAlignerMode selects the behaviour of a fake aligner script.
type FakeAlignerMode int

const (
	// FakeCopy writes the input unchanged to the output path. Empty input
	// files make it fail the way clustalo does.
	FakeCopy FakeAlignerMode = iota

	// FakeFail always exits 1 with a diagnostic on stderr.
	FakeFail

	// FakeGarbage exits 0 but writes output that is not FASTA.
	FakeGarbage
)

const argParser = `in=""
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -i) in="$2"; shift 2 ;;
    -o) out="$2"; shift 2 ;;
    *) shift ;;
  esac
done
`

// WriteFakeAligner writes an executable shell script to dir that accepts
// clustalo's "-i IN -o OUT" arguments, and returns its absolute path.
//
// The script stands in for the real aligner so the exec path is exercised
// without Clustal Omega installed.
func WriteFakeAligner(t *testing.T, dir string, mode FakeAlignerMode) string {
	t.Helper()

	body := "#!/bin/sh\n" + argParser
	switch mode {
	case FakeCopy:
		body += `if [ ! -s "$in" ]; then
  echo "FATAL: no sequences found in $in" >&2
  exit 1
fi
cp "$in" "$out"
`
	case FakeFail:
		body += `echo "FATAL: simulated aligner failure" >&2
exit 1
`
	case FakeGarbage:
		body += `echo "this is not fasta" > "$out"
`
	}

	path := filepath.Join(dir, "fake-clustalo")
	if err := os.WriteFile(path, []byte(body), 0755); err != nil {
		t.Fatalf("write fake aligner: %v", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("abs fake aligner: %v", err)
	}
	return abs
}

// WriteFASTA writes content to name inside dir and returns the path.
func WriteFASTA(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fasta %s: %v", name, err)
	}
	return path
}
