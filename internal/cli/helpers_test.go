package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/rotalign/internal/testutil"
)

const pairFASTA = ">id1\nAACCGGTT\n>id2\nTTGGCCAA\n"

// execute runs the CLI with args and returns stdout, stderr and exit code.
func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	code := Execute(args, out, errOut)
	return out.String(), errOut.String(), code
}

// runFixture is a temp workspace with an input file and a fake aligner.
type runFixture struct {
	dir     string
	input   string
	outDir  string
	aligner string
}

func newRunFixture(t *testing.T, content string, mode testutil.FakeAlignerMode) runFixture {
	t.Helper()
	dir := t.TempDir()
	return runFixture{
		dir:     dir,
		input:   testutil.WriteFASTA(t, dir, "input.fasta", content),
		outDir:  filepath.Join(dir, "out"),
		aligner: testutil.WriteFakeAligner(t, dir, mode),
	}
}

// args returns the run command line for the fixture followed by extra.
func (f runFixture) args(extra ...string) []string {
	return append([]string{"run", f.input, "--aligner", f.aligner, "--out-dir", f.outDir}, extra...)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
