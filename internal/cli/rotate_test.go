package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rotalign/internal/fasta"
	"github.com/roach88/rotalign/internal/testutil"
)

func TestRotateCommand_Stdout(t *testing.T) {
	input := testutil.WriteFASTA(t, t.TempDir(), "in.fasta", pairFASTA)

	stdout, stderr, code := execute(t, "rotate", input, "--shift", "3")
	require.Equal(t, ExitSuccess, code, stderr)

	assert.Equal(t, ">id1\nCGGTTAAC\n>id2\nGCCAATTG\n", stdout)
}

func TestRotateCommand_ShiftReducedModuloLength(t *testing.T) {
	input := testutil.WriteFASTA(t, t.TempDir(), "in.fasta", ">s\nACGTACGT\n")

	stdout, _, code := execute(t, "rotate", input, "--shift", "10")
	require.Equal(t, ExitSuccess, code)

	assert.Equal(t, ">s\nGTACGTAC\n", stdout)
}

func TestRotateCommand_OutputFile(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFASTA(t, dir, "in.fasta", ">s\nACGT\nACGT\n")
	output := filepath.Join(dir, "out.fasta")

	stdout, stderr, code := execute(t, "rotate", input, "--shift", "2", "-o", output, "--wrap", "4")
	require.Equal(t, ExitSuccess, code, stderr)

	assert.Empty(t, stdout)
	assert.Equal(t, ">s\nGTAC\nGTAC\n", readFile(t, output))
}

func TestRotateCommand_JSON(t *testing.T) {
	input := testutil.WriteFASTA(t, t.TempDir(), "in.fasta", pairFASTA)

	stdout, stderr, code := execute(t, "rotate", input, "--shift", "3", "--format", "json")
	require.Equal(t, ExitSuccess, code, stderr)

	var resp struct {
		Status string       `json:"status"`
		Data   RotateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 3, resp.Data.Shift)
	assert.Equal(t, fasta.Alignment{
		{ID: "id1", Residues: "CGGTTAAC"},
		{ID: "id2", Residues: "GCCAATTG"},
	}, resp.Data.Records)
}

func TestRotateCommand_EmptySequence(t *testing.T) {
	input := testutil.WriteFASTA(t, t.TempDir(), "in.fasta", ">a\nACGT\n>b\n")

	stdout, stderr, code := execute(t, "rotate", input, "--shift", "1")

	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error ["+CodeEmptySequence+"]")
	assert.Contains(t, stderr, `"b"`)
}

func TestRotateCommand_NegativeShift(t *testing.T) {
	input := testutil.WriteFASTA(t, t.TempDir(), "in.fasta", pairFASTA)

	_, stderr, code := execute(t, "rotate", input, "--shift", "-2")

	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "Error ["+CodeConfig+"]")
}

func TestRotateCommand_MalformedInput(t *testing.T) {
	input := testutil.WriteFASTA(t, t.TempDir(), "in.fasta", "ACGT\n>a\nACGT\n")

	_, stderr, code := execute(t, "rotate", input)

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "Error ["+CodeIO+"]")
	assert.Contains(t, stderr, "line 1")
}

func TestRotateCommand_MissingInput(t *testing.T) {
	_, stderr, code := execute(t, "rotate", filepath.Join(t.TempDir(), "missing.fasta"))

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "Error ["+CodeIO+"]")
}
