package cli

import (
	"errors"

	"github.com/roach88/rotalign/internal/aligner"
	"github.com/roach88/rotalign/internal/config"
	"github.com/roach88/rotalign/internal/fasta"
	"github.com/roach88/rotalign/internal/rotate"
	"github.com/roach88/rotalign/internal/store"
)

// Error codes reported in JSON error envelopes.
const (
	CodeGeneric       = "E001"
	CodeNotFound      = "E005"
	CodeToolNotFound  = "E201"
	CodeAlignerFailed = "E202"
	CodeEmptySequence = "E203"
	CodeIO            = "E204"
	CodeConfig        = "E205"
)

// classify maps an error to its reported code and process exit code.
// Tool and config problems are command errors; anything that stops a
// started run is a run failure.
func classify(err error) (code string, exit int) {
	var (
		toolNotFound *aligner.ToolNotFoundError
		toolErr      *aligner.AlignmentToolError
		emptySeq     *rotate.EmptySequenceError
		ioErr        *fasta.IOError
		syntaxErr    *fasta.SyntaxError
		cfgErr       *config.Error
	)
	switch {
	case errors.As(err, &toolNotFound):
		return CodeToolNotFound, ExitCommandError
	case errors.As(err, &cfgErr):
		return CodeConfig, ExitCommandError
	case errors.Is(err, rotate.ErrNegativeShift):
		return CodeConfig, ExitCommandError
	case errors.As(err, &toolErr):
		return CodeAlignerFailed, ExitFailure
	case errors.As(err, &emptySeq):
		return CodeEmptySequence, ExitFailure
	case errors.As(err, &ioErr), errors.As(err, &syntaxErr):
		return CodeIO, ExitFailure
	case errors.Is(err, store.ErrRunNotFound):
		return CodeNotFound, ExitFailure
	default:
		return CodeGeneric, ExitFailure
	}
}

// reportError writes err through the formatter and returns it wrapped
// with the matching exit code.
func reportError(formatter *OutputFormatter, message string, err error) error {
	code, exit := classify(err)
	_ = formatter.Error(code, err.Error(), nil)
	exitErr := WrapExitError(exit, message, err)
	exitErr.Reported = true
	return exitErr
}
