// Command rotalign aligns circular sequences with an external aligner,
// rotating and re-aligning them for a fixed number of rounds.
package main

import (
	"os"

	"github.com/roach88/rotalign/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
