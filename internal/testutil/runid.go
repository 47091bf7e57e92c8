package testutil

import "fmt"

// SequentialRunIDs returns run IDs "run-0001", "run-0002", ... in order.
//
// Implements pipeline.RunIDGenerator. Not safe for concurrent use; the
// driver only generates one ID per run.
type SequentialRunIDs struct {
	prefix string
	n      int
}

// NewSequentialRunIDs creates a generator. An empty prefix means "run".
func NewSequentialRunIDs(prefix string) *SequentialRunIDs {
	if prefix == "" {
		prefix = "run"
	}
	return &SequentialRunIDs{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialRunIDs) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
