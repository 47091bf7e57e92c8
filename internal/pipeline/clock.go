package pipeline

// seqClock is a monotonic logical clock numbering the steps of one run.
// Step order in the ledger follows seq, never wall time.
type seqClock struct {
	seq int64
}

// Next returns the next sequence number; the first call returns 1.
func (c *seqClock) Next() int64 {
	c.seq++
	return c.seq
}
