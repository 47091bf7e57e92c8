// Package pipeline implements the iteration driver: align, then repeatedly
// rotate, re-align and persist.
//
// STATE MACHINE:
//
//	Initializing → Shifting(1) → Aligning(1) → Persisting(1) → Shifting(2) → … → Done
//
// Initializing aligns the user's input and persists it as the initial
// artifact. With zero iterations the driver goes straight to Done. Any
// error moves the driver to Failed and ends the run: there is no retry and
// no resume. Artifacts persisted before the failure stay on disk.
//
// The driver is strictly sequential. The only mutable state is the current
// alignment, owned by Run. Intermediate files live in a per-run scratch
// directory that is removed on every exit path; numbered artifacts are
// written to the output directory and outlive the run.
package pipeline
