package testutil

import (
	"sync"
	"time"
)

// StepClock is a deterministic wall clock for tests. Every call to Now
// advances it by one second from a fixed epoch.
//
// Thread-safety: safe for concurrent use via internal mutex.
type StepClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStepClock creates a clock whose first reading is 2024-01-01T00:00:01Z.
func NewStepClock() *StepClock {
	return &StepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now advances the clock by one second and returns the new time.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}
