// Package store provides the SQLite run ledger.
//
// The ledger is append-mostly:
//   - runs: one row per driver invocation, updated once when it finishes
//   - steps: one row per persisted alignment (iteration 0 is the initial one)
//
// Ordering never uses timestamps. Runs sort by id (UUIDv7, time-sortable),
// steps by their per-run seq. Timestamps are stored as RFC 3339 text for
// display only.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
