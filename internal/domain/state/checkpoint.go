// internal/domain/state/checkpoint.go
package state

import "time"

// Checkpoint is the poller state carried across cycles and restarts.
// Only the latest values are kept.
type Checkpoint struct {
	FromDate         int64  // Unix timestamp passed as from_date on the next request
	LastMessage      string // Dedup slot for status messages (and errors in single-slot mode)
	LastErrorMessage string // Dedup slot for error messages in split-slot mode
	UpdatedAt        time.Time
}
