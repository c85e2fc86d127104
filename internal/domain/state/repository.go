// internal/domain/state/repository.go
package state

import (
	"context"
	"errors"
)

var ErrCheckpointNotFound = errors.New("checkpoint not found")

// Repository persists the poller checkpoint.
type Repository interface {
	// Load returns ErrCheckpointNotFound when nothing has been saved yet.
	Load(ctx context.Context) (*Checkpoint, error)
	Save(ctx context.Context, cp *Checkpoint) error
	Close() error
}
