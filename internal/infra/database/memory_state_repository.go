package database

import (
	"context"
	"sync"

	"homework_status_bot/internal/domain/state"
)

// MemoryStateRepository keeps the checkpoint for the lifetime of the process only.
type MemoryStateRepository struct {
	mu sync.Mutex
	cp *state.Checkpoint
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{}
}

func (r *MemoryStateRepository) Load(context.Context) (*state.Checkpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cp == nil {
		return nil, state.ErrCheckpointNotFound
	}
	cp := *r.cp
	return &cp, nil
}

func (r *MemoryStateRepository) Save(_ context.Context, cp *state.Checkpoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *cp
	r.cp = &c
	return nil
}

func (r *MemoryStateRepository) Close() error { return nil }
