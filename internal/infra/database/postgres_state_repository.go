// internal/infra/database/postgres_state_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/state"
)

// The checkpoint table holds a single row with id = 1.
const postgresSchema = `CREATE TABLE IF NOT EXISTS poll_checkpoint (
	id                 SMALLINT PRIMARY KEY,
	from_date          BIGINT NOT NULL,
	last_message       TEXT NOT NULL DEFAULT '',
	last_error_message TEXT NOT NULL DEFAULT '',
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type PostgresStateRepository struct {
	db *sql.DB
}

// NewPostgresStateRepository creates the checkpoint table if it is missing.
func NewPostgresStateRepository(ctx context.Context, db *sql.DB) (*PostgresStateRepository, error) {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("error creating poll_checkpoint table: %w", err)
	}
	return &PostgresStateRepository{db: db}, nil
}

func (r *PostgresStateRepository) Load(ctx context.Context) (*state.Checkpoint, error) {
	query := `SELECT from_date, last_message, last_error_message, updated_at FROM poll_checkpoint WHERE id = 1`
	cp := state.Checkpoint{}
	err := r.db.QueryRowContext(ctx, query).Scan(&cp.FromDate, &cp.LastMessage, &cp.LastErrorMessage, &cp.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, state.ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("error loading checkpoint: %w", err)
	}
	return &cp, nil
}

func (r *PostgresStateRepository) Save(ctx context.Context, cp *state.Checkpoint) error {
	query := `INSERT INTO poll_checkpoint (id, from_date, last_message, last_error_message, updated_at)
               VALUES (1, $1, $2, $3, $4)
               ON CONFLICT (id) DO UPDATE SET
                   from_date = EXCLUDED.from_date,
                   last_message = EXCLUDED.last_message,
                   last_error_message = EXCLUDED.last_error_message,
                   updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, cp.FromDate, cp.LastMessage, cp.LastErrorMessage, cp.UpdatedAt); err != nil {
		return fmt.Errorf("error saving checkpoint: %w", err)
	}
	return nil
}

func (r *PostgresStateRepository) Close() error {
	return r.db.Close()
}
