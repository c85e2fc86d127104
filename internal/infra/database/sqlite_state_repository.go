package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/state"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS poll_checkpoint (
	id                 INTEGER PRIMARY KEY,
	from_date          INTEGER NOT NULL,
	last_message       TEXT NOT NULL DEFAULT '',
	last_error_message TEXT NOT NULL DEFAULT '',
	updated_at         INTEGER NOT NULL
)`

// SQLiteStateRepository stores updated_at as unix milliseconds.
type SQLiteStateRepository struct {
	db *sql.DB
}

func NewSQLiteStateRepository(ctx context.Context, db *sql.DB) (*SQLiteStateRepository, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("error creating poll_checkpoint table: %w", err)
	}
	return &SQLiteStateRepository{db: db}, nil
}

func (r *SQLiteStateRepository) Load(ctx context.Context) (*state.Checkpoint, error) {
	var (
		cp state.Checkpoint
		ms int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT from_date, last_message, last_error_message, updated_at FROM poll_checkpoint WHERE id = 1`,
	).Scan(&cp.FromDate, &cp.LastMessage, &cp.LastErrorMessage, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, state.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading checkpoint: %w", err)
	}
	cp.UpdatedAt = time.UnixMilli(ms)
	return &cp, nil
}

func (r *SQLiteStateRepository) Save(ctx context.Context, cp *state.Checkpoint) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO poll_checkpoint(id, from_date, last_message, last_error_message, updated_at)
		 VALUES(1,?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET
		   from_date=excluded.from_date,
		   last_message=excluded.last_message,
		   last_error_message=excluded.last_error_message,
		   updated_at=excluded.updated_at`,
		cp.FromDate, cp.LastMessage, cp.LastErrorMessage, cp.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("error saving checkpoint: %w", err)
	}
	return nil
}

func (r *SQLiteStateRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
