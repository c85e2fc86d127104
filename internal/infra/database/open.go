package database

import (
	"context"
	"fmt"
	"strings"

	"homework_status_bot/internal/domain/state"

	"github.com/sirupsen/logrus"
)

// Open returns the checkpoint repository for driver.
// Driver values: "memory" (default), "postgres", "sqlite", "redis".
func Open(ctx context.Context, driver, dsn string, logger *logrus.Entry) (state.Repository, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	logCtx := logger.WithField("driver", driver)

	switch driver {
	case "", "memory":
		logCtx.Info("Checkpoints are kept in memory only")
		return NewMemoryStateRepository(), nil
	case "postgres", "postgresql":
		db, err := NewPostgresConnection(ctx, dsn)
		if err != nil {
			return nil, err
		}
		repo, err := NewPostgresStateRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		logCtx.Info("Postgres checkpoint repository initialized.")
		return repo, nil
	case "sqlite", "sqlite3":
		db, err := NewSQLiteConnection(ctx, dsn)
		if err != nil {
			return nil, err
		}
		repo, err := NewSQLiteStateRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		logCtx.WithField("path", dsn).Info("SQLite checkpoint repository initialized.")
		return repo, nil
	case "redis":
		repo, err := NewRedisStateRepository(ctx, dsn)
		if err != nil {
			return nil, err
		}
		logCtx.Info("Redis checkpoint repository initialized.")
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown state driver: %s", driver)
	}
}

// OpenWithFallback is Open, except that a store which cannot be opened is
// replaced by the in-memory one. Polling must not depend on the store.
func OpenWithFallback(ctx context.Context, driver, dsn string, logger *logrus.Entry) state.Repository {
	repo, err := Open(ctx, driver, dsn, logger)
	if err != nil {
		logger.WithError(err).WithField("driver", driver).Error("Could not open checkpoint storage, keeping checkpoints in memory")
		return NewMemoryStateRepository()
	}
	return repo
}
