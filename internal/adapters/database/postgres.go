package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/progressly/progressly-api/internal/config"
)

const DB_NAME = "progressly"

const LOCAL_CONNECTION_STRING = config.LOCAL_CONNECTION_STRING

const MAIN_SCHEMA = "progressly"
const TESTING_SCHEMA = "progressly_test"

func GetSchemaName(isTesting bool) string {
	if isTesting {
		return TESTING_SCHEMA
	}
	return MAIN_SCHEMA
}

// NewPostgresDatabase connects to postgres, retrying while the server is unavailable
func NewPostgresDatabase(ctx context.Context, logger *slog.Logger, connectionString string) (*sqlx.DB, error) {
	var db *sqlx.DB
	err := retry.Do(
		func() error {
			var err error
			db, err = sqlx.ConnectContext(ctx, "postgres", connectionString)
			return err
		},
		retry.Attempts(5),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.OnRetry(func(n uint, err error) {
			logger.WarnContext(ctx, "Retrying database connection", "attempt", n+1, "error", err)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	err = createDatabaseIfNotExists(ctx, db, DB_NAME)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	return db, nil
}

func createDatabaseIfNotExists(ctx context.Context, db *sqlx.DB, dbName string) error {
	var count int
	err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM pg_database WHERE datname = $1", dbName)
	if err != nil {
		return fmt.Errorf("createDB: failed to check if database exists: %w", err)
	}

	if count > 0 {
		return nil
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %s", pq.QuoteIdentifier(dbName)))
	if err != nil {
		return fmt.Errorf("createDB: failed to create database: %w", err)
	}

	return nil
}
