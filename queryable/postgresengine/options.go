package postgresengine

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/queryable-go/queryable"
	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine/internal/adapters"
)

// Logger interface for SQL query logging, operational information, warnings, and error reporting.
// It is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring Client.
type Option func(*Client) error

// WithLogger sets the logger for the Client.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing and consistency routing (development use)
// Info level: Result counts, affected rows, durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithReadReplicaPGXPool routes reads with queryable.EventualConsistency to a replica pgx Pool.
func WithReadReplicaPGXPool(replica *pgxpool.Pool) Option {
	return func(c *Client) error {
		if replica == nil {
			return queryable.ErrNilDatabaseConnection
		}

		c.replica = adapters.NewPGXAdapter(replica)

		return nil
	}
}

// WithReadReplicaSQLDB routes reads with queryable.EventualConsistency to a replica sql.DB.
func WithReadReplicaSQLDB(replica *sql.DB) Option {
	return func(c *Client) error {
		if replica == nil {
			return queryable.ErrNilDatabaseConnection
		}

		c.replica = adapters.NewSQLAdapter(replica)

		return nil
	}
}

// WithReadReplicaSQLX routes reads with queryable.EventualConsistency to a replica sqlx.DB.
func WithReadReplicaSQLX(replica *sqlx.DB) Option {
	return func(c *Client) error {
		if replica == nil {
			return queryable.ErrNilDatabaseConnection
		}

		c.replica = adapters.NewSQLXAdapter(replica)

		return nil
	}
}
