package config

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// PostgresSQLX opens a configured *sqlx.DB for the given DSN and verifies the connection.
func PostgresSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	// Configure connection pool settings
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultSQLMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultSQLMaxConnIdleTime)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close() // the ping error is the relevant one

		return nil, pingErr
	}

	return db, nil
}
