package config

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

const (
	driverName                = "postgres"
	defaultMaxOpenConnections = 8
	defaultMaxIdleConnections = 2
	defaultSQLMaxConnLifetime = time.Hour
	defaultSQLMaxConnIdleTime = time.Minute * 5
)

// PostgresSQLDB opens a configured *sql.DB for the given DSN and verifies the connection.
func PostgresSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
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
