// Package config provides database and logging configuration for the tutorial.
//
// This package contains factory functions for creating PostgreSQL connections
// using the supported drivers (pgx.Pool, sql.DB, sqlx.DB) with pre-configured pool settings.
// DSNs, the driver, and the log level come from environment variables with local defaults.
//
// This package is part of the shell (infrastructure) layer.
package config
