package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Supported database drivers, selected with DB_ADAPTER.
const (
	AdapterPGX  = "pgx"
	AdapterSQL  = "sql"
	AdapterSQLX = "sqlx"
)

const (
	envAdapter  = "DB_ADAPTER"
	envLogLevel = "LOG_LEVEL"
)

// ErrUnsupportedAdapter is returned for an unknown DB_ADAPTER value.
var ErrUnsupportedAdapter = errors.New("unsupported database adapter")

// AdapterFromEnv returns the database driver from DB_ADAPTER, pgx if unset.
func AdapterFromEnv() (string, error) {
	adapter := strings.ToLower(strings.TrimSpace(os.Getenv(envAdapter)))

	switch adapter {
	case "":
		return AdapterPGX, nil
	case AdapterPGX, AdapterSQL, AdapterSQLX:
		return adapter, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAdapter, adapter)
	}
}

// LogLevelFromEnv returns the slog level from LOG_LEVEL (debug, info, warn, error), info if unset or unknown.
func LogLevelFromEnv() slog.Level {
	var level slog.Level

	if err := level.UnmarshalText([]byte(os.Getenv(envLogLevel))); err != nil {
		return slog.LevelInfo
	}

	return level
}
