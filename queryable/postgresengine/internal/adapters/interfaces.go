package adapters

import "context"

// DBAdapter defines the interface for database operations needed by the query client.
type DBAdapter interface {
	Query(ctx context.Context, query string, args ...any) (DBRows, error)
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)
}

// Column describes one column of a result set.
// TypeName is the upper-case database type name, e.g. "INT2", "UUID", "JSONB", or empty if unknown.
type Column struct {
	Name     string
	TypeName string
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Columns() ([]Column, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
