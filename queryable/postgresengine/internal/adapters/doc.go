// Package adapters provide database adapter implementations for the PostgreSQL query client.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, so the client can shape result rows the same way
// regardless of the connection type.
//
// Besides running queries with bound arguments, adapters report the column names and the
// database type names of a result, which the client uses to pick the scalar kind of each column.
package adapters
