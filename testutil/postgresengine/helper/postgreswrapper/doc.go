// Package postgreswrapper provides test utilities for abstracting over different PostgreSQL database adapters.
//
// This package enables testing of the query client across multiple database drivers
// (pgx, sql.DB, sqlx.DB) using a common Wrapper. The specific adapter type is determined
// by the ADAPTER_TYPE environment variable, allowing the same test suite to run against different
// database implementations. Tests are skipped if the database is not reachable.
//
// Usage:
//
//	// Create wrapper for testing, the tutorial schema is applied
//	wrapper := CreateWrapperWithTestConfig(t)
//	defer wrapper.Close()
//
//	// Use the client
//	client := wrapper.GetClient()
package postgreswrapper
