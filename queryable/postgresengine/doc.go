// Package postgresengine executes SQL against PostgreSQL and returns rows as queryable.QueryResult values.
//
// It supports multiple database adapters (pgx, sql.DB, sqlx) and an optional read replica
// that serves reads carrying queryable.EventualConsistency in their context.
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	client, _ := postgresengine.NewClientFromPGXPool(db)
//
//	// With logging and a read replica
//	client, _ := postgresengine.NewClientFromPGXPool(
//		db,
//		postgresengine.WithLogger(slog.Default()),
//		postgresengine.WithReadReplicaPGXPool(replica),
//	)
//
//	result, _ := client.QueryRequiredSingle(ctx, "SELECT 'Hi'")
//	greeting, _ := queryable.DecodeString(result)
//
//	object, _ := client.QueryRequiredSingleObject(ctx,
//		"SELECT a.username, a.id FROM accounts a WHERE a.username = $1", name)
//	account, _ := accountDecoder.Decode(object)
package postgresengine
