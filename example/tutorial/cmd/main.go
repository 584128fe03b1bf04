// Command tutorial runs the query result mapping tutorial against PostgreSQL.
//
// It takes no flags. The environment selects the database and the driver:
//
//	TUTORIAL_DB_DSN          primary database (default: local test database)
//	TUTORIAL_DB_REPLICA_DSN  optional read replica for reads with eventual consistency
//	DB_ADAPTER               pgx (default), sql or sqlx
//	LOG_LEVEL                debug, info (default), warn or error
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/queryable-go/example/shared/shell"
	"github.com/AntonStoeckl/queryable-go/example/shared/shell/config"
	"github.com/AntonStoeckl/queryable-go/example/tutorial"
	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevelFromEnv()}))

	if err := run(ctx, logger); err != nil {
		logger.Error("tutorial failed", "error", err.Error())
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	adapter, err := config.AdapterFromEnv()
	if err != nil {
		return err
	}

	replicaDSN, _ := config.PostgresReplicaDSN()

	conn, err := shell.Connect(ctx, adapter, config.PostgresDSN(), replicaDSN, postgresengine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("connected", "adapter", adapter, "replica", replicaDSN != "")

	if err := shell.ApplySchema(ctx, conn.Client); err != nil {
		return err
	}

	return tutorial.Run(ctx, conn.Client, os.Stdout)
}
