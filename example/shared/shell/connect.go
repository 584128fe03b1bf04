package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/queryable-go/example/shared/shell/config"
	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine"
)

// ErrConnectingFailed is returned when a database connection cannot be established.
var ErrConnectingFailed = errors.New("connecting to database failed")

// Connection holds a query client and closes the pools behind it.
type Connection struct {
	Client  postgresengine.Client
	closers []func()
}

// Close releases all pools of the connection.
func (c Connection) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
}

// Connect creates a query client for the given driver (config.AdapterPGX, AdapterSQL, AdapterSQLX).
// If replicaDSN is not empty, reads with eventual consistency go to the replica.
func Connect(
	ctx context.Context,
	adapter string,
	dsn string,
	replicaDSN string,
	options ...postgresengine.Option,
) (Connection, error) {

	conn := Connection{}

	fail := func(err error) (Connection, error) {
		conn.Close()
		return Connection{}, errors.Join(ErrConnectingFailed, err)
	}

	switch adapter {
	case config.AdapterPGX:
		pool, err := openPGXPool(ctx, dsn)
		if err != nil {
			return fail(err)
		}
		conn.closers = append(conn.closers, pool.Close)

		if replicaDSN != "" {
			replica, replicaErr := openPGXPool(ctx, replicaDSN)
			if replicaErr != nil {
				return fail(replicaErr)
			}
			conn.closers = append(conn.closers, replica.Close)
			options = append(options, postgresengine.WithReadReplicaPGXPool(replica))
		}

		conn.Client, err = postgresengine.NewClientFromPGXPool(pool, options...)
		if err != nil {
			return fail(err)
		}

	case config.AdapterSQL:
		db, err := config.PostgresSQLDB(ctx, dsn)
		if err != nil {
			return fail(err)
		}
		conn.closers = append(conn.closers, func() { _ = db.Close() })

		if replicaDSN != "" {
			replica, replicaErr := config.PostgresSQLDB(ctx, replicaDSN)
			if replicaErr != nil {
				return fail(replicaErr)
			}
			conn.closers = append(conn.closers, func() { _ = replica.Close() })
			options = append(options, postgresengine.WithReadReplicaSQLDB(replica))
		}

		conn.Client, err = postgresengine.NewClientFromSQLDB(db, options...)
		if err != nil {
			return fail(err)
		}

	case config.AdapterSQLX:
		db, err := config.PostgresSQLX(ctx, dsn)
		if err != nil {
			return fail(err)
		}
		conn.closers = append(conn.closers, func() { _ = db.Close() })

		if replicaDSN != "" {
			replica, replicaErr := config.PostgresSQLX(ctx, replicaDSN)
			if replicaErr != nil {
				return fail(replicaErr)
			}
			conn.closers = append(conn.closers, func() { _ = replica.Close() })
			options = append(options, postgresengine.WithReadReplicaSQLX(replica))
		}

		conn.Client, err = postgresengine.NewClientFromSQLX(db, options...)
		if err != nil {
			return fail(err)
		}

	default:
		return fail(fmt.Errorf("%w: %s", config.ErrUnsupportedAdapter, adapter))
	}

	return conn, nil
}

func openPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, pingErr
	}

	return pool, nil
}
