package postgreswrapper

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/queryable-go/example/shared/shell"
	"github.com/AntonStoeckl/queryable-go/example/shared/shell/config"
	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"

	connectTimeout = 5 * time.Second
)

// Wrapper holds a query client for the adapter selected by ADAPTER_TYPE.
type Wrapper struct {
	conn    shell.Connection
	adapter string
}

// GetClient returns the query client.
func (w *Wrapper) GetClient() postgresengine.Client {
	return w.conn.Client
}

// Adapter returns the driver the client uses (pgx, sql or sqlx).
func (w *Wrapper) Adapter() string {
	return w.adapter
}

// Close releases the pools of the client.
func (w *Wrapper) Close() {
	w.conn.Close()
}

// CreateWrapperWithTestConfig connects to the test database with the adapter from the environment
// and applies the tutorial schema. The test is skipped if the database is not reachable.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) *Wrapper {
	return createWrapper(t, config.PostgresDSN(), "", options)
}

// CreateWrapperWithReplica is CreateWrapperWithTestConfig with the replica DSN from the environment.
// The test is skipped if no replica is configured.
func CreateWrapperWithReplica(t testing.TB, options ...postgresengine.Option) *Wrapper {
	replicaDSN, ok := config.PostgresReplicaDSN()
	if !ok {
		t.Skip("no read replica configured")
	}

	return createWrapper(t, config.PostgresDSN(), replicaDSN, options)
}

func createWrapper(t testing.TB, dsn string, replicaDSN string, options []postgresengine.Option) *Wrapper {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	adapter := adapterFromEnv()

	conn, err := shell.Connect(ctx, adapter, dsn, replicaDSN, options...)
	if err != nil {
		t.Skipf("database not reachable with adapter %s: %v", adapter, err)
	}

	require.NoError(t, shell.ApplySchema(ctx, conn.Client), "error applying the schema in test setup")

	return &Wrapper{conn: conn, adapter: adapter}
}

func adapterFromEnv() string {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch engineTypeFromEnv {
	case typePGXPool, "":
		return config.AdapterPGX
	case typeSQLDB:
		return config.AdapterSQL
	case typeSQLXDB:
		return config.AdapterSQLX
	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}
