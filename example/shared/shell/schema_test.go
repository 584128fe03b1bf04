package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/queryable-go/example/shared/shell"
	"github.com/AntonStoeckl/queryable-go/example/shared/shell/config"
	. "github.com/AntonStoeckl/queryable-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

func Test_SchemaSQL_DeclaresAllRelations(t *testing.T) {
	schemaSQL := shell.SchemaSQL()

	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+shell.TableAccounts)
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+shell.TablePosts)
	assert.Contains(t, schemaSQL, "CREATE OR REPLACE VIEW "+shell.ViewAccountsWithPostCount)
}

func Test_ApplySchema_IsIdempotent(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t) // applies the schema once
	defer wrapper.Close()

	// act
	err := shell.ApplySchema(ctxWithTimeout, wrapper.GetClient())

	// assert
	assert.NoError(t, err)
}

func Test_Connect_When_AdapterIsUnknown_Fails(t *testing.T) {
	// act
	_, err := shell.Connect(context.Background(), "mongo", config.PostgresDSN(), "")

	// assert
	assert.ErrorIs(t, err, shell.ErrConnectingFailed)
	assert.ErrorIs(t, err, config.ErrUnsupportedAdapter)
}
