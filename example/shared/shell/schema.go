package shell

import (
	"context"
	_ "embed"
	"errors"

	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine"
)

// Table and view names of the tutorial schema.
const (
	TableAccounts             = "accounts"
	TablePosts                = "posts"
	ViewAccountsWithPostCount = "accounts_with_post_count"
)

// ErrApplyingSchemaFailed is returned when the schema declaration cannot be applied.
var ErrApplyingSchemaFailed = errors.New("applying schema failed")

//go:embed schema.sql
var schemaSQL string

// SchemaSQL returns the schema declaration.
func SchemaSQL() string {
	return schemaSQL
}

// ApplySchema creates the tables and views of the tutorial if they do not exist.
// It is idempotent and safe to call from concurrent processes.
func ApplySchema(ctx context.Context, client postgresengine.Client) error {
	if _, err := client.Execute(ctx, schemaSQL); err != nil {
		return errors.Join(ErrApplyingSchemaFailed, err)
	}

	return nil
}
