package postgresengine

import (
	"context"

	"github.com/AntonStoeckl/queryable-go/queryable"
)

// QueryAll executes a query and decodes every row with decoder.
func QueryAll[T any](
	ctx context.Context,
	c Client,
	decoder queryable.Decoder[T],
	query string,
	args ...any,
) ([]T, error) {

	results, err := c.queryResults(ctx, query, args, true)
	if err != nil {
		return nil, err
	}

	return decoder.DecodeAll(results)
}

// QueryRequiredSingleAs executes a query that returns exactly one row and decodes it with decoder.
func QueryRequiredSingleAs[T any](
	ctx context.Context,
	c Client,
	decoder queryable.Decoder[T],
	query string,
	args ...any,
) (T, error) {

	object, err := c.QueryRequiredSingleObject(ctx, query, args...)
	if err != nil {
		var zero T
		return zero, err
	}

	return decoder.Decode(object)
}

// QuerySingleJSONAs executes a query that returns exactly one json document and decodes it with decoder.
func QuerySingleJSONAs[T any](
	ctx context.Context,
	c Client,
	decoder queryable.Decoder[T],
	query string,
	args ...any,
) (T, error) {

	text, err := c.QuerySingleJSON(ctx, query, args...)
	if err != nil {
		var zero T
		return zero, err
	}

	return decoder.DecodeJSON(text)
}
