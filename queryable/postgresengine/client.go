package postgresengine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/queryable-go/queryable"
	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine/internal/adapters"
)

const (
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgReadColumnsFailed   = "failed to read result columns"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgShapeRowFailed      = "failed to build query result from database row"
	logMsgIterateRowsFailed   = "database row iteration failed"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgQueryCompleted      = "query completed"
	logMsgStatementExecuted   = "statement executed"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "queryable operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrResultCount        = "result_count"
	logAttrDurationMS         = "duration_ms"
	logAttrRowsAffected       = "rows_affected"
	logAttrConsistency        = "consistency"
	logAttrReplica            = "replica"
	logActionQuery            = "query"
	logActionExecute          = "execute"
	requiredSingleResultCount = 1
)

var (
	// ErrReadingColumnsFailed is returned when the result columns cannot be described.
	ErrReadingColumnsFailed = errors.New("reading result columns failed")

	// ErrScanningDBRowFailed is returned when a database row cannot be scanned.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")

	// ErrBuildingQueryResultFailed is returned when a scanned row cannot be turned into a QueryResult.
	ErrBuildingQueryResultFailed = errors.New("building query result from db row failed")

	// ErrGettingRowsAffectedFailed is returned when the affected row count is not available.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected failed")
)

// Client executes SQL queries against PostgreSQL and returns their rows as queryable.QueryResult values.
//
// Each row is shaped by its columns:
//   - one json or jsonb column is a queryable.JSON
//   - one column of any other type is a queryable.Scalar
//   - several columns, or columns with dotted aliases like "author.username", are a queryable.Object
//
// Dotted aliases build nested objects, a nested object whose columns are all NULL has no value.
// NUMERIC columns are float64 scalars, a value that float64 can not hold without loss fails the query.
// Columns named like "__type__" are implicit fields. A row with a single NULL column holds no value
// and is not part of the result set.
type Client struct {
	db      adapters.DBAdapter
	replica adapters.DBAdapter
	logger  Logger
}

// NewClientFromPGXPool creates a new Client using a pgx Pool with optional configuration.
func NewClientFromPGXPool(db *pgxpool.Pool, options ...Option) (Client, error) {
	if db == nil {
		return Client{}, queryable.ErrNilDatabaseConnection
	}

	return newClient(adapters.NewPGXAdapter(db), options)
}

// NewClientFromSQLDB creates a new Client using a sql.DB with optional configuration.
func NewClientFromSQLDB(db *sql.DB, options ...Option) (Client, error) {
	if db == nil {
		return Client{}, queryable.ErrNilDatabaseConnection
	}

	return newClient(adapters.NewSQLAdapter(db), options)
}

// NewClientFromSQLX creates a new Client using a sqlx.DB with optional configuration.
func NewClientFromSQLX(db *sqlx.DB, options ...Option) (Client, error) {
	if db == nil {
		return Client{}, queryable.ErrNilDatabaseConnection
	}

	return newClient(adapters.NewSQLXAdapter(db), options)
}

func newClient(db adapters.DBAdapter, options []Option) (Client, error) {
	c := Client{db: db}

	for _, option := range options {
		if err := option(&c); err != nil {
			return Client{}, err
		}
	}

	return c, nil
}

// Query executes a query and returns one QueryResult per row.
func (c Client) Query(ctx context.Context, query string, args ...any) ([]queryable.QueryResult, error) {
	return c.queryResults(ctx, query, args, false)
}

// QuerySingle executes a query that returns at most one row.
// found is false when the query returned no row, more than one row fails with queryable.ErrTooManyResults.
func (c Client) QuerySingle(ctx context.Context, query string, args ...any) (
	result queryable.QueryResult,
	found bool,
	err error,
) {

	results, err := c.queryResults(ctx, query, args, false)
	if err != nil {
		return nil, false, err
	}

	switch {
	case len(results) == 0:
		return nil, false, nil
	case len(results) > requiredSingleResultCount:
		return nil, false, fmt.Errorf("%w: got %d", queryable.ErrTooManyResults, len(results))
	default:
		return results[0], true, nil
	}
}

// QueryRequiredSingle executes a query that returns exactly one row.
// No row fails with queryable.ErrNoResult, more than one with queryable.ErrTooManyResults.
func (c Client) QueryRequiredSingle(ctx context.Context, query string, args ...any) (queryable.QueryResult, error) {
	results, err := c.queryResults(ctx, query, args, false)
	if err != nil {
		return nil, err
	}

	return requireSingle(results)
}

// QueryRequiredSingleObject is QueryRequiredSingle, but the row is always shaped as a queryable.Object,
// even if it has a single column.
func (c Client) QueryRequiredSingleObject(ctx context.Context, query string, args ...any) (queryable.Object, error) {
	results, err := c.queryResults(ctx, query, args, true)
	if err != nil {
		return queryable.Object{}, err
	}

	result, err := requireSingle(results)
	if err != nil {
		return queryable.Object{}, err
	}

	object, _ := result.(queryable.Object)

	return object, nil
}

// QuerySingleJSON executes a query that returns exactly one json or jsonb value and returns its text.
// Any other shape fails with queryable.ErrUnexpectedVariant.
func (c Client) QuerySingleJSON(ctx context.Context, query string, args ...any) (json.RawMessage, error) {
	result, err := c.QueryRequiredSingle(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return queryable.DecodeJSON(result)
}

// Execute runs a statement that returns no rows and reports the number of affected rows.
// Statements always go to the primary database.
func (c Client) Execute(ctx context.Context, statement string, args ...any) (int64, error) {
	start := time.Now()
	result, execErr := c.db.Exec(ctx, statement, args...)
	duration := time.Since(start)
	c.logQueryWithDuration(statement, logActionExecute, duration)

	if execErr != nil {
		c.logError(logMsgDBExecFailed, execErr, logAttrQuery, statement)

		return 0, errors.Join(queryable.ErrQueryExecutionFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		c.logError(logMsgRowsAffectedFailed, rowsAffectedErr)

		return 0, errors.Join(ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	c.logOperation(
		logMsgStatementExecuted,
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, c.toMilliseconds(duration))

	return rowsAffected, nil
}

func requireSingle(results []queryable.QueryResult) (queryable.QueryResult, error) {
	switch {
	case len(results) == 0:
		return nil, queryable.ErrNoResult
	case len(results) > requiredSingleResultCount:
		return nil, fmt.Errorf("%w: got %d", queryable.ErrTooManyResults, len(results))
	default:
		return results[0], nil
	}
}

func (c Client) queryResults(ctx context.Context, query string, args []any, asObject bool) (
	[]queryable.QueryResult,
	error,
) {

	rows, duration, queryErr := c.executeQuery(ctx, query, args)
	if queryErr != nil {
		return nil, queryErr
	}
	defer c.closeRows(rows)

	results, processErr := c.processRows(rows, asObject)
	if processErr != nil {
		return nil, processErr
	}

	c.logOperation(
		logMsgQueryCompleted,
		logAttrResultCount, len(results),
		logAttrDurationMS, c.toMilliseconds(duration))

	return results, nil
}

// reader picks the database for a read: the replica, if configured, for eventual consistency.
func (c Client) reader(ctx context.Context) (adapters.DBAdapter, bool) {
	if c.replica != nil && queryable.GetConsistencyLevel(ctx) == queryable.EventualConsistency {
		return c.replica, true
	}

	return c.db, false
}

// executeQuery executes the SQL query and returns rows with timing information.
func (c Client) executeQuery(ctx context.Context, query string, args []any) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	db, isReplica := c.reader(ctx)

	start := time.Now()
	rows, queryErr := db.Query(ctx, query, args...)
	duration := time.Since(start)
	c.logQueryWithDuration(query, logActionQuery, duration,
		logAttrConsistency, queryable.GetConsistencyLevel(ctx).String(),
		logAttrReplica, isReplica)

	if queryErr != nil {
		c.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, query)

		return nil, duration, errors.Join(queryable.ErrQueryExecutionFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (c Client) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		c.logWarn(logMsgCloseRowsFailed, closeErr)
	}
}

// processRows scans all rows and shapes each of them into a QueryResult.
func (c Client) processRows(rows adapters.DBRows, asObject bool) ([]queryable.QueryResult, error) {
	columns, columnsErr := rows.Columns()
	if columnsErr != nil {
		c.logError(logMsgReadColumnsFailed, columnsErr)

		return nil, errors.Join(ErrReadingColumnsFailed, columnsErr)
	}

	plan := newRowPlan(columns)
	results := make([]queryable.QueryResult, 0)

	for rows.Next() {
		dests := plan.destinations()

		if scanErr := rows.Scan(dests...); scanErr != nil {
			c.logError(logMsgScanRowFailed, scanErr)

			return nil, errors.Join(ErrScanningDBRowFailed, scanErr)
		}

		result, shapeErr := plan.shape(dests, asObject)
		if shapeErr != nil {
			c.logError(logMsgShapeRowFailed, shapeErr)

			return nil, errors.Join(ErrBuildingQueryResultFailed, shapeErr)
		}

		if result == nil {
			continue
		}

		results = append(results, result)
	}

	// the engine reports failures that happen while streaming rows only here
	if iterErr := rows.Err(); iterErr != nil {
		c.logError(logMsgIterateRowsFailed, iterErr)

		return nil, errors.Join(queryable.ErrQueryExecutionFailed, iterErr)
	}

	return results, nil
}
