package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine/internal/adapters"
)

var errFakeDB = errors.New("fake db failure")

// fakeDB is an in-memory adapters.DBAdapter that serves canned rows.
type fakeDB struct {
	columns      []adapters.Column
	rows         [][]any
	queryErr     error
	columnsErr   error
	scanErr      error
	iterErr      error
	closeErr     error
	execErr      error
	rowsAffected int64
	affectedErr  error

	queries    []string
	statements []string
}

func (f *fakeDB) Query(_ context.Context, query string, _ ...any) (adapters.DBRows, error) {
	f.queries = append(f.queries, query)

	if f.queryErr != nil {
		return nil, f.queryErr
	}

	return &fakeRows{db: f, index: -1}, nil
}

func (f *fakeDB) Exec(_ context.Context, statement string, _ ...any) (adapters.DBResult, error) {
	f.statements = append(f.statements, statement)

	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult{rowsAffected: f.rowsAffected, err: f.affectedErr}, nil
}

type fakeRows struct {
	db    *fakeDB
	index int
}

func (r *fakeRows) Columns() ([]adapters.Column, error) {
	return r.db.columns, r.db.columnsErr
}

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.db.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.db.scanErr != nil {
		return r.db.scanErr
	}

	row := r.db.rows[r.index]
	if len(row) != len(dest) {
		return fmt.Errorf("fake scan: got %d destinations for %d values", len(dest), len(row))
	}

	for i, value := range row {
		if err := assign(dest[i], value); err != nil {
			return err
		}
	}

	return nil
}

func (r *fakeRows) Err() error {
	return r.db.iterErr
}

func (r *fakeRows) Close() error {
	return r.db.closeErr
}

type fakeResult struct {
	rowsAffected int64
	err          error
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.rowsAffected, r.err
}

// assign mimics a driver writing a column value into a nullable scan destination.
func assign(dest any, value any) error {
	switch d := dest.(type) {
	case **string:
		return assignPointer(d, value)
	case **int16:
		return assignPointer(d, value)
	case **int32:
		return assignPointer(d, value)
	case **int64:
		return assignPointer(d, value)
	case **float64:
		return assignPointer(d, value)
	case **bool:
		return assignPointer(d, value)
	case **time.Time:
		return assignPointer(d, value)
	case *[]byte:
		if value == nil {
			*d = nil
			return nil
		}

		text, ok := value.(string)
		if !ok {
			return fmt.Errorf("fake scan: cannot assign %T to json", value)
		}

		*d = []byte(text)

		return nil
	case *any:
		*d = value
		return nil
	default:
		return fmt.Errorf("fake scan: unsupported destination %T", dest)
	}
}

func assignPointer[T any](dest **T, value any) error {
	if value == nil {
		*dest = nil
		return nil
	}

	typed, ok := value.(T)
	if !ok {
		return fmt.Errorf("fake scan: cannot assign %T to %T", value, dest)
	}

	*dest = &typed

	return nil
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

// recordingLogger captures log calls in memory.
type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }

func (l *recordingLogger) record(level, msg string, args []any) {
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}

// find returns the first entry with the given level and message.
func (l *recordingLogger) find(level, msg string) (logEntry, bool) {
	for _, entry := range l.entries {
		if entry.level == level && entry.msg == msg {
			return entry, true
		}
	}

	return logEntry{}, false
}

// attr returns the value logged for key.
func (e logEntry) attr(key string) (any, bool) {
	for i := 0; i+1 < len(e.args); i += 2 {
		if e.args[i] == key {
			return e.args[i+1], true
		}
	}

	return nil, false
}

func col(name, typeName string) adapters.Column {
	return adapters.Column{Name: name, TypeName: typeName}
}

func newFakeClient(primary *fakeDB, options ...Option) (Client, error) {
	return newClient(primary, options)
}

func withFakeReplica(replica *fakeDB) Option {
	return func(c *Client) error {
		c.replica = replica
		return nil
	}
}
