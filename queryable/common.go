package queryable

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned when a value does not have the declared type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrMissingField is returned when a required field is absent or has no value.
	ErrMissingField = errors.New("missing required field")

	// ErrUnexpectedVariant is returned when a QueryResult is not of the expected variant.
	ErrUnexpectedVariant = errors.New("unexpected query result variant")

	// ErrJSONParse is returned when json text can not be parsed.
	ErrJSONParse = errors.New("json parse error")

	// ErrSchemaMismatch is returned when parsed json or a strict object shape does not conform to the schema.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrQueryExecutionFailed wraps errors reported by the external query engine.
	ErrQueryExecutionFailed = errors.New("query execution failed")

	// ErrNoResult is returned when a query that requires a result returned none.
	ErrNoResult = errors.New("query returned no result")

	// ErrTooManyResults is returned when a query that allows at most one result returned more.
	ErrTooManyResults = errors.New("query returned more than one result")

	// ErrNilDatabaseConnection is returned when a client is created without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrInvalidJSON is returned when a JSON query result is built from invalid json text.
	ErrInvalidJSON = errors.New("json text is not valid")

	// ErrInvalidSchema is returned when a schema declaration is malformed.
	ErrInvalidSchema = errors.New("invalid schema")
)

// FieldError reports which field of an object or json document failed to decode.
//
// Kind is one of the sentinel errors of this package, so errors.Is works through a FieldError.
type FieldError struct {
	Path   string // dotted path of the field, e.g. "author.username"
	Kind   error
	Detail string
}

func (e *FieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("field %q: %s", e.Path, e.Kind)
	}

	return fmt.Sprintf("field %q: %s: %s", e.Path, e.Kind, e.Detail)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func missingField(path string) *FieldError {
	return &FieldError{Path: path, Kind: ErrMissingField}
}

func fieldTypeMismatch(path string, expected string, actual string) *FieldError {
	return &FieldError{
		Path:   path,
		Kind:   ErrTypeMismatch,
		Detail: fmt.Sprintf("expected %s, got %s", expected, actual),
	}
}

func joinPath(parent string, name string) string {
	if parent == "" {
		return name
	}

	return parent + "." + name
}
