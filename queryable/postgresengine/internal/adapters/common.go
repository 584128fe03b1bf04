package adapters

import (
	"database/sql"
	"strings"
)

// stdRows wraps standard library sql.Rows to implement DBRows interface.
type stdRows struct {
	rows *sql.Rows
}

// Columns returns the column names with their database type names.
func (s *stdRows) Columns() ([]Column, error) {
	columnTypes, err := s.rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	columns := make([]Column, 0, len(columnTypes))
	for _, ct := range columnTypes {
		columns = append(columns, Column{
			Name:     ct.Name(),
			TypeName: strings.ToUpper(ct.DatabaseTypeName()),
		})
	}

	return columns, nil
}

// Next advances to the next row.
func (s *stdRows) Next() bool {
	return s.rows.Next()
}

// Scan copies row values into provided destinations.
func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

// Err returns the error, if any, that was encountered during iteration.
func (s *stdRows) Err() error {
	return s.rows.Err()
}

// Close closes the rows iterator.
func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement DBResult interface.
type stdResult struct {
	result sql.Result
}

// RowsAffected returns the number of rows affected by the command.
func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}
