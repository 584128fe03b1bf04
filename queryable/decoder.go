package queryable

import (
	"errors"
	"fmt"
)

// ErrBuildingTypedValueFailed is returned when a registered decode function rejects a decoded Record.
var ErrBuildingTypedValueFailed = errors.New("building typed value from record failed")

// Decoder binds a per-type decode function to the Schema that describes the type.
//
// It is the explicit, reflection-free counterpart of a derived decoder:
// the Schema validates the shape and the function copies the Record into the Go type.
type Decoder[T any] struct {
	schema     Schema
	fromRecord func(Record) (T, error)
	opts       []DecodeOption
}

// NewDecoder registers fromRecord for schema.
func NewDecoder[T any](schema Schema, fromRecord func(Record) (T, error)) Decoder[T] {
	return Decoder[T]{
		schema:     schema,
		fromRecord: fromRecord,
	}
}

// WithOptions returns a copy of the decoder that applies opts to every object decode,
// e.g. WithStrictShape for types that depend on the field order of the query.
func (d Decoder[T]) WithOptions(opts ...DecodeOption) Decoder[T] {
	d.opts = append(append([]DecodeOption{}, d.opts...), opts...)

	return d
}

// Schema returns the schema the decoder validates against.
func (d Decoder[T]) Schema() Schema {
	return d.schema
}

// Decode decodes an Object result into T.
func (d Decoder[T]) Decode(result QueryResult, opts ...DecodeOption) (T, error) {
	var zero T

	record, err := DecodeObject(result, d.schema, append(append([]DecodeOption{}, d.opts...), opts...)...)
	if err != nil {
		return zero, err
	}

	return d.build(record)
}

// DecodeJSON decodes json text into T.
func (d Decoder[T]) DecodeJSON(text []byte) (T, error) {
	var zero T

	record, err := DecodeTyped(text, d.schema)
	if err != nil {
		return zero, err
	}

	return d.build(record)
}

// DecodeAll decodes a set of Object results, stopping at the first failure.
func (d Decoder[T]) DecodeAll(results []QueryResult, opts ...DecodeOption) ([]T, error) {
	values := make([]T, 0, len(results))

	for i, result := range results {
		value, err := d.Decode(result, opts...)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}

		values = append(values, value)
	}

	return values, nil
}

func (d Decoder[T]) build(record Record) (T, error) {
	value, err := d.fromRecord(record)
	if err != nil {
		var zero T
		return zero, errors.Join(ErrBuildingTypedValueFailed, err)
	}

	return value, nil
}
