package queryable

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DecodeOption configures DecodeObject.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	strictShape bool
}

// WithStrictShape requires the object fields (after leading implicit fields) to match the schema
// exactly: same names, same order, same count. A deviation fails with ErrSchemaMismatch.
func WithStrictShape() DecodeOption {
	return func(o *decodeOptions) {
		o.strictShape = true
	}
}

// DecodeScalar returns the scalar if result is a Scalar of exactly the expected kind.
// There is no implicit widening: an int16 is not an int32, an int is not a float.
// Any other result, including nil, fails with ErrTypeMismatch.
func DecodeScalar(result QueryResult, expected ScalarKind) (Scalar, error) {
	scalar, ok := result.(Scalar)
	if !ok || scalar.kind != expected {
		return Scalar{}, fmt.Errorf("%w: expected scalar %s, got %s", ErrTypeMismatch, expected, variantName(result))
	}

	return scalar, nil
}

// DecodeString decodes a str scalar.
func DecodeString(result QueryResult) (string, error) {
	return decodeScalarAs[string](result, KindString)
}

// DecodeInt16 decodes an int16 scalar.
func DecodeInt16(result QueryResult) (int16, error) {
	return decodeScalarAs[int16](result, KindInt16)
}

// DecodeInt32 decodes an int32 scalar.
func DecodeInt32(result QueryResult) (int32, error) {
	return decodeScalarAs[int32](result, KindInt32)
}

// DecodeInt64 decodes an int64 scalar.
func DecodeInt64(result QueryResult) (int64, error) {
	return decodeScalarAs[int64](result, KindInt64)
}

// DecodeFloat64 decodes a float64 scalar.
func DecodeFloat64(result QueryResult) (float64, error) {
	return decodeScalarAs[float64](result, KindFloat64)
}

// DecodeBool decodes a bool scalar.
func DecodeBool(result QueryResult) (bool, error) {
	return decodeScalarAs[bool](result, KindBool)
}

// DecodeUUID decodes a uuid scalar.
func DecodeUUID(result QueryResult) (uuid.UUID, error) {
	return decodeScalarAs[uuid.UUID](result, KindUUID)
}

// DecodeDateTime decodes a datetime scalar.
func DecodeDateTime(result QueryResult) (time.Time, error) {
	return decodeScalarAs[time.Time](result, KindDateTime)
}

func decodeScalarAs[T any](result QueryResult, kind ScalarKind) (T, error) {
	var zero T

	scalar, err := DecodeScalar(result, kind)
	if err != nil {
		return zero, err
	}

	// the factory functions guarantee kind and Go type agree
	typed, _ := scalar.value.(T)

	return typed, nil
}

// DecodeObject decodes an Object into a Record of the given schema.
//
//   - a result that is not an Object fails with ErrUnexpectedVariant
//   - a required field that is absent or has no value fails with ErrMissingField
//   - a field with an incompatible type fails with ErrTypeMismatch
//
// Failures are reported as *FieldError naming the dotted path of the field.
// Fields not declared by the schema are ignored.
func DecodeObject(result QueryResult, schema Schema, opts ...DecodeOption) (Record, error) {
	options := decodeOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	return decodeObjectAt(result, schema, "", options)
}

func decodeObjectAt(result QueryResult, schema Schema, path string, options decodeOptions) (Record, error) {
	object, ok := result.(Object)
	if !ok {
		return Record{}, errors.Join(
			ErrUnexpectedVariant,
			fmt.Errorf("expected object %s at %q, got %s", schema.name, path, variantName(result)),
		)
	}

	if options.strictShape {
		if err := checkStrictShape(object, schema, path); err != nil {
			return Record{}, err
		}
	}

	record := newRecord(schema.name, len(schema.fields))

	for _, decl := range schema.fields {
		fieldPath := joinPath(path, decl.name)

		field, found := object.Lookup(decl.name)
		if !found || field.Value == nil {
			if decl.optional {
				continue
			}

			return Record{}, missingField(fieldPath)
		}

		value, err := decodeFieldValue(field.Value, decl, fieldPath, options)
		if err != nil {
			return Record{}, err
		}

		record.set(decl.name, value)
	}

	return record, nil
}

func decodeFieldValue(value QueryResult, decl FieldDecl, path string, options decodeOptions) (any, error) {
	if decl.link != nil {
		if _, ok := value.(Object); !ok {
			return nil, fieldTypeMismatch(path, decl.typeName(), variantName(value))
		}

		return decodeObjectAt(value, *decl.link, path, options)
	}

	scalar, ok := value.(Scalar)
	if !ok || scalar.kind != decl.kind {
		return nil, fieldTypeMismatch(path, decl.typeName(), variantName(value))
	}

	return scalar.value, nil
}

// checkStrictShape compares the explicit fields with the declaration, in order.
// Leading implicit fields (e.g. type name or id added by the engine) are skipped.
func checkStrictShape(object Object, schema Schema, path string) error {
	fields := object.fields

	for len(fields) > 0 && fields[0].Implicit {
		fields = fields[1:]
	}

	for i, decl := range schema.fields {
		if i >= len(fields) {
			break
		}

		if fields[i].Name != decl.name {
			return &FieldError{
				Path:   joinPath(path, decl.name),
				Kind:   ErrSchemaMismatch,
				Detail: fmt.Sprintf("wrong field: unexpected %s, expected %s", fields[i].Name, decl.name),
			}
		}
	}

	if len(fields) != len(schema.fields) {
		return errors.Join(ErrSchemaMismatch, fmt.Errorf(
			"object %s at %q: field number: got %d, expected %d", schema.name, path, len(fields), len(schema.fields),
		))
	}

	return nil
}

// DecodeJSON returns the raw text of a JSON result.
// Any other variant, including nil, fails with ErrUnexpectedVariant.
func DecodeJSON(result QueryResult) (json.RawMessage, error) {
	doc, ok := result.(JSON)
	if !ok {
		return nil, fmt.Errorf("%w: expected json, got %s", ErrUnexpectedVariant, variantName(result))
	}

	return doc.text, nil
}
