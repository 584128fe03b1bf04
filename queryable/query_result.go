package queryable

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// Variant names the three shapes a QueryResult can have.
type Variant int

const (
	VariantScalar Variant = iota
	VariantObject
	VariantJSON
)

// String provides a string representation of Variant for error messages and logging.
func (v Variant) String() string {
	switch v {
	case VariantScalar:
		return "scalar"
	case VariantObject:
		return "object"
	case VariantJSON:
		return "json"
	default:
		return "unknown"
	}
}

// QueryResult is a sealed interface for the responses of the external query engine.
// Only Scalar, Object and JSON implement it, so a type switch over these three is exhaustive.
type QueryResult interface {
	Variant() Variant
	queryResult() // sealed
}

/***** Scalar *****/

// ScalarKind is the declared runtime type of a Scalar.
type ScalarKind int

const (
	KindString ScalarKind = iota
	KindInt16
	KindInt32
	KindInt64
	KindFloat64
	KindBool
	KindUUID
	KindDateTime
)

// String returns the engine-side name of the kind.
func (k ScalarKind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindUUID:
		return "uuid"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Scalar is a primitive value together with its declared kind.
//
// It should only be constructed with the supplied factory functions (Str, Int16, ...),
// which guarantee that the kind matches the Go type of the value.
type Scalar struct {
	kind  ScalarKind
	value any
}

func (Scalar) queryResult() {}

// Variant returns VariantScalar.
func (Scalar) Variant() Variant {
	return VariantScalar
}

// Kind returns the declared kind of the scalar.
func (s Scalar) Kind() ScalarKind {
	return s.kind
}

// Value returns the Go value: string, int16, int32, int64, float64, bool, uuid.UUID or time.Time.
func (s Scalar) Value() any {
	return s.value
}

// Str builds a Scalar of KindString.
func Str(v string) Scalar {
	return Scalar{kind: KindString, value: v}
}

// Int16 builds a Scalar of KindInt16.
func Int16(v int16) Scalar {
	return Scalar{kind: KindInt16, value: v}
}

// Int32 builds a Scalar of KindInt32.
func Int32(v int32) Scalar {
	return Scalar{kind: KindInt32, value: v}
}

// Int64 builds a Scalar of KindInt64.
func Int64(v int64) Scalar {
	return Scalar{kind: KindInt64, value: v}
}

// Float64 builds a Scalar of KindFloat64.
func Float64(v float64) Scalar {
	return Scalar{kind: KindFloat64, value: v}
}

// Bool builds a Scalar of KindBool.
func Bool(v bool) Scalar {
	return Scalar{kind: KindBool, value: v}
}

// UUID builds a Scalar of KindUUID.
func UUID(v uuid.UUID) Scalar {
	return Scalar{kind: KindUUID, value: v}
}

// DateTime builds a Scalar of KindDateTime, normalized to UTC.
func DateTime(v time.Time) Scalar {
	return Scalar{kind: KindDateTime, value: v.UTC()}
}

/***** Object *****/

// Field is one named element of an Object.
//
// A nil Value means "no value": a NULL column, an empty optional link, or an empty set.
// Implicit fields are added by the engine (e.g. a type name) and were not asked for by the query.
type Field struct {
	Name     string
	Value    QueryResult
	Implicit bool
}

// F builds a Field, the shorthand used when constructing objects by hand.
func F(name string, value QueryResult) Field {
	return Field{Name: name, Value: value}
}

// Implicit builds an implicit Field.
func Implicit(name string, value QueryResult) Field {
	return Field{Name: name, Value: value, Implicit: true}
}

// Object is a record-like result with ordered, named fields.
type Object struct {
	fields []Field
}

func (Object) queryResult() {}

// Variant returns VariantObject.
func (Object) Variant() Variant {
	return VariantObject
}

// NewObject builds an Object from fields in the given order.
func NewObject(fields ...Field) Object {
	return Object{fields: fields}
}

// Fields returns the fields in result order.
func (o Object) Fields() []Field {
	return o.fields
}

// Lookup returns the field with exactly the given name.
func (o Object) Lookup(name string) (Field, bool) {
	for _, field := range o.fields {
		if field.Name == name {
			return field, true
		}
	}

	return Field{}, false
}

/***** JSON *****/

// JSON is a raw json document returned by the engine.
type JSON struct {
	text json.RawMessage
}

func (JSON) queryResult() {}

// Variant returns VariantJSON.
func (JSON) Variant() Variant {
	return VariantJSON
}

// BuildJSON is a factory method for JSON.
// Returns ErrInvalidJSON if text is not exactly one valid json value.
func BuildJSON(text []byte) (JSON, error) {
	if !isJSONDocument(text) {
		return JSON{}, ErrInvalidJSON
	}

	return JSON{text: json.RawMessage(text)}, nil
}

// Text returns the raw json text.
func (j JSON) Text() json.RawMessage {
	return j.text
}

// isJSONDocument reports whether text holds one json value, optionally surrounded by whitespace.
func isJSONDocument(text []byte) bool {
	if !jsoniter.ConfigFastest.Valid(text) {
		return false
	}

	// Valid only looks at the first value
	iter := jsoniter.ConfigFastest.BorrowIterator(text)
	defer jsoniter.ConfigFastest.ReturnIterator(iter)

	iter.Skip()
	if iter.Error != nil && iter.Error != io.EOF {
		return false
	}

	return iter.WhatIsNext() == jsoniter.InvalidValue && iter.Error == io.EOF
}

// variantName is used in error details and also covers a nil result.
// Pointers to the variants are not QueryResult variants and are named by their Go type.
func variantName(result QueryResult) string {
	switch r := result.(type) {
	case nil:
		return "no value"
	case Scalar:
		return "scalar " + r.kind.String()
	case Object:
		return VariantObject.String()
	case JSON:
		return VariantJSON.String()
	default:
		return fmt.Sprintf("unsupported %T", result)
	}
}
