package queryable

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// DecodeTyped parses json text against a schema.
//
// Malformed text fails with ErrJSONParse. A document that does not conform to the schema
// (not an object, missing required key, wrong json type, integer out of range, bad uuid or datetime)
// fails with ErrSchemaMismatch, joined with a *FieldError that names the field.
// A json null for an optional field is "no value".
func DecodeTyped(text []byte, schema Schema) (Record, error) {
	if !isJSONDocument(text) {
		return Record{}, fmt.Errorf("%w: schema %s", ErrJSONParse, schema.name)
	}

	return decodeTypedAt(text, schema, "")
}

func decodeTypedAt(text []byte, schema Schema, path string) (Record, error) {
	if jsonTypeOf(text) != "object" {
		return Record{}, errors.Join(
			ErrSchemaMismatch,
			fmt.Errorf("expected object %s at %q, got json %s", schema.name, path, jsonTypeOf(text)),
		)
	}

	var members map[string]json.RawMessage
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(text, &members); err != nil {
		return Record{}, errors.Join(ErrSchemaMismatch, err)
	}

	record := newRecord(schema.name, len(schema.fields))

	for _, decl := range schema.fields {
		fieldPath := joinPath(path, decl.name)

		raw, found := members[decl.name]
		if !found || jsonTypeOf(raw) == "null" {
			if decl.optional {
				continue
			}

			return Record{}, errors.Join(ErrSchemaMismatch, missingField(fieldPath))
		}

		value, err := decodeTypedValue(raw, decl, fieldPath)
		if err != nil {
			return Record{}, err
		}

		record.set(decl.name, value)
	}

	return record, nil
}

func decodeTypedValue(raw json.RawMessage, decl FieldDecl, path string) (any, error) {
	if decl.link != nil {
		return decodeTypedAt(raw, *decl.link, path)
	}

	mismatch := func(detail string) error {
		fieldErr := fieldTypeMismatch(path, decl.typeName(), "json "+jsonTypeOf(raw))
		if detail != "" {
			fieldErr.Detail += ": " + detail
		}

		return errors.Join(ErrSchemaMismatch, fieldErr)
	}

	api := jsoniter.ConfigCompatibleWithStandardLibrary

	switch decl.kind {
	case KindString:
		var v string
		if err := api.Unmarshal(raw, &v); err != nil {
			return nil, mismatch("")
		}
		return v, nil

	case KindInt16, KindInt32, KindInt64:
		if jsonTypeOf(raw) != "number" {
			return nil, mismatch("")
		}

		var v int64
		if err := api.Unmarshal(raw, &v); err != nil {
			return nil, mismatch("not an integer")
		}

		return narrowInt(v, decl.kind, mismatch)

	case KindFloat64:
		if jsonTypeOf(raw) != "number" {
			return nil, mismatch("")
		}

		var v float64
		if err := api.Unmarshal(raw, &v); err != nil {
			return nil, mismatch(err.Error())
		}
		return v, nil

	case KindBool:
		var v bool
		if err := api.Unmarshal(raw, &v); err != nil {
			return nil, mismatch("")
		}
		return v, nil

	case KindUUID:
		var s string
		if err := api.Unmarshal(raw, &s); err != nil {
			return nil, mismatch("")
		}

		v, err := uuid.Parse(s)
		if err != nil {
			return nil, mismatch(err.Error())
		}
		return v, nil

	case KindDateTime:
		var s string
		if err := api.Unmarshal(raw, &s); err != nil {
			return nil, mismatch("")
		}

		v, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, mismatch(err.Error())
		}
		return v.UTC(), nil

	default:
		return nil, mismatch("unknown scalar kind")
	}
}

func narrowInt(v int64, kind ScalarKind, mismatch func(string) error) (any, error) {
	switch kind {
	case KindInt16:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return nil, mismatch(fmt.Sprintf("%d out of range", v))
		}
		return int16(v), nil

	case KindInt32:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, mismatch(fmt.Sprintf("%d out of range", v))
		}
		return int32(v), nil

	default:
		return v, nil
	}
}

// jsonTypeOf classifies already validated json text by its first significant byte.
func jsonTypeOf(text []byte) string {
	for _, c := range text {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return "object"
		case '[':
			return "array"
		case '"':
			return "string"
		case 't', 'f':
			return "bool"
		case 'n':
			return "null"
		default:
			return "number"
		}
	}

	return "empty"
}
