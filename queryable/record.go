package queryable

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// Record is a decoded value conforming to a Schema.
//
// Field values are Go-native: string, int16, int32, int64, float64, bool, uuid.UUID, time.Time, or a nested Record.
// Optional fields without a value are not stored; Has and Lookup report them as "no value".
type Record struct {
	schemaName string
	names      []string
	values     map[string]any
}

func newRecord(schemaName string, capacity int) Record {
	return Record{
		schemaName: schemaName,
		names:      make([]string, 0, capacity),
		values:     make(map[string]any, capacity),
	}
}

func (r *Record) set(name string, value any) {
	r.names = append(r.names, name)
	r.values[name] = value
}

// SchemaName returns the name of the schema the record was decoded with.
func (r Record) SchemaName() string {
	return r.schemaName
}

// Names returns the names of the fields holding a value, in schema order.
func (r Record) Names() []string {
	return r.names
}

// Has reports whether the field holds a value.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Lookup returns the value of a field, or false for "no value".
func (r Record) Lookup(name string) (any, bool) {
	value, ok := r.values[name]
	return value, ok
}

// String returns a str field.
func (r Record) String(name string) (string, error) {
	return recordValue[string](r, name, KindString.String())
}

// Int16 returns an int16 field.
func (r Record) Int16(name string) (int16, error) {
	return recordValue[int16](r, name, KindInt16.String())
}

// Int32 returns an int32 field.
func (r Record) Int32(name string) (int32, error) {
	return recordValue[int32](r, name, KindInt32.String())
}

// Int64 returns an int64 field.
func (r Record) Int64(name string) (int64, error) {
	return recordValue[int64](r, name, KindInt64.String())
}

// Float64 returns a float64 field.
func (r Record) Float64(name string) (float64, error) {
	return recordValue[float64](r, name, KindFloat64.String())
}

// Bool returns a bool field.
func (r Record) Bool(name string) (bool, error) {
	return recordValue[bool](r, name, KindBool.String())
}

// UUID returns a uuid field.
func (r Record) UUID(name string) (uuid.UUID, error) {
	return recordValue[uuid.UUID](r, name, KindUUID.String())
}

// DateTime returns a datetime field.
func (r Record) DateTime(name string) (time.Time, error) {
	return recordValue[time.Time](r, name, KindDateTime.String())
}

// Record returns a required link field.
func (r Record) Record(name string) (Record, error) {
	return recordValue[Record](r, name, "object")
}

// OptionalRecord returns an optional link field; ok is false when the link has no value.
func (r Record) OptionalRecord(name string) (linked Record, ok bool, err error) {
	if !r.Has(name) {
		return Record{}, false, nil
	}

	linked, err = r.Record(name)
	if err != nil {
		return Record{}, false, err
	}

	return linked, true, nil
}

func recordValue[T any](r Record, name string, expected string) (T, error) {
	var zero T

	value, ok := r.values[name]
	if !ok {
		return zero, missingField(name)
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fieldTypeMismatch(name, expected, fmt.Sprintf("%T", value))
	}

	return typed, nil
}

// MarshalJSON encodes the record as a json object in schema order.
// Absent optional fields are omitted, uuids are strings and datetimes are RFC 3339 with nanoseconds.
func (r Record) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigFastest.BorrowStream(nil)
	defer jsoniter.ConfigFastest.ReturnStream(stream)

	if err := r.writeTo(stream); err != nil {
		return nil, err
	}

	encoded := make([]byte, len(stream.Buffer()))
	copy(encoded, stream.Buffer())

	return encoded, nil
}

func (r Record) writeTo(stream *jsoniter.Stream) error {
	stream.WriteObjectStart()

	for i, name := range r.names {
		if i > 0 {
			stream.WriteMore()
		}

		stream.WriteObjectField(name)

		switch v := r.values[name].(type) {
		case string:
			stream.WriteString(v)
		case int16:
			stream.WriteInt16(v)
		case int32:
			stream.WriteInt32(v)
		case int64:
			stream.WriteInt64(v)
		case float64:
			stream.WriteFloat64(v)
		case bool:
			stream.WriteBool(v)
		case uuid.UUID:
			stream.WriteString(v.String())
		case time.Time:
			stream.WriteString(v.Format(time.RFC3339Nano))
		case Record:
			if err := v.writeTo(stream); err != nil {
				return err
			}
		default:
			return fieldTypeMismatch(name, "record value", fmt.Sprintf("%T", v))
		}
	}

	stream.WriteObjectEnd()

	return stream.Error
}
