package queryable

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// String renders the scalar as kind(value), e.g. str("Hi") or float64(9.8).
func (s Scalar) String() string {
	return s.kind.String() + "(" + formatScalarValue(s.value) + ")"
}

// String renders the object with its fields in result order, implicit fields are marked with @.
func (o Object) String() string {
	b := strings.Builder{}
	b.WriteString("Object{")

	for i, field := range o.fields {
		if i > 0 {
			b.WriteString(", ")
		}

		if field.Implicit {
			b.WriteString("@")
		}

		b.WriteString(field.Name)
		b.WriteString(": ")
		b.WriteString(Format(field.Value))
	}

	b.WriteString("}")

	return b.String()
}

// String renders the raw json text.
func (j JSON) String() string {
	return "JSON(" + string(j.text) + ")"
}

// Format renders any QueryResult, nil is rendered as "<no value>".
func Format(result QueryResult) string {
	switch r := result.(type) {
	case nil:
		return "<no value>"
	case Scalar:
		return r.String()
	case Object:
		return r.String()
	case JSON:
		return r.String()
	default:
		return "<" + variantName(result) + ">"
	}
}

func formatScalarValue(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case uuid.UUID:
		return v.String()
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return "?"
	}
}
