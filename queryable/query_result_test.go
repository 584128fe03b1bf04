package queryable_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/AntonStoeckl/queryable-go/queryable" //nolint:revive
)

func Test_QueryResult_Variants(t *testing.T) {
	tests := []struct {
		name     string
		result   QueryResult
		expected Variant
	}{
		{name: "scalar", result: Str("Hi"), expected: VariantScalar},
		{name: "object", result: NewObject(), expected: VariantObject},
		{name: "json", result: mustBuildJSON(t, `{}`), expected: VariantJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.Variant())
			assert.Equal(t, tt.name, tt.result.Variant().String())
		})
	}
}

func Test_BuildJSON_When_TextIsValid_KeepsItVerbatim(t *testing.T) {
	for _, text := range []string{`{"a": 1}`, `[1, 2]`, `"text"`, `42`, `null`, `true`} {
		// act
		doc, err := BuildJSON([]byte(text))

		// assert
		assert.NoError(t, err)
		assert.Equal(t, text, string(doc.Text()))
	}
}

func Test_BuildJSON_When_TextIsInvalid_FailsWithInvalidJSON(t *testing.T) {
	for _, text := range []string{``, `{`, `{"a":}`, `nope`, `{"a":1} garbage`, `{"a":1}}`, `{"a":1}[`, `1 2`} {
		// act
		_, err := BuildJSON([]byte(text))

		// assert
		assert.ErrorIs(t, err, ErrInvalidJSON, "text: %q", text)
	}
}

func Test_BuildJSON_When_TextIsSurroundedByWhitespace_AcceptsIt(t *testing.T) {
	// act
	doc, err := BuildJSON([]byte(" {\"a\": 1}\n"))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, " {\"a\": 1}\n", string(doc.Text()))
}

func Test_DateTime_NormalizesToUTC(t *testing.T) {
	// arrange
	local := time.Date(2024, 9, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	// act
	scalar := DateTime(local)

	// assert
	value, ok := scalar.Value().(time.Time)
	assert.True(t, ok)
	assert.Equal(t, time.UTC, value.Location())
	assert.True(t, local.Equal(value))
}

func Test_Object_Lookup(t *testing.T) {
	// arrange
	object := NewObject(
		Implicit("__tname__", Str("default::Account")),
		F("username", Str("alice")),
		F("inviter", nil),
	)

	// act
	username, foundUsername := object.Lookup("username")
	inviter, foundInviter := object.Lookup("inviter")
	_, foundMissing := object.Lookup("id")

	// assert
	assert.True(t, foundUsername)
	assert.Equal(t, Str("alice"), username.Value)
	assert.True(t, foundInviter)
	assert.Nil(t, inviter.Value)
	assert.False(t, foundMissing)
	assert.Len(t, object.Fields(), 3)
	assert.True(t, object.Fields()[0].Implicit)
}

func Test_ScalarKind_String(t *testing.T) {
	assert.Equal(t, "str", KindString.String())
	assert.Equal(t, "int16", KindInt16.String())
	assert.Equal(t, "int32", KindInt32.String())
	assert.Equal(t, "int64", KindInt64.String())
	assert.Equal(t, "float64", KindFloat64.String())
	assert.Equal(t, "bool", KindBool.String())
	assert.Equal(t, "uuid", KindUUID.String())
	assert.Equal(t, "datetime", KindDateTime.String())
	assert.Equal(t, "unknown", ScalarKind(99).String())
}
