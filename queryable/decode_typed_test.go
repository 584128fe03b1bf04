package queryable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/AntonStoeckl/queryable-go/queryable" //nolint:revive
)

func Test_DecodeTyped_When_DocumentConforms_ReturnsRecord(t *testing.T) {
	// arrange
	text := []byte(`{
		"title": "Hello",
		"likes": 3,
		"published_at": null,
		"unknown": [1, 2, 3],
		"author": {"username": "alice", "id": "0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f"}
	}`)

	// act
	record, err := DecodeTyped(text, postSchema)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "likes", "author"}, record.Names())

	likes, err := record.Int32("likes")
	assert.NoError(t, err)
	assert.Equal(t, int32(3), likes)

	author, err := record.Record("author")
	require.NoError(t, err)
	authorID, err := author.UUID("id")
	assert.NoError(t, err)
	assert.Equal(t, fixedID, authorID)

	_, hasEditor, err := record.OptionalRecord("editor")
	assert.NoError(t, err)
	assert.False(t, hasEditor)
}

func Test_DecodeTyped_When_TextIsMalformed_FailsWithJSONParse(t *testing.T) {
	for _, text := range []string{
		``,
		`{`,
		`{"username": }`,
		`not json`,
		`{"username":"a"} garbage`,
		`{"username":"a"}}`,
		`{"username":"a"}[`,
	} {
		// act
		_, err := DecodeTyped([]byte(text), accountSchema)

		// assert
		assert.ErrorIs(t, err, ErrJSONParse, "text: %q", text)
		assert.NotErrorIs(t, err, ErrSchemaMismatch)
	}
}

func Test_DecodeTyped_When_DocumentDoesNotConform_FailsWithSchemaMismatch(t *testing.T) {
	tests := []struct {
		name         string
		schema       Schema
		text         string
		expectedKind error
		expectedPath string
	}{
		{
			name:   "not an object",
			schema: accountSchema,
			text:   `["alice"]`,
		},
		{
			name:         "missing required key",
			schema:       accountSchema,
			text:         `{"id": "0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f"}`,
			expectedKind: ErrMissingField,
			expectedPath: "username",
		},
		{
			name:         "null required key",
			schema:       accountSchema,
			text:         `{"username": null, "id": "0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f"}`,
			expectedKind: ErrMissingField,
			expectedPath: "username",
		},
		{
			name:         "number instead of string",
			schema:       accountSchema,
			text:         `{"username": 1, "id": "0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f"}`,
			expectedKind: ErrTypeMismatch,
			expectedPath: "username",
		},
		{
			name:         "malformed uuid",
			schema:       accountSchema,
			text:         `{"username": "alice", "id": "not-a-uuid"}`,
			expectedKind: ErrTypeMismatch,
			expectedPath: "id",
		},
		{
			name:         "string instead of integer",
			schema:       postSchema,
			text:         `{"title": "Hello", "likes": "3", "author": {"username": "a", "id": "0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f"}}`,
			expectedKind: ErrTypeMismatch,
			expectedPath: "likes",
		},
		{
			name:         "integer out of range",
			schema:       postSchema,
			text:         `{"title": "Hello", "likes": 3000000000, "author": {"username": "a", "id": "0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f"}}`,
			expectedKind: ErrTypeMismatch,
			expectedPath: "likes",
		},
		{
			name:         "fraction instead of integer",
			schema:       postSchema,
			text:         `{"title": "Hello", "likes": 3.5, "author": {"username": "a", "id": "0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f"}}`,
			expectedKind: ErrTypeMismatch,
			expectedPath: "likes",
		},
		{
			name:         "malformed datetime",
			schema:       postSchema,
			text:         `{"title": "Hello", "likes": 3, "published_at": "yesterday", "author": {"username": "a", "id": "0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f"}}`,
			expectedKind: ErrTypeMismatch,
			expectedPath: "published_at",
		},
		{
			name:         "nested missing key",
			schema:       postSchema,
			text:         `{"title": "Hello", "likes": 3, "author": {"id": "0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f"}}`,
			expectedKind: ErrMissingField,
			expectedPath: "author.username",
		},
		{
			name:   "link is not an object",
			schema: postSchema,
			text:   `{"title": "Hello", "likes": 3, "author": "alice"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			_, err := DecodeTyped([]byte(tt.text), tt.schema)

			// assert
			assert.ErrorIs(t, err, ErrSchemaMismatch)
			assert.NotErrorIs(t, err, ErrJSONParse)

			if tt.expectedKind == nil {
				return
			}

			assert.ErrorIs(t, err, tt.expectedKind)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.expectedPath, fieldErr.Path)
		})
	}
}

func Test_DecodeTyped_RoundTripsMarshaledRecords(t *testing.T) {
	// arrange
	original := givenPostRecord(t)

	encoded, err := original.MarshalJSON()
	require.NoError(t, err)

	// act
	decoded, err := DecodeTyped(encoded, postSchema)

	// assert
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func Test_DecodeTyped_NarrowsIntegersToTheDeclaredKind(t *testing.T) {
	// arrange
	schema := MustBuildSchema("Numbers",
		Required("small", KindInt16),
		Required("big", KindInt64),
		Required("ratio", KindFloat64),
		Required("flag", KindBool),
	)

	// act
	record, err := DecodeTyped([]byte(`{"small": -32768, "big": 9007199254740993, "ratio": 2, "flag": true}`), schema)

	// assert
	require.NoError(t, err)

	small, err := record.Int16("small")
	assert.NoError(t, err)
	assert.Equal(t, int16(-32768), small)

	big, err := record.Int64("big")
	assert.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), big)

	ratio, err := record.Float64("ratio")
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, ratio, 0)

	flag, err := record.Bool("flag")
	assert.NoError(t, err)
	assert.True(t, flag)
}
