package queryable_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	. "github.com/AntonStoeckl/queryable-go/queryable" //nolint:revive
)

var (
	accountSchema = MustBuildSchema("Account",
		Required("username", KindString),
		Required("id", KindUUID),
	)

	postSchema = MustBuildSchema("Post",
		Required("title", KindString),
		Required("likes", KindInt32),
		Optional("published_at", KindDateTime),
		RequiredLink("author", accountSchema),
		OptionalLink("editor", accountSchema),
	)

	fixedID   = uuid.MustParse("0191e3c4-8a9b-7c2d-9e4f-1a2b3c4d5e6f")
	fixedTime = time.Date(2024, 9, 1, 12, 30, 15, 123456789, time.UTC)
)

func givenAccountObject(username string, id uuid.UUID) Object {
	return NewObject(
		F("username", Str(username)),
		F("id", UUID(id)),
	)
}

func mustBuildJSON(t *testing.T, text string) JSON {
	t.Helper()

	doc, err := BuildJSON([]byte(text))
	require.NoError(t, err)

	return doc
}
