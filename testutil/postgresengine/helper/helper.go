package helper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/queryable-go/example/shared/core"
	"github.com/AntonStoeckl/queryable-go/queryable"
	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine"
)

// GivenUniqueUsername returns a username that no other test uses.
func GivenUniqueUsername(t testing.TB) string {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return core.UsernamePrefix + id.String()
}

// GivenAccount inserts an account with a unique username and returns its id and username.
func GivenAccount(t testing.TB, ctx context.Context, client postgresengine.Client) (uuid.UUID, string) {
	username := GivenUniqueUsername(t)

	result, err := client.QueryRequiredSingle(ctx, "INSERT INTO accounts (username) VALUES ($1) RETURNING id", username)
	require.NoError(t, err, "error in arranging test data")

	id, err := queryable.DecodeUUID(result)
	require.NoError(t, err, "error in arranging test data")

	return id, username
}

// GivenInvitedAccount inserts an account that was invited by inviterID and returns its id and username.
func GivenInvitedAccount(
	t testing.TB,
	ctx context.Context,
	client postgresengine.Client,
	inviterID uuid.UUID,
) (uuid.UUID, string) {

	username := GivenUniqueUsername(t)

	result, err := client.QueryRequiredSingle(
		ctx,
		"INSERT INTO accounts (username, inviter_id) VALUES ($1, $2) RETURNING id",
		username,
		inviterID.String(),
	)
	require.NoError(t, err, "error in arranging test data")

	id, err := queryable.DecodeUUID(result)
	require.NoError(t, err, "error in arranging test data")

	return id, username
}

// GivenPost inserts a published post by authorID and returns its id.
func GivenPost(t testing.TB, ctx context.Context, client postgresengine.Client, authorID uuid.UUID, title string, likes int32) uuid.UUID {
	result, err := client.QueryRequiredSingle(
		ctx,
		"INSERT INTO posts (title, likes, published, author_id) VALUES ($1, $2, true, $3) RETURNING id",
		title,
		likes,
		authorID.String(),
	)
	require.NoError(t, err, "error in arranging test data")

	id, err := queryable.DecodeUUID(result)
	require.NoError(t, err, "error in arranging test data")

	return id
}
