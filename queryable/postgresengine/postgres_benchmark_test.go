package postgresengine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/queryable-go/example/shared/shell"
	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine"
	"github.com/AntonStoeckl/queryable-go/testutil/postgresengine/helper"
	"github.com/AntonStoeckl/queryable-go/testutil/postgresengine/helper/postgreswrapper"
)

func Benchmark_QueryRequiredSingleAs_PostWithAuthor(b *testing.B) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(b)
	defer wrapper.Close()
	client := wrapper.GetClient()

	// arrange
	authorID, _ := helper.GivenAccount(b, ctx, client)
	postID := helper.GivenPost(b, ctx, client, authorID, "benchmarked", 1)
	query := `SELECT p.title, p.likes, p.published, a.username AS "author.username", a.id AS "author.id"
		 FROM posts p JOIN accounts a ON a.id = p.author_id
		 WHERE p.id = $1`

	// act
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := postgresengine.QueryRequiredSingleAs(ctx, client, shell.PostDecoder, query, postID.String())
		assert.NoError(b, err)
	}
}

func Benchmark_QuerySingleJSONAs_Account(b *testing.B) {
	// setup
	ctx := context.Background()
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(b)
	defer wrapper.Close()
	client := wrapper.GetClient()

	// arrange
	id, _ := helper.GivenAccount(b, ctx, client)
	query := "SELECT to_jsonb(a) FROM accounts a WHERE a.id = $1"

	// act
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := postgresengine.QuerySingleJSONAs(ctx, client, shell.AccountDecoder, query, id.String())
		assert.NoError(b, err)
	}
}
