package tutorial_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/queryable-go/example/tutorial"
	"github.com/AntonStoeckl/queryable-go/queryable"
	. "github.com/AntonStoeckl/queryable-go/testutil/postgresengine/helper"                 //nolint:revive
	. "github.com/AntonStoeckl/queryable-go/testutil/postgresengine/helper/postgreswrapper" //nolint:revive
)

func Test_Run_ExecutesAllSteps(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()

	out := bytes.Buffer{}

	// act
	err := tutorial.Run(ctxWithTimeout, wrapper.GetClient(), &out, tutorial.WithUsernameGenerator(func() string {
		return GivenUniqueUsername(t)
	}))

	// assert
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Query result: `This is a query fetching a string`")
	assert.Contains(t, output, `String and num query res: Object{greeting: str("Hi"), number: float64(9.8)}`)
	assert.Contains(t, output, `Result of query with arguments: Object{greeting: str("Hi there"), number: int32(10)}`)
	assert.Contains(t, output, "Only returned one field, a uuid: ")
	assert.Contains(t, output, "Got a field: username = ")
	assert.Contains(t, output, "Json res is pretty easy: ")
	assert.Contains(t, output, "As Account, no need for intermediate json: ")
	assert.Contains(t, output, "wrong field: unexpected id, expected username")
	assert.Contains(t, output, "As IsAStruct: {Name:Ferris Number:7 IsCool:true}")
	assert.Contains(t, output, "Post with its author: {Title:Queryable results in Go Likes:3 Published:true")
	assert.Contains(t, output, "has 0 post(s) and was not invited")
	assert.Contains(t, output, "has 1 post(s) and was invited by User_")
	assert.Contains(t, output, "There are ")
}

func Test_Run_When_AStepFails_NamesTheStep(t *testing.T) {
	// setup
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()

	// arrange
	_, takenUsername := GivenAccount(t, ctxWithTimeout, wrapper.GetClient())

	// act
	err := tutorial.Run(ctxWithTimeout, wrapper.GetClient(), &bytes.Buffer{}, tutorial.WithUsernameGenerator(func() string {
		return takenUsername
	}))

	// assert
	assert.ErrorIs(t, err, tutorial.ErrStepFailed)
	assert.ErrorIs(t, err, queryable.ErrQueryExecutionFailed)
	assert.ErrorContains(t, err, "insert returning the id: ")
	assert.False(t, errors.Is(err, tutorial.ErrUnexpectedResult))
}
