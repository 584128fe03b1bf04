package queryable_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/AntonStoeckl/queryable-go/queryable" //nolint:revive
)

type account struct {
	Username string
	ID       uuid.UUID
}

var errBlockedUsername = errors.New("blocked username")

func accountFromRecord(record Record) (account, error) {
	username, usernameErr := record.String("username")
	id, idErr := record.UUID("id")

	if err := errors.Join(usernameErr, idErr); err != nil {
		return account{}, err
	}

	if username == "blocked" {
		return account{}, errBlockedUsername
	}

	return account{Username: username, ID: id}, nil
}

var accountDecoder = NewDecoder(accountSchema, accountFromRecord)

func Test_Decoder_Decode(t *testing.T) {
	// act
	decoded, err := accountDecoder.Decode(givenAccountObject("alice", fixedID))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, account{Username: "alice", ID: fixedID}, decoded)
	assert.Equal(t, "Account", accountDecoder.Schema().Name())
}

func Test_Decoder_Decode_When_ObjectDoesNotConform_ReturnsTheDecodeError(t *testing.T) {
	// act
	_, err := accountDecoder.Decode(NewObject(F("username", Str("alice"))))

	// assert
	assert.ErrorIs(t, err, ErrMissingField)
	assert.NotErrorIs(t, err, ErrBuildingTypedValueFailed)
}

func Test_Decoder_Decode_When_BuildFunctionRejectsTheRecord_FailsWithBuildingTypedValue(t *testing.T) {
	// act
	_, err := accountDecoder.Decode(givenAccountObject("blocked", fixedID))

	// assert
	assert.ErrorIs(t, err, ErrBuildingTypedValueFailed)
	assert.ErrorIs(t, err, errBlockedUsername)
}

func Test_Decoder_WithOptions_AppliesThemToEveryDecode(t *testing.T) {
	// arrange
	reordered := NewObject(F("id", UUID(fixedID)), F("username", Str("alice")))
	strictDecoder := accountDecoder.WithOptions(WithStrictShape())

	// act
	_, lenientErr := accountDecoder.Decode(reordered)
	_, strictErr := strictDecoder.Decode(reordered)

	// assert
	assert.NoError(t, lenientErr, "the original decoder must not be changed")
	assert.ErrorIs(t, strictErr, ErrSchemaMismatch)
}

func Test_Decoder_Decode_AcceptsPerCallOptions(t *testing.T) {
	// arrange
	reordered := NewObject(F("id", UUID(fixedID)), F("username", Str("alice")))

	// act
	_, err := accountDecoder.Decode(reordered, WithStrictShape())

	// assert
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func Test_Decoder_DecodeJSON(t *testing.T) {
	// act
	decoded, err := accountDecoder.DecodeJSON([]byte(`{"username": "alice", "id": "` + fixedID.String() + `"}`))
	_, parseErr := accountDecoder.DecodeJSON([]byte(`{"username": `))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, account{Username: "alice", ID: fixedID}, decoded)
	assert.ErrorIs(t, parseErr, ErrJSONParse)
}

func Test_Decoder_DecodeAll(t *testing.T) {
	// arrange
	bobID := uuid.New()
	results := []QueryResult{
		givenAccountObject("alice", fixedID),
		givenAccountObject("bob", bobID),
	}

	// act
	decoded, err := accountDecoder.DecodeAll(results)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []account{{Username: "alice", ID: fixedID}, {Username: "bob", ID: bobID}}, decoded)
}

func Test_Decoder_DecodeAll_When_OneResultFails_NamesItsIndex(t *testing.T) {
	// arrange
	results := []QueryResult{
		givenAccountObject("alice", fixedID),
		Str("bob"),
	}

	// act
	decoded, err := accountDecoder.DecodeAll(results)

	// assert
	assert.Nil(t, decoded)
	assert.ErrorIs(t, err, ErrUnexpectedVariant)
	assert.ErrorContains(t, err, "result 1: ")
}

func Test_Decoder_DecodeAll_When_NoResults_ReturnsEmptySlice(t *testing.T) {
	// act
	decoded, err := accountDecoder.DecodeAll(nil)

	// assert
	assert.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}
