package shell

import (
	"errors"

	"github.com/AntonStoeckl/queryable-go/example/shared/core"
	"github.com/AntonStoeckl/queryable-go/queryable"
)

var (
	// AccountDecoder decodes core.Account from objects and json documents.
	AccountDecoder = queryable.NewDecoder(AccountSchema, accountFromRecord)

	// StrictAccountDecoder decodes core.Account only if the object fields are exactly username, id, in this order.
	StrictAccountDecoder = AccountDecoder.WithOptions(queryable.WithStrictShape())

	// AccountWithInviterDecoder decodes core.AccountWithInviter.
	AccountWithInviterDecoder = queryable.NewDecoder(AccountWithInviterSchema, accountWithInviterFromRecord)

	// PostDecoder decodes core.Post.
	PostDecoder = queryable.NewDecoder(PostSchema, postFromRecord)

	// IsAStructDecoder decodes core.IsAStruct, which depends on the field order like StrictAccountDecoder.
	IsAStructDecoder = queryable.NewDecoder(IsAStructSchema, isAStructFromRecord).WithOptions(queryable.WithStrictShape())
)

// AccountFrom decodes an object result into a core.Account.
func AccountFrom(result queryable.QueryResult) (core.Account, error) {
	return AccountDecoder.Decode(result)
}

// AccountFromJSON decodes a json document into a core.Account.
func AccountFromJSON(text []byte) (core.Account, error) {
	return AccountDecoder.DecodeJSON(text)
}

// AccountsFrom decodes a set of object results into core.Account values.
func AccountsFrom(results []queryable.QueryResult) ([]core.Account, error) {
	return AccountDecoder.DecodeAll(results)
}

// AccountWithInviterFrom decodes an object result into a core.AccountWithInviter.
func AccountWithInviterFrom(result queryable.QueryResult) (core.AccountWithInviter, error) {
	return AccountWithInviterDecoder.Decode(result)
}

// PostFrom decodes an object result into a core.Post.
func PostFrom(result queryable.QueryResult) (core.Post, error) {
	return PostDecoder.Decode(result)
}

// IsAStructFrom decodes an object result into a core.IsAStruct.
func IsAStructFrom(result queryable.QueryResult) (core.IsAStruct, error) {
	return IsAStructDecoder.Decode(result)
}

func accountFromRecord(record queryable.Record) (core.Account, error) {
	username, usernameErr := record.String(FieldUsername)
	id, idErr := record.UUID(FieldID)

	if err := errors.Join(usernameErr, idErr); err != nil {
		return core.Account{}, err
	}

	return core.Account{
		Username: username,
		ID:       id,
	}, nil
}

func accountWithInviterFromRecord(record queryable.Record) (core.AccountWithInviter, error) {
	username, usernameErr := record.String(FieldUsername)
	id, idErr := record.UUID(FieldID)
	postCount, postCountErr := record.Int32(FieldPostCount)
	inviterRecord, hasInviter, inviterErr := record.OptionalRecord(FieldInviter)

	if err := errors.Join(usernameErr, idErr, postCountErr, inviterErr); err != nil {
		return core.AccountWithInviter{}, err
	}

	account := core.AccountWithInviter{
		Username:  username,
		ID:        id,
		PostCount: postCount,
	}

	if hasInviter {
		inviter, err := accountFromRecord(inviterRecord)
		if err != nil {
			return core.AccountWithInviter{}, err
		}

		account.Inviter = &inviter
	}

	return account, nil
}

func postFromRecord(record queryable.Record) (core.Post, error) {
	title, titleErr := record.String(FieldTitle)
	likes, likesErr := record.Int32(FieldLikes)
	published, publishedErr := record.Bool(FieldPublished)
	authorRecord, authorErr := record.Record(FieldAuthor)

	if err := errors.Join(titleErr, likesErr, publishedErr, authorErr); err != nil {
		return core.Post{}, err
	}

	author, err := accountFromRecord(authorRecord)
	if err != nil {
		return core.Post{}, err
	}

	return core.Post{
		Title:     title,
		Likes:     likes,
		Published: published,
		Author:    author,
	}, nil
}

func isAStructFromRecord(record queryable.Record) (core.IsAStruct, error) {
	name, nameErr := record.String(FieldName)
	number, numberErr := record.Int16(FieldNumber)
	isCool, isCoolErr := record.Bool(FieldIsCool)

	if err := errors.Join(nameErr, numberErr, isCoolErr); err != nil {
		return core.IsAStruct{}, err
	}

	return core.IsAStruct{
		Name:   name,
		Number: number,
		IsCool: isCool,
	}, nil
}
