package shell

import (
	"github.com/AntonStoeckl/queryable-go/queryable"
)

// Field names shared by the schemas, the SQL aliases and the json documents.
const (
	FieldUsername  = "username"
	FieldID        = "id"
	FieldInviter   = "inviter"
	FieldPostCount = "post_count"
	FieldTitle     = "title"
	FieldLikes     = "likes"
	FieldPublished = "published"
	FieldAuthor    = "author"
	FieldName      = "name"
	FieldNumber    = "number"
	FieldIsCool    = "is_cool"
)

var (
	// AccountSchema declares core.Account.
	AccountSchema = queryable.MustBuildSchema("Account",
		queryable.Required(FieldUsername, queryable.KindString),
		queryable.Required(FieldID, queryable.KindUUID),
	)

	// AccountWithInviterSchema declares core.AccountWithInviter, the inviter link is optional.
	AccountWithInviterSchema = queryable.MustBuildSchema("AccountWithInviter",
		queryable.Required(FieldUsername, queryable.KindString),
		queryable.Required(FieldID, queryable.KindUUID),
		queryable.OptionalLink(FieldInviter, AccountSchema),
		queryable.Required(FieldPostCount, queryable.KindInt32),
	)

	// PostSchema declares core.Post, the author link is required.
	PostSchema = queryable.MustBuildSchema("Post",
		queryable.Required(FieldTitle, queryable.KindString),
		queryable.Required(FieldLikes, queryable.KindInt32),
		queryable.Required(FieldPublished, queryable.KindBool),
		queryable.RequiredLink(FieldAuthor, AccountSchema),
	)

	// IsAStructSchema declares core.IsAStruct.
	IsAStructSchema = queryable.MustBuildSchema("IsAStruct",
		queryable.Required(FieldName, queryable.KindString),
		queryable.Required(FieldNumber, queryable.KindInt16),
		queryable.Required(FieldIsCool, queryable.KindBool),
	)
)
