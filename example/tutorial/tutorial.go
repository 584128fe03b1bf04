package tutorial

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/queryable-go/example/shared/core"
	"github.com/AntonStoeckl/queryable-go/example/shared/shell"
	"github.com/AntonStoeckl/queryable-go/queryable"
	"github.com/AntonStoeckl/queryable-go/queryable/postgresengine"
)

const (
	stringQueryText  = "This is a query fetching a string"
	twoValueGreeting = "Hi"
	twoValueNumber   = 9.8
	argumentGreeting = "Hi there"
	argumentNumber   = int32(10)
	isAStructName    = "Ferris"
	isAStructNumber  = int16(7)
	postTitle        = "Queryable results in Go"
	postLikes        = int32(3)
)

var (
	// ErrStepFailed is returned when one step of the tutorial fails.
	ErrStepFailed = errors.New("tutorial step failed")

	// ErrUnexpectedResult is returned when a query returned something else than the tutorial expects.
	ErrUnexpectedResult = errors.New("unexpected query result")
)

// Option defines a functional option for configuring a tutorial run.
type Option func(*runner)

// WithUsernameGenerator replaces RandomUsername, e.g. for deterministic usernames in tests.
func WithUsernameGenerator(generate func() string) Option {
	return func(r *runner) {
		r.newUsername = generate
	}
}

type runner struct {
	client      postgresengine.Client
	out         io.Writer
	newUsername func() string
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Run executes all tutorial steps in order and stops at the first failure.
// The database schema must already be applied, see shell.ApplySchema.
func Run(ctx context.Context, client postgresengine.Client, out io.Writer, options ...Option) error {
	r := &runner{
		client:      client,
		out:         out,
		newUsername: RandomUsername,
	}

	for _, option := range options {
		option(r)
	}

	steps := []step{
		{"select a string", r.selectString},
		{"select two values", r.selectTwoValues},
		{"select with arguments", r.selectWithArguments},
		{"insert returning the id", r.insertReturningID},
		{"insert returning a shape", r.insertReturningShape},
		{"insert returning json", r.insertReturningJSON},
		{"decode an object", r.decodeObject},
		{"decode with the wrong field order", r.decodeWrongFieldOrder},
		{"decode a free-standing shape", r.decodeIsAStruct},
		{"follow links", r.followLinks},
		{"count with eventual consistency", r.countAccounts},
	}

	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			return errors.Join(ErrStepFailed, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	return nil
}

func (r *runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...) // output errors are not relevant for the tutorial
}

// selectString fetches a single string scalar.
func (r *runner) selectString(ctx context.Context) error {
	query, err := buildSelectStringQuery(stringQueryText)
	if err != nil {
		return err
	}

	result, err := r.client.QueryRequiredSingle(ctx, query.sql, query.args...)
	if err != nil {
		return err
	}

	text, err := queryable.DecodeString(result)
	if err != nil {
		return err
	}

	r.printf("Query result: `%s`\n\n", text)

	return nil
}

// selectTwoValues fetches a row with a string and a number and compares it with the expected object.
func (r *runner) selectTwoValues(ctx context.Context) error {
	query, err := buildSelectTwoValuesQuery(twoValueGreeting, twoValueNumber)
	if err != nil {
		return err
	}

	result, err := r.client.QueryRequiredSingle(ctx, query.sql, query.args...)
	if err != nil {
		return err
	}

	expected := queryable.NewObject(
		queryable.F("greeting", queryable.Str(twoValueGreeting)),
		queryable.F("number", queryable.Float64(twoValueNumber)),
	)

	if queryable.Format(result) != expected.String() {
		return fmt.Errorf("%w: got %s, expected %s", ErrUnexpectedResult, queryable.Format(result), expected)
	}

	r.printf("String and num query res: %s\n\n", queryable.Format(result))

	return nil
}

// selectWithArguments passes bound arguments into the query.
func (r *runner) selectWithArguments(ctx context.Context) error {
	query, err := buildSelectArgumentsQuery(argumentGreeting, argumentNumber)
	if err != nil {
		return err
	}

	result, err := r.client.QueryRequiredSingle(ctx, query.sql, query.args...)
	if err != nil {
		return err
	}

	r.printf("Result of query with arguments: %s\n\n", queryable.Format(result))

	return nil
}

// insertReturningID inserts an account and only gets its id back, as an object with a single field.
func (r *runner) insertReturningID(ctx context.Context) error {
	query, err := buildInsertAccountQuery(r.newUsername(), shell.FieldID)
	if err != nil {
		return err
	}

	object, err := r.client.QueryRequiredSingleObject(ctx, query.sql, query.args...)
	if err != nil {
		return err
	}

	r.printf("Value result, including the shape: %s\n\n", object)

	for _, field := range object.Fields() {
		id, idErr := queryable.DecodeUUID(field.Value)
		if idErr != nil {
			return errors.Join(ErrUnexpectedResult, idErr)
		}

		r.printf("Only returned one field, a uuid: %s\n\n", id)
	}

	return nil
}

// insertReturningShape inserts an account and iterates over the fields of the returned shape.
func (r *runner) insertReturningShape(ctx context.Context) error {
	query, err := buildInsertAccountQuery(r.newUsername(), shell.FieldUsername, shell.FieldID)
	if err != nil {
		return err
	}

	result, err := r.client.QueryRequiredSingle(ctx, query.sql, query.args...)
	if err != nil {
		return err
	}

	object, ok := result.(queryable.Object)
	if !ok {
		return fmt.Errorf("%w: expected an object, got %s", ErrUnexpectedResult, queryable.Format(result))
	}

	for _, field := range object.Fields() {
		r.printf("Got a field: %s = %s\n", field.Name, queryable.Format(field.Value))
	}
	r.printf("\n")

	return nil
}

// insertReturningJSON inserts an account and gets it back as a json document,
// which is read once generically and once decoded into a core.Account.
func (r *runner) insertReturningJSON(ctx context.Context) error {
	query, err := buildInsertAccountAsJSONQuery(r.newUsername())
	if err != nil {
		return err
	}

	text, err := r.client.QuerySingleJSON(ctx, query.sql, query.args...)
	if err != nil {
		return err
	}

	r.printf("Json res is pretty easy: %s\n\n", text)

	r.printf(
		"Username is %s,\nId is %s.\n\n",
		jsoniter.Get(text, shell.FieldUsername).ToString(),
		jsoniter.Get(text, shell.FieldID).ToString(),
	)

	account, err := shell.AccountFromJSON(text)
	if err != nil {
		return err
	}

	r.printf("Deserialized: %+v\n\n", account)

	return nil
}

// decodeObject decodes the returned object directly, without an intermediate json document.
func (r *runner) decodeObject(ctx context.Context) error {
	query, err := buildInsertAccountQuery(r.newUsername(), shell.FieldUsername, shell.FieldID)
	if err != nil {
		return err
	}

	account, err := postgresengine.QueryRequiredSingleAs(ctx, r.client, shell.StrictAccountDecoder, query.sql, query.args...)
	if err != nil {
		return err
	}

	r.printf("As Account, no need for intermediate json: %+v\n\n", account)

	return nil
}

// decodeWrongFieldOrder shows that strict decoding rejects `id, username` for a type declared as `username, id`.
func (r *runner) decodeWrongFieldOrder(ctx context.Context) error {
	query, err := buildInsertAccountQuery(r.newUsername(), shell.FieldID, shell.FieldUsername)
	if err != nil {
		return err
	}

	_, decodeErr := postgresengine.QueryRequiredSingleAs(ctx, r.client, shell.StrictAccountDecoder, query.sql, query.args...)
	if !errors.Is(decodeErr, queryable.ErrSchemaMismatch) {
		return fmt.Errorf("%w: expected a schema mismatch, got: %v", ErrUnexpectedResult, decodeErr)
	}

	r.printf("%v\n\n", decodeErr)

	return nil
}

// decodeIsAStruct decodes a shape that is not backed by a table.
func (r *runner) decodeIsAStruct(ctx context.Context) error {
	query, err := buildSelectIsAStructQuery(isAStructName, isAStructNumber, true)
	if err != nil {
		return err
	}

	isAStruct, err := postgresengine.QueryRequiredSingleAs(ctx, r.client, shell.IsAStructDecoder, query.sql, query.args...)
	if err != nil {
		return err
	}

	r.printf("As IsAStruct: %+v\n\n", isAStruct)

	return nil
}

// followLinks creates an inviter, an invited account and a post by the invited account,
// then reads the post with its required author link and both accounts with their optional inviter link.
func (r *runner) followLinks(ctx context.Context) error {
	inviterID, err := r.insertAccountID(ctx)
	if err != nil {
		return err
	}

	invitedID, err := r.insertInvitedAccountID(ctx, inviterID)
	if err != nil {
		return err
	}

	postQuery, err := buildInsertPostQuery(postTitle, postLikes, true, invitedID)
	if err != nil {
		return err
	}

	postIDResult, err := r.client.QueryRequiredSingle(ctx, postQuery.sql, postQuery.args...)
	if err != nil {
		return err
	}

	postID, err := queryable.DecodeUUID(postIDResult)
	if err != nil {
		return err
	}

	selectPost, err := buildSelectPostQuery(postID)
	if err != nil {
		return err
	}

	post, err := postgresengine.QueryRequiredSingleAs(ctx, r.client, shell.PostDecoder, selectPost.sql, selectPost.args...)
	if err != nil {
		return err
	}

	r.printf("Post with its author: %+v\n\n", post)

	for _, id := range []uuid.UUID{inviterID, invitedID} {
		account, accountErr := r.accountWithInviter(ctx, id)
		if accountErr != nil {
			return accountErr
		}

		r.printf("%s\n", describeAccount(account))
	}
	r.printf("\n")

	return nil
}

func (r *runner) insertAccountID(ctx context.Context) (uuid.UUID, error) {
	query, err := buildInsertAccountQuery(r.newUsername(), shell.FieldID)
	if err != nil {
		return uuid.Nil, err
	}

	result, err := r.client.QueryRequiredSingle(ctx, query.sql, query.args...)
	if err != nil {
		return uuid.Nil, err
	}

	return queryable.DecodeUUID(result)
}

func (r *runner) insertInvitedAccountID(ctx context.Context, inviterID uuid.UUID) (uuid.UUID, error) {
	query, err := buildInsertInvitedAccountQuery(r.newUsername(), inviterID)
	if err != nil {
		return uuid.Nil, err
	}

	result, err := r.client.QueryRequiredSingle(ctx, query.sql, query.args...)
	if err != nil {
		return uuid.Nil, err
	}

	return queryable.DecodeUUID(result)
}

func (r *runner) accountWithInviter(ctx context.Context, id uuid.UUID) (core.AccountWithInviter, error) {
	query, err := buildSelectAccountWithInviterQuery(id)
	if err != nil {
		return core.AccountWithInviter{}, err
	}

	return postgresengine.QueryRequiredSingleAs(ctx, r.client, shell.AccountWithInviterDecoder, query.sql, query.args...)
}

func describeAccount(account core.AccountWithInviter) string {
	if !account.HasInviter() {
		return fmt.Sprintf("%s has %d post(s) and was not invited", account.Username, account.PostCount)
	}

	return fmt.Sprintf("%s has %d post(s) and was invited by %s", account.Username, account.PostCount, account.Inviter.Username)
}

// countAccounts reads a count that may come from a replica, which is fine for a number that is shown only.
func (r *runner) countAccounts(ctx context.Context) error {
	query, err := buildCountAccountsQuery()
	if err != nil {
		return err
	}

	result, err := r.client.QueryRequiredSingle(queryable.WithEventualConsistency(ctx), query.sql, query.args...)
	if err != nil {
		return err
	}

	count, err := queryable.DecodeInt64(result)
	if err != nil {
		return err
	}

	r.printf("There are %d accounts now\n", count)

	return nil
}
