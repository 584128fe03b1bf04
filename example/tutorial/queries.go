package tutorial

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // postgres dialect
	"github.com/google/uuid"

	"github.com/AntonStoeckl/queryable-go/example/shared/shell"
)

const (
	dialectPostgres = "postgres"
	aliasPost       = "p"
	aliasAuthor     = "a"
	aliasAccount    = "v"
	aliasInviter    = "i"
	cteInserted     = "inserted"
	castText        = "?::text"
	castInt2        = "?::int2"
	castInt4        = "?::int4"
)

var dialect = goqu.Dialect(dialectPostgres)

type sqlQuery struct {
	sql  string
	args []any
}

func toQuery(sql string, args []any, err error) (sqlQuery, error) {
	if err != nil {
		return sqlQuery{}, err
	}

	return sqlQuery{sql: sql, args: args}, nil
}

// buildSelectStringQuery selects a string literal without any arguments.
func buildSelectStringQuery(text string) (sqlQuery, error) {
	return toQuery(dialect.Select(goqu.V(text)).ToSQL())
}

// buildSelectTwoValuesQuery selects a string and a number literal, e.g. SELECT 'Hi' AS "greeting", 9.8 AS "number".
func buildSelectTwoValuesQuery(greeting string, number float64) (sqlQuery, error) {
	return toQuery(dialect.Select(
		goqu.V(greeting).As("greeting"),
		goqu.V(number).As("number"),
	).ToSQL())
}

// buildSelectArgumentsQuery selects two bound arguments.
func buildSelectArgumentsQuery(greeting string, number int32) (sqlQuery, error) {
	return toQuery(dialect.Select(
		goqu.L(castText, greeting).As("greeting"),
		goqu.L(castInt4, number).As("number"),
	).Prepared(true).ToSQL())
}

// buildSelectIsAStructQuery selects a free-standing shape.
func buildSelectIsAStructQuery(name string, number int16, isCool bool) (sqlQuery, error) {
	return toQuery(dialect.Select(
		goqu.V(name).As(shell.FieldName),
		goqu.L(castInt2, number).As(shell.FieldNumber),
		goqu.V(isCool).As(shell.FieldIsCool),
	).ToSQL())
}

func insertAccount(username string) *goqu.InsertDataset {
	return dialect.Insert(shell.TableAccounts).Rows(goqu.Record{shell.FieldUsername: username})
}

// buildInsertAccountQuery inserts an account and returns the given columns in the given order.
func buildInsertAccountQuery(username string, returning ...string) (sqlQuery, error) {
	return toQuery(insertAccount(username).Returning(columns(returning)...).Prepared(true).ToSQL())
}

// buildInsertInvitedAccountQuery inserts an account that was invited by inviterID and returns its id.
func buildInsertInvitedAccountQuery(username string, inviterID uuid.UUID) (sqlQuery, error) {
	return toQuery(dialect.Insert(shell.TableAccounts).
		Rows(goqu.Record{
			shell.FieldUsername: username,
			"inviter_id":        inviterID.String(),
		}).
		Returning(goqu.C(shell.FieldID)).
		Prepared(true).
		ToSQL())
}

// buildInsertAccountAsJSONQuery inserts an account and returns username and id as one json document.
func buildInsertAccountAsJSONQuery(username string) (sqlQuery, error) {
	insert := insertAccount(username).Returning(goqu.C(shell.FieldUsername), goqu.C(shell.FieldID))

	return toQuery(dialect.From(goqu.T(cteInserted)).
		With(cteInserted, insert).
		Select(goqu.L("to_json(?)", goqu.T(cteInserted))).
		Prepared(true).
		ToSQL())
}

// buildInsertPostQuery inserts a post and returns its id.
func buildInsertPostQuery(title string, likes int32, published bool, authorID uuid.UUID) (sqlQuery, error) {
	return toQuery(dialect.Insert(shell.TablePosts).
		Rows(goqu.Record{
			shell.FieldTitle:     title,
			shell.FieldLikes:     likes,
			shell.FieldPublished: published,
			"author_id":          authorID.String(),
		}).
		Returning(goqu.C(shell.FieldID)).
		Prepared(true).
		ToSQL())
}

// buildSelectPostQuery selects a post with its author as the nested "author" object.
func buildSelectPostQuery(postID uuid.UUID) (sqlQuery, error) {
	return toQuery(dialect.From(goqu.T(shell.TablePosts).As(aliasPost)).
		Join(
			goqu.T(shell.TableAccounts).As(aliasAuthor),
			goqu.On(goqu.T(aliasAuthor).Col(shell.FieldID).Eq(goqu.T(aliasPost).Col("author_id"))),
		).
		Select(
			goqu.T(aliasPost).Col(shell.FieldTitle),
			goqu.T(aliasPost).Col(shell.FieldLikes),
			goqu.T(aliasPost).Col(shell.FieldPublished),
			goqu.T(aliasAuthor).Col(shell.FieldUsername).As(nested(shell.FieldAuthor, shell.FieldUsername)),
			goqu.T(aliasAuthor).Col(shell.FieldID).As(nested(shell.FieldAuthor, shell.FieldID)),
		).
		Where(goqu.T(aliasPost).Col(shell.FieldID).Eq(postID.String())).
		Prepared(true).
		ToSQL())
}

// buildSelectAccountWithInviterQuery selects an account with its computed post count
// and its optional inviter as the nested "inviter" object.
func buildSelectAccountWithInviterQuery(accountID uuid.UUID) (sqlQuery, error) {
	return toQuery(dialect.From(goqu.T(shell.ViewAccountsWithPostCount).As(aliasAccount)).
		LeftJoin(
			goqu.T(shell.TableAccounts).As(aliasInviter),
			goqu.On(goqu.T(aliasInviter).Col(shell.FieldID).Eq(goqu.T(aliasAccount).Col("inviter_id"))),
		).
		Select(
			goqu.T(aliasAccount).Col(shell.FieldUsername),
			goqu.T(aliasAccount).Col(shell.FieldID),
			goqu.T(aliasInviter).Col(shell.FieldUsername).As(nested(shell.FieldInviter, shell.FieldUsername)),
			goqu.T(aliasInviter).Col(shell.FieldID).As(nested(shell.FieldInviter, shell.FieldID)),
			goqu.T(aliasAccount).Col(shell.FieldPostCount),
		).
		Where(goqu.T(aliasAccount).Col(shell.FieldID).Eq(accountID.String())).
		Prepared(true).
		ToSQL())
}

// buildCountAccountsQuery counts all accounts.
func buildCountAccountsQuery() (sqlQuery, error) {
	return toQuery(dialect.From(shell.TableAccounts).Select(goqu.COUNT(goqu.Star())).ToSQL())
}

// nested builds a dotted column alias, which the client turns into a nested object.
func nested(link, field string) goqu.Expression {
	return goqu.C(link + "." + field)
}

func columns(names []string) []any {
	cols := make([]any, 0, len(names))
	for _, name := range names {
		cols = append(cols, goqu.C(name))
	}

	return cols
}
