// Package queryable provides the typed boundary between an external query engine and client code.
//
// A query engine answers with a QueryResult, which is one of three variants:
//   - Scalar: a single primitive value with a declared ScalarKind
//   - Object: an ordered set of named fields, possibly holding nested links
//   - JSON: a raw json document
//
// Client code declares the shape it expects with a Schema and decodes the QueryResult into a
// Record, or straight into a Go struct with a Decoder registered for that struct.
//
// Key types:
//   - QueryResult: the sealed union of Scalar, Object and JSON
//   - Schema: required and optional fields with their semantic types
//   - Record: the decoded, schema-conformant value
//   - Decoder: a per-type decode function bound to a Schema
//
// Common usage pattern:
//
//	accountSchema := queryable.MustBuildSchema("Account",
//		queryable.Required("username", queryable.KindString),
//		queryable.Required("id", queryable.KindUUID),
//	)
//
//	record, err := queryable.DecodeObject(result, accountSchema)
//	if err != nil {
//		// handle error, e.g. errors.Is(err, queryable.ErrMissingField)
//	}
//
//	username, _ := record.String("username")
//
// Every decode function is pure and synchronous, so decoding distinct results concurrently needs
// no locking.
package queryable
