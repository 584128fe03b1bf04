// Package tutorial walks through the query result mapping step by step against a live PostgreSQL database.
//
// Run issues a fixed sequence of queries: a string scalar, a row with two values, bound arguments,
// inserts that return an id, a shape and a json document, typed decoding of objects and json,
// a field order mismatch that strict decoding rejects, required and optional links,
// a computed post count, and a count read with eventual consistency.
// Every step prints what it got to the given writer.
package tutorial
