// Package shell maps query results into the core types of the tutorial and owns the database schema.
//
// Every core type has a queryable.Schema that declares its fields and a registered
// queryable.Decoder that copies a decoded Record into the Go struct. Objects are decoded
// with AccountFrom, PostFrom, etc., json documents with AccountFromJSON.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
