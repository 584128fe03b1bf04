// Package core contains the types of the tutorial domain: accounts that may invite each other
// and posts that are authored by accounts.
//
// The types are plain Go structs without any knowledge of the database or of query results.
// Mapping query results into these types happens in the shell package.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
