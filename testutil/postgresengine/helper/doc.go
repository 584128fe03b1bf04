// Package helper provides testing utilities and log handlers for the PostgreSQL query client tests.
//
// This package contains shared testing infrastructure including a log handler spy
// for capturing and validating log output during tests, and given-helpers that arrange
// test data in the tutorial schema.
package helper
