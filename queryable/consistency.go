package queryable

import "context"

// ConsistencyLevel defines which database node a query client may read from.
type ConsistencyLevel int

const (
	// StrongConsistency requires reads from the primary database, so a client sees its own writes,
	// e.g. when it inserts an object and selects it back right away. This is the default.
	StrongConsistency ConsistencyLevel = iota

	// EventualConsistency allows reads from a replica database if one is configured.
	// Suitable for pure read queries that can tolerate slightly stale data.
	EventualConsistency
)

// contextKey is a private type to prevent context key collisions.
type contextKey string

// ConsistencyLevelKey is the context key used to store consistency level preferences.
const ConsistencyLevelKey contextKey = "queryable.consistency_level"

// WithStrongConsistency returns a context that makes query clients read from the primary database.
func WithStrongConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, StrongConsistency)
}

// WithEventualConsistency returns a context that allows query clients to read from a replica.
//
// Example usage:
//
//	ctx = queryable.WithEventualConsistency(ctx)
//	results, err := client.Query(ctx, "SELECT username, id FROM accounts")
func WithEventualConsistency(ctx context.Context) context.Context {
	return context.WithValue(ctx, ConsistencyLevelKey, EventualConsistency)
}

// GetConsistencyLevel extracts the consistency level from the context.
// If no consistency level is set, it returns StrongConsistency.
func GetConsistencyLevel(ctx context.Context) ConsistencyLevel {
	if level, ok := ctx.Value(ConsistencyLevelKey).(ConsistencyLevel); ok {
		return level
	}

	return StrongConsistency
}

// String provides a string representation of ConsistencyLevel for logging and debugging.
func (c ConsistencyLevel) String() string {
	switch c {
	case StrongConsistency:
		return "strong"
	case EventualConsistency:
		return "eventual"
	default:
		return "unknown"
	}
}
