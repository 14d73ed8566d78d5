package types

import "context"

// Store is the orchestrator's view of the coordination store: the
// domain-level operations a rebalance cycle needs, independent of the
// underlying hierarchical store implementation (see internal/store for a
// ZooKeeper-backed adapter).
type Store interface {
	// ReadAssignment returns the assignment committed as of the most
	// recent successful rebalance.
	ReadAssignment(ctx context.Context) (Assignment, error)

	// WriteAssignment persists a newly computed assignment, replacing the
	// previously committed assignment in full.
	// Implementations should perform this as a single atomic operation
	// where the store supports it, or as an idempotent, replay-safe
	// sequence otherwise (task creations keyed by task name).
	WriteAssignment(ctx context.Context, assignment Assignment) error

	// RemoveTasks deletes the named tasks from each instance's node. It is
	// safe to call with tasks that no longer exist.
	RemoveTasks(ctx context.Context, removable map[string][]Task) error

	// ReadOperatorTarget returns the most recently written, not-yet-applied
	// operator move request for a group, if any.
	ReadOperatorTarget(ctx context.Context, connector, group string) (OperatorTargetAssignment, bool, error)

	// ClearOperatorTarget removes an applied operator move request so it
	// is not re-applied on the next rebalance.
	ClearOperatorTarget(ctx context.Context, connector, group string) error
}
