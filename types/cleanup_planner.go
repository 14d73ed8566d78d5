package types

import "context"

// CleanupPlanner decides which predecessor tasks are safe to remove from
// the coordination store once a rebalance has committed its successor
// assignment.
//
// A task is removable iff it is named in the dependency set of some task
// that appears in the new assignment and the task itself no longer
// appears in the new assignment. This also covers the case where a prior
// leader crashed mid-commit and left intermediate tasks in the store: as
// long as a task in the next leader's committed assignment still names
// them as a dependency, that rebalance finds them removable. A task that
// nothing in the new assignment names is not returned.
type CleanupPlanner interface {
	// Plan returns, for each instance that formerly hosted at least one
	// now-removable task, the list of tasks safe to delete from that
	// instance's node in the coordination store.
	//
	// Parameters:
	//   - ctx: context for cancellation.
	//   - groups: the datastream groups participating in this rebalance.
	//   - previous: the assignment as of the start of the rebalance (used
	//     to find each removable task's former owning instance).
	//   - current: the newly committed assignment.
	Plan(ctx context.Context, groups []DatastreamGroup, previous, current Assignment) map[string][]Task
}
