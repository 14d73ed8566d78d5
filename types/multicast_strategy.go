package types

import "context"

// MulticastStrategy assigns a target number of tasks per group across live
// instances.
//
// The leader calls Assign during every rebalance cycle, before the
// partition strategy folds the current partition-to-task mapping forward.
// Implementations should:
//   - Be deterministic given the same current assignment and instance list.
//   - Treat the current assignment as read-only; never mutate a Task it
//     received — superseded tasks are replaced by freshly minted records.
//   - Spread tasks so that, per group, no two eligible instances differ in
//     task count by more than the configured imbalance threshold.
type MulticastStrategy interface {
	// Assign computes the task-count-balanced assignment for groups given
	// the currently live instances and the assignment as of the start of
	// this rebalance cycle.
	//
	// Parameters:
	//   - ctx: context for cancellation.
	//   - current: the assignment as of the start of this rebalance.
	//   - liveInstances: the currently live worker instances, in any order.
	//   - groups: the datastream groups to compute task counts for.
	//
	// Returns:
	//   - Assignment: a new assignment with exactly the requested task
	//     count per group.
	//   - error: an AssignmentError on algorithmic failure.
	Assign(ctx context.Context, current Assignment, liveInstances []string, groups []DatastreamGroup) (Assignment, error)
}
