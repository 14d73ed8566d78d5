package types

import "context"

// DroppedMove records an operator-requested partition move that
// MovePartitions could not honor because the partition had no confirmed
// source task: it is present in the snapshot but not owned by any task of
// the group. Partitions absent from the snapshot are ignored, not recorded.
type DroppedMove struct {
	Instance  string `json:"instance"`
	Partition string `json:"partition"`
	Reason    string `json:"reason"`
}

// PartitionStrategy distributes partitions across a group's tasks and
// executes operator-directed partition moves.
//
// Partition placement is this strategy's concern; it works on the tasks
// already present for the group. In this module task counts are settled
// beforehand by the Manager's MulticastStrategy, and StickyPartition does
// not call its MulticastStrategy to create or remove tasks.
type PartitionStrategy interface {
	// AssignPartitions distributes snapshot across the group's current
	// tasks, stickily: partitions already on a task stay there unless they
	// were dropped from the snapshot, and only the minimum number of tasks
	// needed to keep per-task load within target gets a successor record.
	//
	// Preconditions, each reported as an AssignmentError:
	//   - at least one task exists for the group in current (ErrNoTasks).
	//   - every group task is lock-held by its current owner (ErrUnlockedTask).
	//
	// Returns ErrPartitionCapExceeded if any task's resulting partition
	// count would exceed the configured maximum. On any error an empty
	// Assignment is returned and no successor is produced.
	AssignPartitions(ctx context.Context, current Assignment, group DatastreamGroup, snapshot PartitionSnapshot) (Assignment, error)

	// MovePartitions performs a best-effort operator-directed relocation of
	// specific partitions onto specific instances, as a single rebalance.
	//
	// Partitions the target names that are in snapshot but not owned by any
	// task of the group are reported in the returned []DroppedMove rather
	// than causing failure; partitions absent from snapshot are ignored and
	// not reported. Moves that are
	// already satisfied (the partition is already on the requested
	// instance) are treated as no-ops and are not reported as dropped.
	//
	// Returns ErrNoTargetTask if the target names an instance holding no
	// task for the group.
	MovePartitions(ctx context.Context, current Assignment, group DatastreamGroup, target OperatorTargetAssignment, snapshot PartitionSnapshot) (Assignment, []DroppedMove, error)
}
