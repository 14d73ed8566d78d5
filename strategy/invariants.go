package strategy

import (
	"slices"

	"github.com/jaidparmar/brooklin/types"
)

// checkInvariants verifies the post-conditions every assignment mutation
// must satisfy for one group: coverage, uniqueness (folded into the count
// check, since a duplicate would overcount), and the partition cap. It is called
// by AssignPartitions and MovePartitions before either returns a
// candidate assignment, never after a caller could observe it.
func checkInvariants(group string, tasks []types.Task, snapshot types.PartitionSnapshot, maxPartitionsPerTask int) error {
	seen := make(map[string]string, len(snapshot))
	total := 0

	for _, task := range tasks {
		if maxPartitionsPerTask > 0 && len(task.Partitions) > maxPartitionsPerTask {
			return types.NewPartitionCapExceededError(group, task.Name, maxPartitionsPerTask)
		}

		for _, p := range task.Partitions {
			seen[p] = task.Name
			total++
		}
	}

	var missing []string
	for _, p := range snapshot {
		if _, ok := seen[p]; !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return types.NewCoverageError(group, missing)
	}

	if total != len(snapshot) {
		return types.NewCountMismatchError(group, total, len(snapshot))
	}

	return nil
}

// requireLockedTasks rejects folding any task that is not currently
// locked by its owning instance. An unlocked task means a previous owner
// died mid-rebalance without releasing its lock node, and re-using it
// would violate single-mutation semantics.
func requireLockedTasks(group string, instanceTasks map[string][]types.Task) error {
	for instance, tasks := range instanceTasks {
		for _, task := range tasks {
			if !task.IsLocked() || !task.LockedBy(instance) {
				return types.NewUnlockedTaskError(group, task.Name)
			}
		}
	}
	return nil
}
