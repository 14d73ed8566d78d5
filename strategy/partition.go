package strategy

import (
	"context"
	"slices"
	"strings"

	"github.com/jaidparmar/brooklin/internal/shuffle"
	"github.com/jaidparmar/brooklin/types"
)

// StickyPartition implements types.PartitionStrategy. It folds a group's
// partition-metadata snapshot forward onto its existing tasks, minting a
// successor only for tasks whose partition set actually changes. It holds
// a MulticastStrategy but does not call it: it neither creates nor removes
// tasks, and works on the task count already present in current (the
// Manager settles task counts with its multicast strategy beforehand).
type StickyPartition struct {
	multicast            types.MulticastStrategy
	maxPartitionsPerTask int
}

var _ types.PartitionStrategy = (*StickyPartition)(nil)

// PartitionOption configures a StickyPartition strategy.
type PartitionOption func(*StickyPartition)

// WithMaxPartitionsPerTask caps the number of partitions any single task
// may carry. Zero (the default) means unbounded.
func WithMaxPartitionsPerTask(max int) PartitionOption {
	return func(s *StickyPartition) {
		s.maxPartitionsPerTask = max
	}
}

// NewStickyPartition composes a StickyPartition over multicast. The
// strategy's own methods do not call multicast; task-count changes are
// not made by StickyPartition. multicast must not be nil.
//
// Example:
//
//	p := strategy.NewStickyPartition(
//	    strategy.NewStickyMulticast(),
//	    strategy.WithMaxPartitionsPerTask(64),
//	)
func NewStickyPartition(multicast types.MulticastStrategy, opts ...PartitionOption) *StickyPartition {
	s := &StickyPartition{multicast: multicast}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AssignPartitions distributes snapshot across the group's existing
// tasks, preserving each task's partition set wherever possible and
// minting successors only where it must change.
func (s *StickyPartition) AssignPartitions(ctx context.Context, current types.Assignment, group types.DatastreamGroup, snapshot types.PartitionSnapshot) (types.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return types.Assignment{}, err
	}

	prefix := group.TaskPrefix

	instanceTasks := current.InstanceTasksForGroup(prefix)
	if len(instanceTasks) == 0 {
		return types.Assignment{}, types.NewNoTasksError(prefix)
	}
	if err := requireLockedTasks(prefix, instanceTasks); err != nil {
		return types.Assignment{}, err
	}

	// Stable iteration order over (task, owning instance) pairs.
	type owned struct {
		task     types.Task
		instance string
	}
	var ordered []owned
	for instance, tasks := range instanceTasks {
		for _, t := range tasks {
			ordered = append(ordered, owned{task: t, instance: instance})
		}
	}
	slices.SortFunc(ordered, func(a, b owned) int { return strings.Compare(a.task.Name, b.task.Name) })

	assigned := make(map[string]bool)
	for _, o := range ordered {
		for _, p := range o.task.Partitions {
			assigned[p] = true
		}
	}

	snapshotSet := make(map[string]bool, len(snapshot))
	for _, p := range snapshot {
		snapshotSet[p] = true
	}

	var unassignedRaw []string
	for _, p := range snapshot {
		if !assigned[p] {
			unassignedRaw = append(unassignedRaw, p)
		}
	}
	slices.Sort(unassignedRaw)
	pool := shuffle.Strings(unassignedRaw)

	totalTasks := len(ordered)
	base := len(snapshot) / totalTasks
	remainder := len(snapshot) % totalTasks

	result := current.Clone()
	result = result.WithoutGroupTasks(prefix)

	for i, o := range ordered {
		allowance := base
		if i < remainder {
			allowance = base + 1
		}

		working := make([]string, 0, len(o.task.Partitions))
		for _, p := range o.task.Partitions {
			if snapshotSet[p] {
				working = append(working, p) // drop stale partitions no longer in the snapshot
			}
		}

		for len(working) < allowance && len(pool) > 0 {
			working = append(working, pool[0])
			pool = pool[1:]
		}

		final := o.task
		if !o.task.SamePartitions(working) {
			final = o.task.NewSuccessor(working)
		}

		result = result.Put(o.instance, final)
	}

	newTasks := result.GroupTasks(prefix)
	if err := checkInvariants(prefix, newTasks, snapshot, s.maxPartitionsPerTask); err != nil {
		return types.Assignment{}, err
	}

	return result, nil
}

// MovePartitions performs a best-effort, atomic, operator-directed
// relocation of specific partitions onto specific instances.
func (s *StickyPartition) MovePartitions(ctx context.Context, current types.Assignment, group types.DatastreamGroup, target types.OperatorTargetAssignment, snapshot types.PartitionSnapshot) (types.Assignment, []types.DroppedMove, error) {
	if err := ctx.Err(); err != nil {
		return types.Assignment{}, nil, err
	}

	prefix := group.TaskPrefix

	instanceTasks := current.InstanceTasksForGroup(prefix)
	if len(instanceTasks) == 0 {
		return types.Assignment{}, nil, types.NewNoTasksError(prefix)
	}
	if err := requireLockedTasks(prefix, instanceTasks); err != nil {
		return types.Assignment{}, nil, err
	}

	snapshotSet := make(map[string]bool, len(snapshot))
	for _, p := range snapshot {
		snapshotSet[p] = true
	}

	owningInstance := make(map[string]string)
	owningTask := make(map[string]string)
	for instance, tasks := range instanceTasks {
		for _, t := range tasks {
			for _, p := range t.Partitions {
				owningInstance[p] = instance
				owningTask[p] = t.Name
			}
		}
	}

	allToReassign := make(map[string]bool)
	for _, p := range target.Flatten() {
		if snapshotSet[p] {
			allToReassign[p] = true
		}
	}

	var dropped []types.DroppedMove

	// Step 2: partitions the operator asked to move onto the instance that
	// already owns them are no-ops; drop them from the global set.
	for instance, partitions := range target {
		for _, p := range partitions {
			if allToReassign[p] && owningInstance[p] == instance {
				delete(allToReassign, p)
			}
		}
	}

	// Partitions with no confirmed source task cannot be moved; surface
	// them rather than silently discarding.
	for p := range allToReassign {
		if owningTask[p] == "" {
			delete(allToReassign, p)
			for instance, partitions := range target {
				if slices.Contains(partitions, p) {
					dropped = append(dropped, types.DroppedMove{Instance: instance, Partition: p, Reason: "no confirmed source task"})
				}
			}
		}
	}

	confirmed := make(map[string][]string) // task name -> partitions to release
	for p := range allToReassign {
		confirmed[owningTask[p]] = append(confirmed[owningTask[p]], p)
	}
	for name := range confirmed {
		slices.Sort(confirmed[name])
	}

	processedTarget := make(map[string][]string) // instance -> partitions to add
	for instance, partitions := range target {
		var toAdd []string
		for _, p := range partitions {
			if allToReassign[p] {
				toAdd = append(toAdd, p)
			}
		}
		slices.Sort(toAdd)
		if len(toAdd) > 0 {
			processedTarget[instance] = toAdd
		}
	}

	instances := make(map[string]bool, len(instanceTasks)+len(processedTarget))
	for instance := range instanceTasks {
		instances[instance] = true
	}
	for instance := range processedTarget {
		instances[instance] = true
	}
	sortedInstances := make([]string, 0, len(instances))
	for instance := range instances {
		sortedInstances = append(sortedInstances, instance)
	}
	slices.Sort(sortedInstances)

	result := current.Clone()
	result = result.WithoutGroupTasks(prefix)

	for _, instance := range sortedInstances {
		toAdd := processedTarget[instance]
		tasks := slices.Clone(instanceTasks[instance])
		slices.SortFunc(tasks, func(a, b types.Task) int { return strings.Compare(a.Name, b.Name) })

		if len(toAdd) > 0 && len(tasks) == 0 {
			return types.Assignment{}, nil, types.NewNoTargetTaskError(prefix, instance)
		}
		if len(tasks) == 0 {
			continue
		}

		targetTask := tasks[0]
		for _, t := range tasks[1:] {
			if len(t.Partitions) < len(targetTask.Partitions) ||
				(len(t.Partitions) == len(targetTask.Partitions) && t.Name < targetTask.Name) {
				targetTask = t
			}
		}
		targetTaskName := targetTask.Name

		extraDeps := make([]string, 0, len(toAdd))
		for _, p := range toAdd {
			if src := owningTask[p]; src != "" {
				extraDeps = append(extraDeps, src)
			}
		}

		for _, t := range tasks {
			release := confirmed[t.Name]
			isTarget := t.Name == targetTaskName
			if len(release) == 0 && !(isTarget && len(toAdd) > 0) {
				result = result.Put(instance, t)
				continue
			}

			newPartitions := make([]string, 0, len(t.Partitions))
			releaseSet := make(map[string]bool, len(release))
			for _, p := range release {
				releaseSet[p] = true
			}
			for _, p := range t.Partitions {
				if !releaseSet[p] {
					newPartitions = append(newPartitions, p)
				}
			}
			var successor types.Task
			if isTarget {
				newPartitions = append(newPartitions, toAdd...)
				successor = t.NewSuccessor(newPartitions, extraDeps...)
			} else {
				successor = t.NewSuccessor(newPartitions)
			}

			result = result.Put(instance, successor)
		}
	}

	newTasks := result.GroupTasks(prefix)
	if err := checkInvariants(prefix, newTasks, snapshot, s.maxPartitionsPerTask); err != nil {
		return types.Assignment{}, nil, err
	}

	return result, dropped, nil
}

