package types

import "slices"

// Assignment maps instance name to the set of tasks currently owned by
// that instance, across every group. A task belongs to at most one
// instance at any committed assignment.
type Assignment map[string][]Task

// Clone returns a deep-enough copy of a for copy-on-write rebalance
// candidates: the outer map and each instance's task slice are copied, but
// individual Task values are value types and need no further copying.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for instance, tasks := range a {
		out[instance] = slices.Clone(tasks)
	}

	return out
}

// GroupTasks returns every task belonging to taskPrefix, across all
// instances, in no particular order.
func (a Assignment) GroupTasks(taskPrefix string) []Task {
	var out []Task
	for _, tasks := range a {
		for _, t := range tasks {
			if t.TaskPrefix == taskPrefix {
				out = append(out, t)
			}
		}
	}

	return out
}

// InstanceTasksForGroup returns, for each instance that owns at least one
// task of taskPrefix, that instance's tasks for the group.
func (a Assignment) InstanceTasksForGroup(taskPrefix string) map[string][]Task {
	out := make(map[string][]Task)
	for instance, tasks := range a {
		for _, t := range tasks {
			if t.TaskPrefix == taskPrefix {
				out[instance] = append(out[instance], t)
			}
		}
	}

	return out
}

// TaskByName returns the task named name and the instance that owns it, if
// present anywhere in the assignment.
func (a Assignment) TaskByName(name string) (Task, string, bool) {
	for instance, tasks := range a {
		for _, t := range tasks {
			if t.Name == name {
				return t, instance, true
			}
		}
	}

	return Task{}, "", false
}

// WithoutGroupTasks returns a clone of a with every task of taskPrefix
// removed, leaving other groups' tasks on their instances untouched.
func (a Assignment) WithoutGroupTasks(taskPrefix string) Assignment {
	out := a.Clone()
	for instance, tasks := range out {
		filtered := tasks[:0:0]
		for _, t := range tasks {
			if t.TaskPrefix != taskPrefix {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) == 0 {
			delete(out, instance)
		} else {
			out[instance] = filtered
		}
	}

	return out
}

// Put returns a clone of a with task placed on instance, appended to
// whatever tasks that instance already holds.
func (a Assignment) Put(instance string, task Task) Assignment {
	out := a.Clone()
	out[instance] = append(out[instance], task)

	return out
}

// InstanceCounts returns the number of tasks of taskPrefix held by each
// instance that has at least one.
func (a Assignment) InstanceCounts(taskPrefix string) map[string]int {
	counts := make(map[string]int)
	for instance, tasks := range a.InstanceTasksForGroup(taskPrefix) {
		counts[instance] = len(tasks)
	}

	return counts
}

// PartitionSnapshot is the current set of source partition identifiers for
// a group, as observed by the connector.
type PartitionSnapshot []string

// Contains reports whether partition is present in the snapshot.
func (s PartitionSnapshot) Contains(partition string) bool {
	return slices.Contains(s, partition)
}

// Sorted returns a sorted copy of the snapshot.
func (s PartitionSnapshot) Sorted() PartitionSnapshot {
	out := slices.Clone(s)
	slices.Sort(out)

	return out
}

// OperatorTargetAssignment is a mapping from instance name to the set of
// partition identifiers the operator wishes to relocate onto that
// instance.
type OperatorTargetAssignment map[string][]string

// Flatten returns every partition named anywhere in the target, deduplicated.
func (t OperatorTargetAssignment) Flatten() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, partitions := range t {
		for _, p := range partitions {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	slices.Sort(out)

	return out
}
