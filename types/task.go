package types

import (
	"slices"

	"github.com/jaidparmar/brooklin/internal/taskname"
)

// Task is a unit of assigned work: one owning instance, one partition
// subset, an immutable name, and a set of predecessor dependencies.
//
// Tasks are treated as immutable after creation. A rebalance that needs
// to change a task's partitions, owner or status never mutates the
// existing record; it mints a successor via NewSuccessor and lists the
// predecessor in the successor's Dependencies.
type Task struct {
	// Name is the immutable task identifier, `<taskPrefix>_<generation>_<suffix>`.
	Name string `json:"name"`

	// TaskPrefix identifies the DatastreamGroup this task belongs to.
	TaskPrefix string `json:"taskPrefix"`

	// Generation is this task's position in its prefix's succession chain.
	Generation int64 `json:"generation"`

	// Partitions is the ordered list of partition identifiers this task owns.
	Partitions []string `json:"partitions"`

	// Dependencies names predecessor tasks whose lifetime overlaps this
	// task's creation. The cleanup planner uses this set to decide when a
	// predecessor is safe to remove.
	Dependencies []string `json:"dependencies,omitempty"`

	// LockOwner is the instance name holding this task's ephemeral lock, or
	// empty if unlocked.
	LockOwner string `json:"lockOwner,omitempty"`

	// Status is the task's last reported health.
	Status TaskStatus `json:"status"`
}

// NewTask creates the first-generation task for a prefix, owned by no one
// and carrying no partitions yet.
func NewTask(taskPrefix string) Task {
	return Task{
		Name:       taskname.Format(taskPrefix, 0, taskname.NewSuffix()),
		TaskPrefix: taskPrefix,
		Generation: 0,
	}
}

// IsLocked reports whether the task currently has a lock owner.
func (t Task) IsLocked() bool {
	return t.LockOwner != ""
}

// LockedBy reports whether instance currently holds this task's lock.
func (t Task) LockedBy(instance string) bool {
	return t.LockOwner != "" && t.LockOwner == instance
}

// HasPartition reports whether partition is in this task's partition list.
func (t Task) HasPartition(partition string) bool {
	return slices.Contains(t.Partitions, partition)
}

// SamePartitions reports whether t and other carry the same partition set,
// order-insensitively.
func (t Task) SamePartitions(other []string) bool {
	if len(t.Partitions) != len(other) {
		return false
	}

	a := slices.Clone(t.Partitions)
	b := slices.Clone(other)
	slices.Sort(a)
	slices.Sort(b)

	return slices.Equal(a, b)
}

// NewSuccessor mints a fresh task that supersedes t: same task prefix, next
// generation, a freshly random suffix, the given partitions, and t's own
// name recorded as a dependency (plus any extraDeps, e.g. source tasks of
// partitions moved in from elsewhere). t itself is left untouched.
func (t Task) NewSuccessor(partitions []string, extraDeps ...string) Task {
	deps := make([]string, 0, 1+len(extraDeps))
	deps = append(deps, t.Name)
	for _, d := range extraDeps {
		if d != "" && d != t.Name {
			deps = append(deps, d)
		}
	}
	slices.Sort(deps)
	deps = slices.Compact(deps)

	return Task{
		Name:         taskname.Next(t.TaskPrefix, t.Generation),
		TaskPrefix:   t.TaskPrefix,
		Generation:   t.Generation + 1,
		Partitions:   slices.Clone(partitions),
		Dependencies: deps,
		LockOwner:    t.LockOwner,
	}
}

// WithPartitions returns a copy of t carrying a different partition list,
// without touching t. Callers that want single-mutation semantics should
// use NewSuccessor instead; WithPartitions exists for constructing task
// records that have not yet been committed to any assignment (e.g. in
// test fixtures).
func (t Task) WithPartitions(partitions []string) Task {
	t.Partitions = slices.Clone(partitions)

	return t
}
