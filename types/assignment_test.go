package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssignmentGroupTasksAndInstanceCounts(t *testing.T) {
	t.Parallel()

	t1 := NewTask("ds").WithPartitions([]string{"p0"})
	t2 := NewTask("ds").WithPartitions([]string{"p1"})
	other := NewTask("other").WithPartitions([]string{"p0"})

	a := Assignment{
		"instance1": {t1, other},
		"instance2": {t2},
	}

	group := a.GroupTasks("ds")
	require.Len(t, group, 2)

	counts := a.InstanceCounts("ds")
	require.Equal(t, map[string]int{"instance1": 1, "instance2": 1}, counts)
}

func TestAssignmentCloneIsIndependent(t *testing.T) {
	t.Parallel()

	original := Assignment{"instance1": {NewTask("ds")}}
	clone := original.Clone()
	clone["instance1"] = append(clone["instance1"], NewTask("ds"))

	require.Len(t, original["instance1"], 1)
	require.Len(t, clone["instance1"], 2)
}

func TestAssignmentWithoutGroupTasksLeavesOtherGroupsAlone(t *testing.T) {
	t.Parallel()

	ds := NewTask("ds")
	other := NewTask("other")
	a := Assignment{"instance1": {ds, other}}

	out := a.WithoutGroupTasks("ds")
	require.Len(t, out["instance1"], 1)
	require.Equal(t, "other", out["instance1"][0].TaskPrefix)

	// original is untouched.
	require.Len(t, a["instance1"], 2)
}

func TestAssignmentTaskByName(t *testing.T) {
	t.Parallel()

	task := NewTask("ds")
	a := Assignment{"instance1": {task}}

	got, instance, ok := a.TaskByName(task.Name)
	require.True(t, ok)
	require.Equal(t, "instance1", instance)
	require.Equal(t, task, got)

	_, _, ok = a.TaskByName("missing")
	require.False(t, ok)
}

func TestOperatorTargetAssignmentFlattenDedupesAndSorts(t *testing.T) {
	t.Parallel()

	target := OperatorTargetAssignment{
		"instance1": {"p2", "p0"},
		"instance2": {"p0", "p1"},
	}

	require.Equal(t, []string{"p0", "p1", "p2"}, target.Flatten())
}
