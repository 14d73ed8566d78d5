package store

import (
	"context"
	"testing"

	"github.com/jaidparmar/brooklin/types"
	"github.com/stretchr/testify/require"
)

var _ Client = (*fakeClient)(nil)

func TestZKStoreWriteThenReadAssignmentRoundTrips(t *testing.T) {
	t.Parallel()

	s := NewZKStore(newFakeClient(), "prod")
	ctx := context.Background()

	task := types.NewTask("orders").WithPartitions([]string{"p0", "p1"})
	task.LockOwner = "instance1"

	require.NoError(t, s.WriteAssignment(ctx, types.Assignment{"instance1": {task}}))

	got, err := s.ReadAssignment(ctx)
	require.NoError(t, err)
	require.Len(t, got["instance1"], 1)
	require.Equal(t, task, got["instance1"][0])
}

func TestZKStoreWriteAssignmentReconcilesDroppedTasks(t *testing.T) {
	t.Parallel()

	s := NewZKStore(newFakeClient(), "prod")
	ctx := context.Background()

	kept := types.NewTask("orders").WithPartitions([]string{"p0", "p1"})
	kept.LockOwner = "instance1"
	dropped := types.NewTask("orders").WithPartitions([]string{"p2", "p3"})
	dropped.LockOwner = "instance1"

	require.NoError(t, s.WriteAssignment(ctx, types.Assignment{"instance1": {kept, dropped}}))

	got, err := s.ReadAssignment(ctx)
	require.NoError(t, err)
	require.Len(t, got["instance1"], 2)

	// A task-count reduction drops dropped with no successor: the next
	// write carries only kept for this group.
	require.NoError(t, s.WriteAssignment(ctx, types.Assignment{"instance1": {kept}}))

	got, err = s.ReadAssignment(ctx)
	require.NoError(t, err)
	require.Len(t, got["instance1"], 1)
	require.Equal(t, kept, got["instance1"][0])
}

func TestZKStoreWriteAssignmentClearsInstanceWithNoTasksLeft(t *testing.T) {
	t.Parallel()

	s := NewZKStore(newFakeClient(), "prod")
	ctx := context.Background()

	task := types.NewTask("orders")
	task.LockOwner = "instance1"

	require.NoError(t, s.WriteAssignment(ctx, types.Assignment{"instance1": {task}}))

	// instance1 loses its only task and drops out of the assignment
	// entirely (e.g. it left the live roster).
	require.NoError(t, s.WriteAssignment(ctx, types.Assignment{}))

	got, err := s.ReadAssignment(ctx)
	require.NoError(t, err)
	require.Empty(t, got["instance1"])
}

func TestZKStoreReadAssignmentOnEmptyStoreIsEmpty(t *testing.T) {
	t.Parallel()

	s := NewZKStore(newFakeClient(), "prod")

	got, err := s.ReadAssignment(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestZKStoreRemoveTasksDeletesNodeAndIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewZKStore(newFakeClient(), "prod")
	ctx := context.Background()

	task := types.NewTask("orders")
	require.NoError(t, s.WriteAssignment(ctx, types.Assignment{"instance1": {task}}))

	removable := map[string][]types.Task{"instance1": {task}}
	require.NoError(t, s.RemoveTasks(ctx, removable))

	got, err := s.ReadAssignment(ctx)
	require.NoError(t, err)
	require.Empty(t, got["instance1"])

	// Deleting an already-removed task is not an error.
	require.NoError(t, s.RemoveTasks(ctx, removable))
}

func TestZKStoreOperatorTargetReadsLatestAndClears(t *testing.T) {
	t.Parallel()

	s := NewZKStore(newFakeClient(), "prod")
	ctx := context.Background()

	_, found, err := s.ReadOperatorTarget(ctx, "kafka-mirror", "orders")
	require.NoError(t, err)
	require.False(t, found)

	older := types.OperatorTargetAssignment{"instance1": {"p0"}}
	newer := types.OperatorTargetAssignment{"instance2": {"p0", "p1"}}

	require.NoError(t, s.client.CreateJSON(ctx, s.paths.TargetAssignment("kafka-mirror", "orders", 100), older))
	require.NoError(t, s.client.CreateJSON(ctx, s.paths.TargetAssignment("kafka-mirror", "orders", 200), newer))

	target, found, err := s.ReadOperatorTarget(ctx, "kafka-mirror", "orders")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, newer, target)

	require.NoError(t, s.ClearOperatorTarget(ctx, "kafka-mirror", "orders"))

	_, found, err = s.ReadOperatorTarget(ctx, "kafka-mirror", "orders")
	require.NoError(t, err)
	require.False(t, found)
}
