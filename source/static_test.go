package source

import (
	"context"
	"testing"

	"github.com/jaidparmar/brooklin/types"
	"github.com/stretchr/testify/require"
)

func TestStaticRegistryReturnsSeededGroups(t *testing.T) {
	t.Parallel()

	reg := NewStaticRegistry([]types.DatastreamGroup{
		{TaskPrefix: "orders", NumTasks: 2},
	})

	groups, err := reg.Groups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "orders", groups[0].TaskPrefix)
}

func TestStaticRegistryUpdateReplacesGroups(t *testing.T) {
	t.Parallel()

	reg := NewStaticRegistry([]types.DatastreamGroup{{TaskPrefix: "orders"}})
	reg.Update([]types.DatastreamGroup{{TaskPrefix: "payments"}, {TaskPrefix: "shipments"}})

	groups, err := reg.Groups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
}

func TestStaticRegistryGroupsReturnsACopy(t *testing.T) {
	t.Parallel()

	reg := NewStaticRegistry([]types.DatastreamGroup{{TaskPrefix: "orders"}})

	groups, err := reg.Groups(context.Background())
	require.NoError(t, err)

	groups[0].TaskPrefix = "mutated"

	again, err := reg.Groups(context.Background())
	require.NoError(t, err)
	require.Equal(t, "orders", again[0].TaskPrefix)
}

func TestStaticRosterReturnsSeededInstances(t *testing.T) {
	t.Parallel()

	roster := NewStaticRoster([]string{"instance1", "instance2"})

	instances, err := roster.LiveInstances(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"instance1", "instance2"}, instances)
}

func TestStaticRosterUpdateReplacesInstances(t *testing.T) {
	t.Parallel()

	roster := NewStaticRoster([]string{"instance1"})
	roster.Update([]string{"instance2", "instance3"})

	instances, err := roster.LiveInstances(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"instance2", "instance3"}, instances)
}

func TestStaticPartitionMetadataProviderReturnsSeededSnapshot(t *testing.T) {
	t.Parallel()

	provider := NewStaticPartitionMetadataProvider(map[string]types.PartitionSnapshot{
		"orders": {"t-0", "t-1"},
	})

	snapshot, err := provider.Snapshot(context.Background(), types.DatastreamGroup{TaskPrefix: "orders"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t-0", "t-1"}, snapshot)
}

func TestStaticPartitionMetadataProviderUnknownGroupReturnsEmpty(t *testing.T) {
	t.Parallel()

	provider := NewStaticPartitionMetadataProvider(nil)

	snapshot, err := provider.Snapshot(context.Background(), types.DatastreamGroup{TaskPrefix: "unknown"})
	require.NoError(t, err)
	require.Empty(t, snapshot)
}

func TestStaticPartitionMetadataProviderUpdateReplacesSnapshot(t *testing.T) {
	t.Parallel()

	provider := NewStaticPartitionMetadataProvider(map[string]types.PartitionSnapshot{
		"orders": {"t-0"},
	})
	provider.Update("orders", types.PartitionSnapshot{"t-1", "t-2", "t-3"})

	snapshot, err := provider.Snapshot(context.Background(), types.DatastreamGroup{TaskPrefix: "orders"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t-1", "t-2", "t-3"}, snapshot)
}
