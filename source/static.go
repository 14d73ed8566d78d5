package source

import (
	"context"
	"sync"

	"github.com/jaidparmar/brooklin/types"
)

// StaticRegistry implements types.StreamRegistry with a fixed, mutable
// list of groups held in memory.
type StaticRegistry struct {
	mu     sync.RWMutex
	groups []types.DatastreamGroup
}

var _ types.StreamRegistry = (*StaticRegistry)(nil)

// NewStaticRegistry creates a registry seeded with groups.
//
// Useful for testing and for deployments whose datastream definitions
// are known at startup rather than discovered from the coordination
// store.
//
// Example:
//
//	reg := source.NewStaticRegistry([]types.DatastreamGroup{
//	    {TaskPrefix: "orders", NumTasks: 3, Datastreams: []types.Datastream{{Name: "orders"}}},
//	})
func NewStaticRegistry(groups []types.DatastreamGroup) *StaticRegistry {
	return &StaticRegistry{groups: append([]types.DatastreamGroup(nil), groups...)}
}

// Groups returns the registry's current group list.
func (r *StaticRegistry) Groups(_ context.Context) ([]types.DatastreamGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.DatastreamGroup, len(r.groups))
	copy(out, r.groups)

	return out, nil
}

// Update replaces the registry's group list, simulating a change to
// datastream definitions observed from the coordination store.
func (r *StaticRegistry) Update(groups []types.DatastreamGroup) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups = append([]types.DatastreamGroup(nil), groups...)
}

// StaticRoster implements types.InstanceRoster with a fixed, mutable list
// of live instance names.
type StaticRoster struct {
	mu        sync.RWMutex
	instances []string
}

var _ types.InstanceRoster = (*StaticRoster)(nil)

// NewStaticRoster creates a roster seeded with instances.
func NewStaticRoster(instances []string) *StaticRoster {
	return &StaticRoster{instances: append([]string(nil), instances...)}
}

// LiveInstances returns the roster's current instance list.
func (r *StaticRoster) LiveInstances(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.instances))
	copy(out, r.instances)

	return out, nil
}

// Update replaces the roster's instance list, simulating instances
// joining or leaving the cluster.
func (r *StaticRoster) Update(instances []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.instances = append([]string(nil), instances...)
}

// StaticPartitionMetadataProvider implements types.PartitionMetadataProvider
// with a fixed, mutable per-group partition snapshot.
type StaticPartitionMetadataProvider struct {
	mu        sync.RWMutex
	snapshots map[string]types.PartitionSnapshot
}

var _ types.PartitionMetadataProvider = (*StaticPartitionMetadataProvider)(nil)

// NewStaticPartitionMetadataProvider creates a provider seeded with one
// snapshot per task prefix.
func NewStaticPartitionMetadataProvider(snapshots map[string]types.PartitionSnapshot) *StaticPartitionMetadataProvider {
	out := make(map[string]types.PartitionSnapshot, len(snapshots))
	for prefix, snapshot := range snapshots {
		out[prefix] = append(types.PartitionSnapshot(nil), snapshot...)
	}

	return &StaticPartitionMetadataProvider{snapshots: out}
}

// Snapshot returns the current partition snapshot for group.
func (p *StaticPartitionMetadataProvider) Snapshot(_ context.Context, group types.DatastreamGroup) (types.PartitionSnapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snapshot := p.snapshots[group.TaskPrefix]

	return append(types.PartitionSnapshot(nil), snapshot...), nil
}

// Update replaces the snapshot for taskPrefix, simulating a connector
// observing a change in the underlying partition set.
func (p *StaticPartitionMetadataProvider) Update(taskPrefix string, snapshot types.PartitionSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.snapshots[taskPrefix] = append(types.PartitionSnapshot(nil), snapshot...)
}
