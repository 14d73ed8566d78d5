package types

import "context"

// PartitionMetadataProvider discovers the authoritative set of source
// partition identifiers for a group.
//
// The Manager calls Snapshot during every rebalance cycle for every group
// participating in that cycle. Implementations can query a message-log
// broker's metadata API, a file listing, a change-stream's shard list, or
// return a fixed set for testing.
type PartitionMetadataProvider interface {
	// Snapshot returns the current partition identifiers for group.
	Snapshot(ctx context.Context, group DatastreamGroup) (PartitionSnapshot, error)
}
