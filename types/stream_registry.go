package types

import "context"

// StreamRegistry holds the current set of datastream definitions and
// groups them by task prefix.
//
// Implementations can back this with the coordination store's
// `/{cluster}/dms/{datastreamName}` nodes, a relational table, or a fixed
// list for testing.
type StreamRegistry interface {
	// Groups returns every datastream group currently registered,
	// including groups whose datastreams are PAUSED or STOPPING (callers
	// decide whether to skip them).
	Groups(ctx context.Context) ([]DatastreamGroup, error)
}
