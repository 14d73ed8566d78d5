package types

import "context"

// InstanceRoster discovers the set of currently live worker instances.
//
// Implementations typically refresh this from the coordination store's
// ephemeral `/{cluster}/instances/{instanceName}` nodes, so the roster
// reflects liveness as soon as the store's session-expiry semantics
// remove a dead instance's node.
type InstanceRoster interface {
	// LiveInstances returns the names of every currently live instance, in
	// no particular order.
	LiveInstances(ctx context.Context) ([]string, error)
}
