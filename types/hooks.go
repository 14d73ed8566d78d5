package types

import "context"

// Hooks defines optional callbacks for Manager lifecycle events.
//
// All hooks are optional and called from the rebalance goroutine for the
// affected group; they should complete quickly and respect ctx
// cancellation. Hook errors are logged but never fail the rebalance that
// triggered them.
type Hooks struct {
	// OnTaskSuperseded is called during a rebalance once for each
	// predecessor a minted successor names in its dependencies, when that
	// predecessor was among the group's tasks before the fold. It is not
	// called for a brand-new task with no predecessor.
	OnTaskSuperseded func(ctx context.Context, group string, predecessor, successor Task) error

	// OnRebalanceComplete is called after a group's assignment has been
	// committed to the store.
	OnRebalanceComplete func(ctx context.Context, group string, assignment Assignment) error

	// OnError is called when a recoverable error occurs during a rebalance.
	OnError func(ctx context.Context, group string, err error) error
}
