// Package hooks provides the default Hooks implementation for the
// rebalance engine.
package hooks

import (
	"context"

	"github.com/jaidparmar/brooklin/types"
)

// NewNop returns a types.Hooks whose callbacks are all no-ops. This is
// the default used when a caller does not provide their own hooks,
// eliminating the need for nil checks throughout the codebase.
func NewNop() types.Hooks {
	return types.Hooks{
		OnTaskSuperseded:    onTaskSuperseded,
		OnRebalanceComplete: onRebalanceComplete,
		OnError:             onError,
	}
}

func onTaskSuperseded(_ context.Context, _ string, _, _ types.Task) error {
	return nil
}

func onRebalanceComplete(_ context.Context, _ string, _ types.Assignment) error {
	return nil
}

func onError(_ context.Context, _ string, _ error) error {
	return nil
}
