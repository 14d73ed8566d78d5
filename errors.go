package brooklin

import "github.com/jaidparmar/brooklin/types"

// Re-exported sentinel errors, so callers that only import the root
// package never need to reach into types directly.
var (
	ErrInvalidConfig        = types.ErrInvalidConfig
	ErrStoreRequired        = types.ErrStoreRequired
	ErrRegistryRequired     = types.ErrRegistryRequired
	ErrAlreadyStarted       = types.ErrAlreadyStarted
	ErrNotStarted           = types.ErrNotStarted
	ErrLeadershipLost       = types.ErrLeadershipLost
	ErrNoTasks              = types.ErrNoTasks
	ErrUnlockedTask         = types.ErrUnlockedTask
	ErrNoTargetTask         = types.ErrNoTargetTask
	ErrPartitionCapExceeded = types.ErrPartitionCapExceeded
	ErrCoverage             = types.ErrCoverage
	ErrCountMismatch        = types.ErrCountMismatch
)
