package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the assignment engine.
//
// Components should check against these with errors.Is/errors.As and wrap
// external errors with context using fmt.Errorf("%s: %w", msg, err).

// Common errors shared across multiple components.
var (
	// ErrInvalidConfig is returned when engine configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreRequired is returned when no coordination store was supplied.
	ErrStoreRequired = errors.New("coordination store is required")

	// ErrRegistryRequired is returned when no stream registry was supplied.
	ErrRegistryRequired = errors.New("stream registry is required")

	// ErrAlreadyStarted is returned when Start is called on an already running Manager.
	ErrAlreadyStarted = errors.New("manager already started")

	// ErrNotStarted is returned when operations require a started Manager.
	ErrNotStarted = errors.New("manager not started")

	// ErrStatusMessageRequired is returned when a non-ERROR TaskStatus has an empty message.
	ErrStatusMessageRequired = errors.New("non-error task status requires a message")

	// ErrLeadershipLost is returned when an in-flight rebalance discovers it
	// is no longer the leader.
	ErrLeadershipLost = errors.New("leadership lost during rebalance")

	// ErrInvalidConnectionString is returned when a source or destination
	// connection string fails to parse.
	ErrInvalidConnectionString = errors.New("invalid connection string")
)

// AssignmentError is the super-kind for all strategy-level rebalance
// failures. It carries the offending group (and, where applicable, task or
// partition) for diagnosis, and wraps a concrete sentinel so callers can
// use errors.Is against ErrNoTasks, ErrUnlockedTask, etc. regardless of
// which AssignmentError variant produced it.
type AssignmentError struct {
	Kind      error
	Group     string
	Task      string
	Partition string
	Detail    string
}

// Error implements the error interface.
func (e *AssignmentError) Error() string {
	msg := fmt.Sprintf("assignment error: group=%q", e.Group)
	if e.Task != "" {
		msg += fmt.Sprintf(" task=%q", e.Task)
	}
	if e.Partition != "" {
		msg += fmt.Sprintf(" partition=%q", e.Partition)
	}
	msg += fmt.Sprintf(": %v", e.Kind)
	if e.Detail != "" {
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}

	return msg
}

// Unwrap exposes the concrete sentinel kind for errors.Is/errors.As.
func (e *AssignmentError) Unwrap() error {
	return e.Kind
}

// Concrete AssignmentError kinds. Use errors.Is(err, types.ErrNoTasks), etc.
var (
	// ErrNoTasks is returned when a group has no tasks in the current
	// assignment (AssignPartitions requires at least one).
	ErrNoTasks = errors.New("no tasks exist for group")

	// ErrUnlockedTask is returned when a group task is not lock-held by its
	// recorded owner.
	ErrUnlockedTask = errors.New("task is not lock-held by its owner")

	// ErrNoTargetTask is returned when an operator move names an instance
	// that holds no task for the group.
	ErrNoTargetTask = errors.New("instance holds no task for the group")

	// ErrPartitionCapExceeded is returned when a task's working set would
	// exceed the configured maximum partitions per task.
	ErrPartitionCapExceeded = errors.New("task exceeds max partitions per task")

	// ErrCoverage is returned when the invariant check finds snapshot
	// partitions missing from every task. A partition present in more than
	// one task is reported as ErrCountMismatch instead.
	ErrCoverage = errors.New("partition coverage invariant violated")

	// ErrCountMismatch is returned when the sum of per-task partition
	// counts does not equal the snapshot size.
	ErrCountMismatch = errors.New("partition count invariant violated")
)

// NewNoTasksError builds a NoTasksError for group.
func NewNoTasksError(group string) *AssignmentError {
	return &AssignmentError{Kind: ErrNoTasks, Group: group}
}

// NewUnlockedTaskError builds an UnlockedTaskError for the named task.
func NewUnlockedTaskError(group, task string) *AssignmentError {
	return &AssignmentError{Kind: ErrUnlockedTask, Group: group, Task: task}
}

// NewNoTargetTaskError builds a NoTargetTaskError for the named instance.
func NewNoTargetTaskError(group, instance string) *AssignmentError {
	return &AssignmentError{Kind: ErrNoTargetTask, Group: group, Detail: "instance=" + instance}
}

// NewPartitionCapExceededError builds a PartitionCapExceededError naming
// the offending task and the configured cap.
func NewPartitionCapExceededError(group, task string, cap int) *AssignmentError {
	return &AssignmentError{
		Kind:   ErrPartitionCapExceeded,
		Group:  group,
		Task:   task,
		Detail: fmt.Sprintf("cap=%d", cap),
	}
}

// NewCoverageError builds a CoverageError listing the missing partitions.
func NewCoverageError(group string, missing []string) *AssignmentError {
	return &AssignmentError{
		Kind:   ErrCoverage,
		Group:  group,
		Detail: fmt.Sprintf("missing=%v", missing),
	}
}

// NewCountMismatchError builds a CountMismatchError reporting the observed
// and expected totals.
func NewCountMismatchError(group string, got, want int) *AssignmentError {
	return &AssignmentError{
		Kind:   ErrCountMismatch,
		Group:  group,
		Detail: fmt.Sprintf("got=%d want=%d", got, want),
	}
}
