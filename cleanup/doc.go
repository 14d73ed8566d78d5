// Package cleanup implements the dependency-based tombstone planner that
// backs single-mutation-per-rebalance semantics: once a task has been
// superseded and its successor is observed in the committed assignment,
// the predecessor is safe to remove from the coordination store.
package cleanup
