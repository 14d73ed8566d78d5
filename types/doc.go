// Package types provides core type definitions and interfaces for the
// assignment engine.
//
// This package contains shared types used across multiple packages of the
// engine. Keeping them here avoids import cycles between the root package
// and its internal implementations.
//
// Key types:
//   - Datastream, DatastreamGroup: the source-to-destination pipelines the
//     engine assigns work for.
//   - Task, TaskStatus: the unit of assigned work and its health.
//   - Assignment, PartitionSnapshot, OperatorTargetAssignment: the inputs
//     and outputs of a rebalance.
//   - MulticastStrategy, PartitionStrategy, CleanupPlanner: the pluggable
//     algorithms that compute a new Assignment.
//   - Store, ElectionAgent: the collaborators the orchestrator
//     reads and writes through.
package types
