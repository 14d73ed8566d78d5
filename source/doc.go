// Package source provides static, in-memory reference implementations of
// the engine's external collaborator interfaces — types.StreamRegistry,
// types.InstanceRoster and types.PartitionMetadataProvider — suitable for
// tests, examples, and simple deployments that do not need a live
// connector or a dynamic instance roster.
package source
