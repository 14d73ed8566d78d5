// Package metrics provides metrics collector implementations for the
// rebalance engine: a no-op default and a Prometheus-backed collector.
package metrics

import "github.com/jaidparmar/brooklin/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordLeadershipChange discards the leadership change metric.
func (n *NopMetrics) RecordLeadershipChange(_ string) {}

// RecordRebalanceAttempt discards the rebalance attempt metric.
func (n *NopMetrics) RecordRebalanceAttempt(_ string, _ bool) {}

// RecordRebalanceDuration discards the rebalance duration metric.
func (n *NopMetrics) RecordRebalanceDuration(_ string, _ float64) {}

// RecordMutationCount discards the mutation count metric.
func (n *NopMetrics) RecordMutationCount(_ string, _ int) {}

// RecordPartitionCount discards the partition count metric.
func (n *NopMetrics) RecordPartitionCount(_ string, _ int) {}

// RecordCleanupRemoved discards the cleanup removal count metric.
func (n *NopMetrics) RecordCleanupRemoved(_ int) {}

// RecordStoreOperationDuration discards the store operation duration metric.
func (n *NopMetrics) RecordStoreOperationDuration(_ string, _ float64) {}
