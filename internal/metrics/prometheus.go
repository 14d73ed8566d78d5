package metrics

import (
	"sync"

	"github.com/jaidparmar/brooklin/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by
// Prometheus. Metrics are registered lazily on first use so a collector
// can be constructed before its registerer is finalized.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	leadershipChanges     *prometheus.CounterVec
	rebalanceAttempts     *prometheus.CounterVec
	rebalanceDuration     *prometheus.HistogramVec
	mutationCount         *prometheus.HistogramVec
	partitionCount        *prometheus.GaugeVec
	cleanupRemoved        prometheus.Counter
	storeOperationLatency *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "brooklin" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "brooklin"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.leadershipChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "election",
			Name:      "leadership_changes_total",
			Help:      "Total leadership changes observed, by new leader instance.",
		}, []string{"leader"})

		p.rebalanceAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "rebalance",
			Name:      "attempts_total",
			Help:      "Total rebalance attempts per group, by outcome.",
		}, []string{"group", "result"})

		p.rebalanceDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "rebalance",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of a per-group rebalance cycle.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"group"})

		p.mutationCount = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "rebalance",
			Name:      "mutation_count",
			Help:      "Number of tasks superseded by a single rebalance cycle.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"group"})

		p.partitionCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "rebalance",
			Name:      "partition_count",
			Help:      "Current partition count observed for a group's snapshot.",
		}, []string{"group"})

		p.cleanupRemoved = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cleanup",
			Name:      "removed_total",
			Help:      "Total predecessor tasks marked removable by the cleanup planner.",
		})

		p.storeOperationLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Coordination-store operation latency, by operation name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"})

		p.reg.MustRegister(
			p.leadershipChanges,
			p.rebalanceAttempts,
			p.rebalanceDuration,
			p.mutationCount,
			p.partitionCount,
			p.cleanupRemoved,
			p.storeOperationLatency,
		)
	})
}

// RecordLeadershipChange increments the leadership-change counter for newLeader.
func (p *PrometheusCollector) RecordLeadershipChange(newLeader string) {
	p.ensureRegistered()
	p.leadershipChanges.WithLabelValues(newLeader).Inc()
}

// RecordRebalanceAttempt increments the rebalance-attempt counter for group.
func (p *PrometheusCollector) RecordRebalanceAttempt(group string, success bool) {
	p.ensureRegistered()
	result := "failure"
	if success {
		result = "success"
	}
	p.rebalanceAttempts.WithLabelValues(group, result).Inc()
}

// RecordRebalanceDuration observes a rebalance's wall-clock duration.
func (p *PrometheusCollector) RecordRebalanceDuration(group string, seconds float64) {
	p.ensureRegistered()
	p.rebalanceDuration.WithLabelValues(group).Observe(seconds)
}

// RecordMutationCount observes how many tasks a rebalance superseded.
func (p *PrometheusCollector) RecordMutationCount(group string, count int) {
	p.ensureRegistered()
	p.mutationCount.WithLabelValues(group).Observe(float64(count))
}

// RecordPartitionCount sets the current partition-count gauge for group.
func (p *PrometheusCollector) RecordPartitionCount(group string, count int) {
	p.ensureRegistered()
	p.partitionCount.WithLabelValues(group).Set(float64(count))
}

// RecordCleanupRemoved increments the cleanup-removed counter by count.
func (p *PrometheusCollector) RecordCleanupRemoved(count int) {
	p.ensureRegistered()
	p.cleanupRemoved.Add(float64(count))
}

// RecordStoreOperationDuration observes a coordination-store operation's latency.
func (p *PrometheusCollector) RecordStoreOperationDuration(operation string, seconds float64) {
	p.ensureRegistered()
	p.storeOperationLatency.WithLabelValues(operation).Observe(seconds)
}
