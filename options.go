package brooklin

import "github.com/jaidparmar/brooklin/types"

// Option configures a Manager with optional dependencies.
type Option func(*managerOptions)

// managerOptions holds optional Manager configuration applied before any
// required-dependency defaults are filled in.
type managerOptions struct {
	electionAgent     types.ElectionAgent
	hooks             *types.Hooks
	metrics           types.MetricsCollector
	logger            types.Logger
	multicast         types.MulticastStrategy
	partitionStrategy types.PartitionStrategy
	cleanupPlanner    types.CleanupPlanner
}

// WithElectionAgent sets a custom leader-election agent.
//
// Example:
//
//	mgr, err := brooklin.NewManager(cfg, store, registry, roster, provider,
//	    brooklin.WithElectionAgent(election.NewZKElection(client, paths.LiveInstances(), time.Second)))
func WithElectionAgent(agent types.ElectionAgent) Option {
	return func(o *managerOptions) {
		o.electionAgent = agent
	}
}

// WithHooks sets lifecycle event callbacks.
func WithHooks(hooks types.Hooks) Option {
	return func(o *managerOptions) {
		o.hooks = &hooks
	}
}

// WithMetrics sets a metrics collector.
func WithMetrics(metrics types.MetricsCollector) Option {
	return func(o *managerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
func WithLogger(logger types.Logger) Option {
	return func(o *managerOptions) {
		o.logger = logger
	}
}

// WithMulticastStrategy overrides the default sticky multicast strategy.
func WithMulticastStrategy(multicast types.MulticastStrategy) Option {
	return func(o *managerOptions) {
		o.multicast = multicast
	}
}

// WithPartitionStrategy overrides the default sticky partition strategy.
func WithPartitionStrategy(partitionStrategy types.PartitionStrategy) Option {
	return func(o *managerOptions) {
		o.partitionStrategy = partitionStrategy
	}
}

// WithCleanupPlanner overrides the default dependency-based cleanup planner.
func WithCleanupPlanner(planner types.CleanupPlanner) Option {
	return func(o *managerOptions) {
		o.cleanupPlanner = planner
	}
}
