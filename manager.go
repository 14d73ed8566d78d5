package brooklin

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jaidparmar/brooklin/cleanup"
	"github.com/jaidparmar/brooklin/internal/hooks"
	"github.com/jaidparmar/brooklin/internal/logger"
	"github.com/jaidparmar/brooklin/internal/metrics"
	"github.com/jaidparmar/brooklin/strategy"
	"github.com/jaidparmar/brooklin/types"
)

// Manager is the rebalance orchestrator. It campaigns for leadership,
// and while leader runs a debounced cycle that recomputes and commits
// the cluster's assignment: multicast strategy settles task counts across
// every group in one pass, then a bounded pool of per-group workers folds
// each group's partition snapshot onto the result, applies any pending
// operator move, writes the outcome, and plans predecessor cleanup.
//
// Thread safety: all exported methods are safe for concurrent use.
// Assignment state lives entirely in the coordination store; Manager
// holds no assignment cache of its own between cycles.
type Manager struct {
	cfg Config

	store             types.Store
	registry          types.StreamRegistry
	roster            types.InstanceRoster
	partitionProvider types.PartitionMetadataProvider

	electionAgent     types.ElectionAgent
	multicast         types.MulticastStrategy
	partitionStrategy types.PartitionStrategy
	cleanupPlanner    types.CleanupPlanner
	hooks             types.Hooks
	metrics           types.MetricsCollector
	logger            types.Logger

	started  atomic.Bool
	isLeader atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewManager creates a Manager from required collaborators plus any
// functional options. Pluggable collaborators (strategies, cleanup
// planner, hooks, metrics, logger) default to the package's reference/no-op
// implementations when not supplied via an option. The election agent has
// no default: without one the Manager treats itself as leader.
//
// Example:
//
//	mgr, err := brooklin.NewManager(cfg, store, registry, roster, provider)
func NewManager(
	cfg Config,
	store types.Store,
	registry types.StreamRegistry,
	roster types.InstanceRoster,
	partitionProvider types.PartitionMetadataProvider,
	opts ...Option,
) (*Manager, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if roster == nil {
		return nil, fmt.Errorf("%w: instance roster is required", ErrInvalidConfig)
	}
	if partitionProvider == nil {
		return nil, fmt.Errorf("%w: partition metadata provider is required", ErrInvalidConfig)
	}

	setDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &managerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	hooksInstance := options.hooks
	if hooksInstance == nil {
		nop := hooks.NewNop()
		hooksInstance = &nop
	}

	multicastStrategy := options.multicast
	if multicastStrategy == nil {
		multicastStrategy = strategy.NewStickyMulticast(
			strategy.WithImbalanceThreshold(cfg.ImbalanceThreshold),
			strategy.WithDefaultMaxTasks(cfg.DefaultMaxTasks),
		)
	}

	partitionStrategyImpl := options.partitionStrategy
	if partitionStrategyImpl == nil {
		partitionStrategyImpl = strategy.NewStickyPartition(
			multicastStrategy,
			strategy.WithMaxPartitionsPerTask(cfg.MaxPartitionsPerTask),
		)
	}

	cleanupPlanner := options.cleanupPlanner
	if cleanupPlanner == nil {
		cleanupPlanner = cleanup.NewDependencyPlanner()
	}

	m := &Manager{
		cfg:               cfg,
		store:             store,
		registry:          registry,
		roster:            roster,
		partitionProvider: partitionProvider,
		electionAgent:     options.electionAgent,
		multicast:         multicastStrategy,
		partitionStrategy: partitionStrategyImpl,
		cleanupPlanner:    cleanupPlanner,
		hooks:             *hooksInstance,
		metrics:           metricsCollector,
		logger:            loggerInstance,
	}

	return m, nil
}

// Start begins leader campaigning and, once leadership is held, the
// debounced rebalance loop. Start returns once the background goroutine
// has been launched; it does not block until leadership is acquired.
func (m *Manager) Start(_ context.Context) error {
	if !m.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	m.mu.Lock()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.mu.Unlock()

	m.wg.Add(1)
	go m.runLeaderLoop(m.ctx)

	return nil
}

// Stop cancels the rebalance loop, resigns leadership if held, and waits
// up to Config.ShutdownTimeout for background goroutines to exit.
func (m *Manager) Stop(ctx context.Context) error {
	if !m.started.CompareAndSwap(true, false) {
		return ErrNotStarted
	}

	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()
	cancel()

	if m.electionAgent != nil && m.isLeader.Load() {
		resignCtx, resignCancel := context.WithTimeout(ctx, m.cfg.ShutdownTimeout)
		if err := m.electionAgent.Resign(resignCtx); err != nil {
			m.logger.Warn("failed to resign leadership during shutdown", "error", err)
		}
		resignCancel()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(m.cfg.ShutdownTimeout):
		return fmt.Errorf("shutdown timeout after %s", m.cfg.ShutdownTimeout)
	}
}

// IsLeader reports whether this instance currently holds leadership.
func (m *Manager) IsLeader() bool {
	return m.isLeader.Load()
}

// runLeaderLoop campaigns for leadership (if an election agent was
// configured) and, once leader, runs the debounced rebalance loop until
// ctx is cancelled or leadership is lost.
func (m *Manager) runLeaderLoop(ctx context.Context) {
	defer m.wg.Done()

	if m.electionAgent == nil {
		m.isLeader.Store(true)
		m.metrics.RecordLeadershipChange(m.cfg.InstanceName)
		m.rebalanceLoop(ctx)

		return
	}

	for ctx.Err() == nil {
		if err := m.electionAgent.Campaign(ctx, m.cfg.InstanceName); err != nil {
			if ctx.Err() != nil {
				return
			}

			m.logger.Warn("campaign failed, retrying", "error", err)
			continue
		}

		m.isLeader.Store(true)
		m.metrics.RecordLeadershipChange(m.cfg.InstanceName)
		m.rebalanceLoop(ctx)
		m.isLeader.Store(false)
	}
}

// rebalanceLoop runs one rebalance cycle per debounce tick until ctx is
// cancelled or leadership is lost.
func (m *Manager) rebalanceLoop(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.DebounceInterval)
	defer ticker.Stop()

	for {
		leader, err := m.electionAgentIsLeader(ctx)
		if err != nil || !leader {
			return
		}

		if err := m.RunOnce(ctx); err != nil {
			m.logger.Error("rebalance cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (m *Manager) electionAgentIsLeader(ctx context.Context) (bool, error) {
	if m.electionAgent == nil {
		return true, nil
	}

	return m.electionAgent.IsLeader(ctx)
}

// RunOnce executes a single rebalance cycle synchronously: it settles
// task counts for every group via the multicast strategy, then fans out
// per-group partition folding across a bounded worker pool. The per-group
// results are merged and written to the store in one WriteAssignment call;
// a group whose fold fails keeps its pre-cycle tasks in that write, so one
// group's failure never blocks another's.
//
// Exposed so callers (and tests) can drive a deterministic cycle without
// waiting on the debounce ticker.
func (m *Manager) RunOnce(ctx context.Context) error {
	groups, err := m.registry.Groups(ctx)
	if err != nil {
		return fmt.Errorf("listing groups: %w", err)
	}
	if len(groups) == 0 {
		return nil
	}

	liveInstances, err := m.roster.LiveInstances(ctx)
	if err != nil {
		return fmt.Errorf("listing live instances: %w", err)
	}

	previous, err := m.store.ReadAssignment(ctx)
	if err != nil {
		return fmt.Errorf("reading assignment: %w", err)
	}

	settled, err := m.multicast.Assign(ctx, previous, liveInstances, groups)
	if err != nil {
		return fmt.Errorf("settling task counts: %w", err)
	}

	results := m.rebalanceGroups(ctx, settled, groups)

	final := settled
	removable := make(map[string][]types.Task)
	for _, r := range results {
		final = final.WithoutGroupTasks(r.group)

		if r.err != nil {
			m.logger.Error("group rebalance failed", "group", r.group, "error", r.err)
			m.metrics.RecordRebalanceAttempt(r.group, false)
			m.callOnError(ctx, r.group, r.err)

			// A failed partition fold must not leave the multicast-settled
			// intermediate (possibly a different task count, freshly
			// minted empty tasks, or an incomplete partition set) in the
			// committed assignment. Roll this group back to whatever was
			// committed before this cycle started.
			for instance, tasks := range previous.InstanceTasksForGroup(r.group) {
				final[instance] = append(final[instance], tasks...)
			}

			continue
		}

		for instance, tasks := range r.assignment {
			final[instance] = append(final[instance], tasks...)
		}

		m.metrics.RecordRebalanceAttempt(r.group, true)
		m.metrics.RecordRebalanceDuration(r.group, r.duration.Seconds())
		m.metrics.RecordPartitionCount(r.group, len(r.snapshot))
	}

	if err := m.store.WriteAssignment(ctx, final); err != nil {
		return fmt.Errorf("writing assignment: %w", err)
	}

	for _, r := range results {
		if r.err != nil {
			continue
		}

		for instance, tasks := range r.removable {
			removable[instance] = append(removable[instance], tasks...)
		}

		m.callOnRebalanceComplete(ctx, r.group, final)
	}

	if len(removable) > 0 {
		if err := m.store.RemoveTasks(ctx, removable); err != nil {
			m.logger.Error("cleanup removal failed", "error", err)
		} else {
			count := 0
			for _, tasks := range removable {
				count += len(tasks)
			}
			m.metrics.RecordCleanupRemoved(count)
		}
	}

	return nil
}

// groupResult is the per-group outcome of one rebalance cycle, collected
// by rebalanceGroups for the caller to merge and commit.
type groupResult struct {
	group      string
	assignment map[string][]types.Task
	removable  map[string][]types.Task
	snapshot   types.PartitionSnapshot
	duration   time.Duration
	err        error
}

// rebalanceGroups folds each group's partition snapshot onto settled,
// applies any pending operator move, and plans predecessor cleanup,
// fanning the work out across a pool bounded by
// Config.MaxConcurrentGroupRebalances.
func (m *Manager) rebalanceGroups(ctx context.Context, settled types.Assignment, groups []types.DatastreamGroup) []groupResult {
	results := make([]groupResult, len(groups))
	sem := make(chan struct{}, m.cfg.MaxConcurrentGroupRebalances)

	var wg sync.WaitGroup
	for i, group := range groups {
		wg.Add(1)
		sem <- struct{}{}

		go func(i int, group types.DatastreamGroup) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = m.rebalanceGroup(ctx, settled, group)
		}(i, group)
	}
	wg.Wait()

	return results
}

// rebalanceGroup performs one group's partition-folding step: snapshot
// discovery, AssignPartitions, an optional pending operator move via
// MovePartitions, mutation-count metrics, task-superseded hooks, and
// cleanup planning against the pre-cycle assignment.
func (m *Manager) rebalanceGroup(ctx context.Context, settled types.Assignment, group types.DatastreamGroup) groupResult {
	start := time.Now()
	prefix := group.TaskPrefix

	snapshot, err := m.partitionProvider.Snapshot(ctx, group)
	if err != nil {
		return groupResult{group: prefix, err: fmt.Errorf("reading snapshot: %w", err)}
	}

	before := settled.GroupTasks(prefix)

	result, err := m.partitionStrategy.AssignPartitions(ctx, settled, group, snapshot)
	if err != nil {
		return groupResult{group: prefix, err: fmt.Errorf("assigning partitions: %w", err)}
	}

	connector := group.Connector()
	target, found, err := m.store.ReadOperatorTarget(ctx, connector, prefix)
	if err != nil {
		m.logger.Warn("reading operator target failed", "group", prefix, "error", err)
	} else if found {
		moved, dropped, err := m.partitionStrategy.MovePartitions(ctx, result, group, target, snapshot)
		if err != nil {
			return groupResult{group: prefix, err: fmt.Errorf("applying operator move: %w", err)}
		}
		for _, d := range dropped {
			m.logger.Warn("operator move dropped", "group", prefix, "instance", d.Instance, "partition", d.Partition, "reason", d.Reason)
		}

		result = moved

		if err := m.store.ClearOperatorTarget(ctx, connector, prefix); err != nil {
			m.logger.Warn("clearing operator target failed", "group", prefix, "error", err)
		}
	}

	after := result.GroupTasks(prefix)
	m.metrics.RecordMutationCount(prefix, mutationCount(before, after))
	m.notifySupersededTasks(ctx, prefix, before, after)

	removable := m.cleanupPlanner.Plan(ctx, []types.DatastreamGroup{group}, settled, result)

	return groupResult{
		group:      prefix,
		assignment: result.InstanceTasksForGroup(prefix),
		removable:  removable,
		snapshot:   snapshot,
		duration:   time.Since(start),
	}
}

// mutationCount counts tasks in after whose name does not appear among
// before's task names, i.e. freshly minted successors.
func mutationCount(before, after []types.Task) int {
	beforeNames := make(map[string]bool, len(before))
	for _, t := range before {
		beforeNames[t.Name] = true
	}

	count := 0
	for _, t := range after {
		if !beforeNames[t.Name] {
			count++
		}
	}

	return count
}

// notifySupersededTasks calls hooks.OnTaskSuperseded once for each pair of
// a task in after and a task in before that the former names in its
// Dependencies, matching predecessor to successor by dependency name.
func (m *Manager) notifySupersededTasks(ctx context.Context, group string, before, after []types.Task) {
	if m.hooks.OnTaskSuperseded == nil {
		return
	}

	byName := make(map[string]types.Task, len(before))
	for _, t := range before {
		byName[t.Name] = t
	}

	for _, successor := range after {
		for _, dep := range successor.Dependencies {
			if predecessor, ok := byName[dep]; ok {
				if err := m.hooks.OnTaskSuperseded(ctx, group, predecessor, successor); err != nil {
					m.logger.Warn("OnTaskSuperseded hook failed", "group", group, "error", err)
				}
			}
		}
	}
}

func (m *Manager) callOnRebalanceComplete(ctx context.Context, group string, assignment types.Assignment) {
	if m.hooks.OnRebalanceComplete == nil {
		return
	}

	if err := m.hooks.OnRebalanceComplete(ctx, group, assignment); err != nil {
		m.logger.Warn("OnRebalanceComplete hook failed", "group", group, "error", err)
	}
}

func (m *Manager) callOnError(ctx context.Context, group string, rebalanceErr error) {
	if m.hooks.OnError == nil {
		return
	}

	if err := m.hooks.OnError(ctx, group, rebalanceErr); err != nil {
		m.logger.Warn("OnError hook failed", "group", group, "error", err)
	}
}
