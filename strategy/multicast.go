package strategy

import (
	"context"
	"slices"
	"strings"

	"github.com/jaidparmar/brooklin/types"
)

// StickyMulticast implements types.MulticastStrategy: it decides how many
// tasks a group should have and which instance owns each one, favoring
// the placement already in effect (stickiness) over a from-scratch
// rebalance.
type StickyMulticast struct {
	imbalanceThreshold int
	defaultMaxTasks    int
}

var _ types.MulticastStrategy = (*StickyMulticast)(nil)

// MulticastOption configures a StickyMulticast strategy.
type MulticastOption func(*StickyMulticast)

// WithImbalanceThreshold sets the maximum tolerated difference between the
// busiest and idlest eligible instance's task count for a group, before
// the strategy mints a move to rebalance. Default 1.
func WithImbalanceThreshold(threshold int) MulticastOption {
	return func(s *StickyMulticast) {
		s.imbalanceThreshold = threshold
	}
}

// WithDefaultMaxTasks sets the task count used for groups that do not
// specify their own NumTasks. Default 1.
func WithDefaultMaxTasks(maxTasks int) MulticastOption {
	return func(s *StickyMulticast) {
		s.defaultMaxTasks = maxTasks
	}
}

// NewStickyMulticast builds a StickyMulticast strategy.
//
// Example:
//
//	m := strategy.NewStickyMulticast(strategy.WithImbalanceThreshold(1))
//	p := strategy.NewStickyPartition(m)
func NewStickyMulticast(opts ...MulticastOption) *StickyMulticast {
	s := &StickyMulticast{
		imbalanceThreshold: 1,
		defaultMaxTasks:    1,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Assign computes a new task-count-and-placement assignment for every
// group in groups, independently, keeping as much of current as
// possible. Groups not named in groups are left untouched in the
// returned assignment.
func (s *StickyMulticast) Assign(ctx context.Context, current types.Assignment, liveInstances []string, groups []types.DatastreamGroup) (types.Assignment, error) {
	result := current.Clone()

	live := slices.Clone(liveInstances)
	slices.Sort(live)

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		placed, err := s.assignGroup(result, live, group)
		if err != nil {
			return nil, err
		}

		result = result.WithoutGroupTasks(group.TaskPrefix)
		for instance, tasks := range placed {
			for _, t := range tasks {
				result = result.Put(instance, t)
			}
		}
	}

	return result, nil
}

func (s *StickyMulticast) assignGroup(current types.Assignment, live []string, group types.DatastreamGroup) (map[string][]types.Task, error) {
	target := s.targetTaskCount(group, live)

	liveSet := make(map[string]bool, len(live))
	for _, instance := range live {
		liveSet[instance] = true
	}

	kept := make(map[string][]types.Task)
	for instance, tasks := range current.InstanceTasksForGroup(group.TaskPrefix) {
		if !liveSet[instance] {
			continue // orphaned: owning instance is no longer live
		}
		for _, task := range tasks {
			if task.IsLocked() && task.LockedBy(instance) {
				kept[instance] = append(kept[instance], task)
			}
		}
	}
	sortTasksByName(kept)

	keptCount := countTasks(kept)

	switch {
	case keptCount > target:
		dropSurplus(kept, keptCount-target)
	case keptCount < target:
		createFresh(kept, live, group.TaskPrefix, target-keptCount)
	}

	if len(live) > 1 {
		s.rebalance(kept, live)
	}

	return kept, nil
}

// targetTaskCount computes how many tasks a group should have: the
// configured count for partition-sharded groups, otherwise that count
// clamped to the number of live instances.
func (s *StickyMulticast) targetTaskCount(group types.DatastreamGroup, live []string) int {
	numTasks := group.NumTasks
	if numTasks <= 0 {
		numTasks = s.defaultMaxTasks
	}
	if numTasks <= 0 {
		numTasks = 1
	}

	if group.PartitionSharded {
		return numTasks
	}

	if len(live) == 0 {
		return 0
	}

	return clampInt(numTasks, 1, len(live))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sortTasksByName(byInstance map[string][]types.Task) {
	for instance, tasks := range byInstance {
		sorted := slices.Clone(tasks)
		slices.SortFunc(sorted, func(a, b types.Task) int { return strings.Compare(a.Name, b.Name) })
		byInstance[instance] = sorted
	}
}

func countTasks(byInstance map[string][]types.Task) int {
	total := 0
	for _, tasks := range byInstance {
		total += len(tasks)
	}
	return total
}

// heaviestInstance returns the live instance with the most tasks in byInstance,
// breaking ties by lexicographically smallest instance name.
func heaviestInstance(byInstance map[string][]types.Task, live []string) string {
	best := ""
	bestCount := -1
	for _, instance := range live {
		count := len(byInstance[instance])
		if count > bestCount || (count == bestCount && instance < best) {
			best = instance
			bestCount = count
		}
	}
	return best
}

// lightestInstance returns the live instance with the fewest tasks in byInstance,
// breaking ties by lexicographically smallest instance name.
func lightestInstance(byInstance map[string][]types.Task, live []string) string {
	best := ""
	bestCount := -1
	for _, instance := range live {
		count := len(byInstance[instance])
		if bestCount == -1 || count < bestCount || (count == bestCount && instance < best) {
			best = instance
			bestCount = count
		}
	}
	return best
}

// dropSurplus removes n tasks total, always taking the next one from
// whichever live instance currently holds the most.
func dropSurplus(byInstance map[string][]types.Task, n int) {
	for i := 0; i < n; i++ {
		instances := make([]string, 0, len(byInstance))
		for instance, tasks := range byInstance {
			if len(tasks) > 0 {
				instances = append(instances, instance)
			}
		}
		if len(instances) == 0 {
			return
		}
		slices.Sort(instances)

		heaviest := instances[0]
		for _, instance := range instances[1:] {
			if len(byInstance[instance]) > len(byInstance[heaviest]) {
				heaviest = instance
			}
		}

		tasks := byInstance[heaviest]
		byInstance[heaviest] = tasks[:len(tasks)-1]
	}
}

// createFresh mints n brand-new tasks, placing each on the currently
// least-loaded live instance, recomputing load after every placement so
// a run of creations spreads out.
func createFresh(byInstance map[string][]types.Task, live []string, taskPrefix string, n int) {
	for i := 0; i < n; i++ {
		instance := lightestInstance(byInstance, live)
		if instance == "" {
			return
		}

		task := types.NewTask(taskPrefix)
		task.LockOwner = instance
		byInstance[instance] = append(byInstance[instance], task)
	}
}

// rebalance repeatedly moves one task from the busiest live instance to
// the idlest, by minting a successor owned by the idlest instance and
// recording the predecessor as its dependency, until the two differ by
// no more than the configured imbalance threshold.
func (s *StickyMulticast) rebalance(byInstance map[string][]types.Task, live []string) {
	for {
		heaviest := heaviestInstance(byInstance, live)
		lightest := lightestInstance(byInstance, live)
		if heaviest == "" || lightest == "" || heaviest == lightest {
			return
		}

		if len(byInstance[heaviest])-len(byInstance[lightest]) <= s.imbalanceThreshold {
			return
		}

		tasks := byInstance[heaviest]
		moved := tasks[len(tasks)-1]
		byInstance[heaviest] = tasks[:len(tasks)-1]

		successor := moved.NewSuccessor(moved.Partitions)
		successor.LockOwner = lightest
		byInstance[lightest] = append(byInstance[lightest], successor)
	}
}
