package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jaidparmar/brooklin/types"
)

// ZKStore implements types.Store against a ZooKeeper-backed coordination
// store, using Client for the underlying node operations and Paths for the
// cluster's node layout.
type ZKStore struct {
	client Client
	paths  Paths
}

var _ types.Store = (*ZKStore)(nil)

// NewZKStore returns a ZKStore rooted at /{cluster}.
func NewZKStore(client Client, cluster string) *ZKStore {
	return &ZKStore{client: client, paths: Paths{Cluster: cluster}}
}

// ReadAssignment enumerates every instance node and, for each, every task
// node beneath its assignments child, reconstructing the committed
// assignment.
func (s *ZKStore) ReadAssignment(ctx context.Context) (types.Assignment, error) {
	instances, err := s.client.Children(ctx, s.paths.Instances())
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}

	assignment := make(types.Assignment, len(instances))
	for _, instance := range instances {
		taskNames, err := s.client.Children(ctx, s.paths.InstanceAssignments(instance))
		if err != nil {
			return nil, fmt.Errorf("listing tasks for instance %s: %w", instance, err)
		}

		tasks := make([]types.Task, 0, len(taskNames))
		for _, taskName := range taskNames {
			var task types.Task
			if err := s.client.GetJSON(ctx, s.paths.InstanceTask(instance, taskName), &task); err != nil {
				return nil, fmt.Errorf("reading task %s for instance %s: %w", taskName, instance, err)
			}
			tasks = append(tasks, task)
		}

		if len(tasks) > 0 {
			assignment[instance] = tasks
		}
	}

	return assignment, nil
}

// WriteAssignment persists every task in assignment to its owning
// instance's assignments node and reconciles each instance's existing
// task children against the written set, deleting any that are no
// longer present. This matters for tasks dropped outright by a
// task-count reduction (types.MulticastStrategy's surplus drop creates
// no successor, so nothing else ever tombstones them) as well as for
// instances that lost every task and no longer appear in assignment at
// all. Writes are idempotent: re-running this with the same assignment
// after a crash simply overwrites each task node with identical
// contents and deletes nothing new.
func (s *ZKStore) WriteAssignment(ctx context.Context, assignment types.Assignment) error {
	existingInstances, err := s.client.Children(ctx, s.paths.Instances())
	if err != nil {
		return fmt.Errorf("listing instances: %w", err)
	}

	touched := make(map[string]bool, len(assignment))
	for instance, tasks := range assignment {
		touched[instance] = true

		if err := s.client.EnsurePath(ctx, s.paths.Instance(instance)); err != nil {
			return fmt.Errorf("ensuring instance node for %s: %w", instance, err)
		}

		if err := s.reconcileInstanceTasks(ctx, instance, tasks); err != nil {
			return err
		}

		for _, task := range tasks {
			if err := s.client.CreateJSON(ctx, s.paths.InstanceTask(instance, task.Name), task); err != nil {
				return fmt.Errorf("writing task %s for instance %s: %w", task.Name, instance, err)
			}
		}
	}

	for _, instance := range existingInstances {
		if touched[instance] {
			continue
		}

		if err := s.client.DeleteChildren(ctx, s.paths.InstanceAssignments(instance)); err != nil {
			return fmt.Errorf("clearing stale tasks for instance %s: %w", instance, err)
		}
	}

	return nil
}

// reconcileInstanceTasks deletes every task node under instance's
// assignments parent that is not present in tasks, before the caller
// writes tasks itself.
func (s *ZKStore) reconcileInstanceTasks(ctx context.Context, instance string, tasks []types.Task) error {
	wanted := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		wanted[task.Name] = true
	}

	existingTasks, err := s.client.Children(ctx, s.paths.InstanceAssignments(instance))
	if err != nil {
		return fmt.Errorf("listing existing tasks for instance %s: %w", instance, err)
	}

	for _, taskName := range existingTasks {
		if wanted[taskName] {
			continue
		}

		if err := s.client.Delete(ctx, s.paths.InstanceTask(instance, taskName)); err != nil {
			return fmt.Errorf("removing stale task %s for instance %s: %w", taskName, instance, err)
		}
	}

	return nil
}

// RemoveTasks deletes each named task's node from its instance. Deleting a
// task that no longer exists is not an error, so this is safe to retry.
func (s *ZKStore) RemoveTasks(ctx context.Context, removable map[string][]types.Task) error {
	for instance, tasks := range removable {
		for _, task := range tasks {
			if err := s.client.Delete(ctx, s.paths.InstanceTask(instance, task.Name)); err != nil {
				return fmt.Errorf("removing task %s for instance %s: %w", task.Name, instance, err)
			}
		}
	}

	return nil
}

// ReadOperatorTarget returns the most recently written target assignment
// for connector/group, identified by the largest timestamp child under its
// targetAssignment node.
func (s *ZKStore) ReadOperatorTarget(ctx context.Context, connector, group string) (types.OperatorTargetAssignment, bool, error) {
	children, err := s.client.Children(ctx, s.paths.TargetAssignments(connector, group))
	if err != nil {
		return nil, false, fmt.Errorf("listing target assignments for %s/%s: %w", connector, group, err)
	}

	latest, ok := latestTimestamp(children)
	if !ok {
		return nil, false, nil
	}

	var target types.OperatorTargetAssignment
	if err := s.client.GetJSON(ctx, s.paths.TargetAssignment(connector, group, latest), &target); err != nil {
		return nil, false, fmt.Errorf("reading target assignment for %s/%s: %w", connector, group, err)
	}

	return target, true, nil
}

// ClearOperatorTarget removes every target-assignment request for
// connector/group so that none are reapplied on a subsequent rebalance.
func (s *ZKStore) ClearOperatorTarget(ctx context.Context, connector, group string) error {
	if err := s.client.DeleteChildren(ctx, s.paths.TargetAssignments(connector, group)); err != nil {
		return fmt.Errorf("clearing target assignments for %s/%s: %w", connector, group, err)
	}

	return nil
}

// latestTimestamp parses each child name as a millisecond timestamp and
// returns the largest, ignoring any malformed children left by a writer
// that does not follow the timestamp-named convention.
func latestTimestamp(children []string) (int64, bool) {
	var (
		latest int64
		found  bool
	)

	for _, child := range children {
		ts, err := strconv.ParseInt(child, 10, 64)
		if err != nil {
			continue
		}
		if !found || ts > latest {
			latest = ts
			found = true
		}
	}

	return latest, found
}
