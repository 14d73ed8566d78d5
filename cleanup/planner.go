package cleanup

import (
	"context"
	"slices"
	"strings"

	"github.com/jaidparmar/brooklin/types"
)

// DependencyPlanner implements types.CleanupPlanner: a task is removable
// once it is named in the dependency set of some task that is still
// current, and the task itself no longer appears in the current
// assignment. This covers the case where a prior leader crashed
// mid-commit, leaving intermediate predecessor tasks in the store after
// their successors already went live.
type DependencyPlanner struct{}

var _ types.CleanupPlanner = (*DependencyPlanner)(nil)

// NewDependencyPlanner builds a DependencyPlanner. It holds no state;
// every call to Plan is independent.
func NewDependencyPlanner() *DependencyPlanner {
	return &DependencyPlanner{}
}

// Plan returns, for each instance, the predecessor tasks safe to remove
// from the coordination store. previous supplies the task records for
// any dependency name no longer present in current — a removable task is
// always looked up there, since current by definition no longer holds it.
func (p *DependencyPlanner) Plan(ctx context.Context, groups []types.DatastreamGroup, previous, current types.Assignment) map[string][]types.Task {
	removable := make(map[string][]types.Task)

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return removable
		}

		prefix := group.TaskPrefix
		currentTasks := current.GroupTasks(prefix)

		currentNames := make(map[string]bool, len(currentTasks))
		for _, t := range currentTasks {
			currentNames[t.Name] = true
		}

		var depNames []string
		for _, t := range currentTasks {
			depNames = append(depNames, t.Dependencies...)
		}
		slices.Sort(depNames)
		depNames = slices.Compact(depNames)

		for _, name := range depNames {
			if currentNames[name] {
				continue // predecessor is itself still current; not yet safe
			}

			task, instance, ok := previous.TaskByName(name)
			if !ok {
				continue // no longer in previous either; nothing left to remove
			}

			removable[instance] = append(removable[instance], task)
		}
	}

	for instance := range removable {
		slices.SortFunc(removable[instance], func(a, b types.Task) int { return strings.Compare(a.Name, b.Name) })
	}

	return removable
}
