package election

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/jaidparmar/brooklin/internal/store"
	"github.com/jaidparmar/brooklin/types"
)

// ErrNotCampaigning is returned by Resign and IsLeader when Campaign has
// never been called, or has not yet created this instance's node.
var ErrNotCampaigning = errors.New("election: Campaign has not been called")

// ZKElection implements types.ElectionAgent using an ephemeral sequential
// node per candidate under a shared parent path: the candidate whose node
// carries the smallest sequence number holds leadership. Session expiry
// removes the node automatically, so a crashed leader's seat is freed
// without any explicit lease renewal.
//
// All fields are protected by mu for safe concurrent use by Campaign's
// polling loop and IsLeader/Resign calls from other goroutines.
type ZKElection struct {
	client       store.Client
	parentPath   string
	pollInterval time.Duration

	mu       sync.Mutex
	ownPath  string
	isLeader bool
}

var _ types.ElectionAgent = (*ZKElection)(nil)

// NewZKElection creates an election agent whose candidates register
// under parentPath (typically Paths.LiveInstances()).
func NewZKElection(client store.Client, parentPath string, pollInterval time.Duration) *ZKElection {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}

	return &ZKElection{client: client, parentPath: parentPath, pollInterval: pollInterval}
}

// Campaign creates instanceName's ephemeral sequential node and then polls
// the parent path's children until either this instance's node carries
// the smallest sequence number or ctx is cancelled.
func (e *ZKElection) Campaign(ctx context.Context, instanceName string) error {
	ownPath, err := e.client.CreateEphemeralSequential(ctx, e.parentPath, []byte(instanceName))
	if err != nil {
		return fmt.Errorf("creating election node for %s: %w", instanceName, err)
	}

	e.mu.Lock()
	e.ownPath = ownPath
	e.mu.Unlock()

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		leader, err := e.checkLeadership(ctx)
		if err != nil {
			return err
		}
		if leader {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// IsLeader reports whether this instance currently holds the smallest
// sequence number among the registered candidates. It re-checks the
// store rather than trusting cached state, since another candidate's
// node could disappear (or our own session could expire) between calls.
func (e *ZKElection) IsLeader(ctx context.Context) (bool, error) {
	e.mu.Lock()
	ownPath := e.ownPath
	e.mu.Unlock()

	if ownPath == "" {
		return false, ErrNotCampaigning
	}

	return e.checkLeadership(ctx)
}

// Resign deletes this instance's election node, immediately freeing its
// seat for the next-smallest candidate rather than waiting for session
// expiry.
func (e *ZKElection) Resign(ctx context.Context) error {
	e.mu.Lock()
	ownPath := e.ownPath
	e.mu.Unlock()

	if ownPath == "" {
		return ErrNotCampaigning
	}

	if err := e.client.Delete(ctx, ownPath); err != nil {
		return fmt.Errorf("deleting election node %s: %w", ownPath, err)
	}

	e.mu.Lock()
	e.ownPath = ""
	e.isLeader = false
	e.mu.Unlock()

	return nil
}

func (e *ZKElection) checkLeadership(ctx context.Context) (bool, error) {
	e.mu.Lock()
	ownPath := e.ownPath
	e.mu.Unlock()

	if ownPath == "" {
		return false, ErrNotCampaigning
	}

	children, err := e.client.Children(ctx, e.parentPath)
	if err != nil {
		return false, fmt.Errorf("listing election candidates: %w", err)
	}
	sort.Strings(children)

	// ZooKeeper zero-pads sequential suffixes to a fixed width, so
	// lexicographic and numeric ordering of sibling node names coincide.
	ownName := path.Base(ownPath)
	leader := len(children) > 0 && children[0] == ownName

	e.mu.Lock()
	e.isLeader = leader
	e.mu.Unlock()

	return leader, nil
}
