package election

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClient is a minimal in-memory store.Client sufficient to exercise
// election's sequential-node ordering logic without a real ZooKeeper
// ensemble.
type fakeClient struct {
	mu    sync.Mutex
	nodes map[string][]byte
	seq   int
}

func newFakeClient() *fakeClient {
	return &fakeClient{nodes: map[string][]byte{}}
}

func (f *fakeClient) Get(_ context.Context, nodePath string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.nodes[nodePath], nil
}

func (f *fakeClient) GetJSON(context.Context, string, any) error { return nil }

func (f *fakeClient) Exists(_ context.Context, nodePath string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.nodes[nodePath]

	return ok, nil
}

func (f *fakeClient) Children(_ context.Context, nodePath string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefix := strings.TrimSuffix(nodePath, "/") + "/"

	var out []string
	for p := range f.nodes {
		if rest, ok := strings.CutPrefix(p, prefix); ok && !strings.Contains(rest, "/") {
			out = append(out, rest)
		}
	}
	sort.Strings(out)

	return out, nil
}

func (f *fakeClient) EnsurePath(context.Context, string) error { return nil }

func (f *fakeClient) Create(_ context.Context, nodePath string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nodes[nodePath] = data

	return nil
}

func (f *fakeClient) CreateJSON(context.Context, string, any) error { return nil }

func (f *fakeClient) CreateEphemeralSequential(_ context.Context, parentPath string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	created := fmt.Sprintf("%s/instance-%010d", strings.TrimSuffix(parentPath, "/"), f.seq)
	f.nodes[created] = data

	return created, nil
}

func (f *fakeClient) Delete(_ context.Context, nodePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.nodes, nodePath)

	return nil
}

func (f *fakeClient) DeleteChildren(context.Context, string) error { return nil }

func (f *fakeClient) Close() error { return nil }

func TestZKElectionFirstCandidateBecomesLeaderImmediately(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	agent := NewZKElection(client, "/prod/liveinstances", 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, agent.Campaign(ctx, "instance1"))

	leader, err := agent.IsLeader(ctx)
	require.NoError(t, err)
	require.True(t, leader)
}

func TestZKElectionSecondCandidateWaitsUntilFirstResigns(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	first := NewZKElection(client, "/prod/liveinstances", 10*time.Millisecond)
	second := NewZKElection(client, "/prod/liveinstances", 10*time.Millisecond)

	ctx := context.Background()
	require.NoError(t, first.Campaign(ctx, "instance1"))

	leader, err := second.IsLeader(context.Background())
	require.ErrorIs(t, err, ErrNotCampaigning)
	require.False(t, leader)

	done := make(chan error, 1)
	go func() {
		done <- second.Campaign(context.Background(), "instance2")
	}()

	// second should not become leader while first is still registered.
	select {
	case err := <-done:
		t.Fatalf("second campaigned successfully before first resigned: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, first.Resign(context.Background()))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("second never became leader after first resigned")
	}

	leader, err = second.IsLeader(context.Background())
	require.NoError(t, err)
	require.True(t, leader)
}

func TestZKElectionResignWithoutCampaignIsError(t *testing.T) {
	t.Parallel()

	agent := NewZKElection(newFakeClient(), "/prod/liveinstances", 10*time.Millisecond)

	require.ErrorIs(t, agent.Resign(context.Background()), ErrNotCampaigning)
}

func TestZKElectionCampaignRespectsContextCancellation(t *testing.T) {
	t.Parallel()

	client := newFakeClient()
	first := NewZKElection(client, "/prod/liveinstances", 10*time.Millisecond)
	second := NewZKElection(client, "/prod/liveinstances", 10*time.Millisecond)

	require.NoError(t, first.Campaign(context.Background(), "instance1"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := second.Campaign(ctx, "instance2")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
