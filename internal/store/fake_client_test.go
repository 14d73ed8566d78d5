package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

// fakeClient is an in-memory Client used to test ZKStore's node-layout
// logic without a real ZooKeeper ensemble.
type fakeClient struct {
	mu    sync.Mutex
	nodes map[string][]byte
	seq   int
}

func newFakeClient() *fakeClient {
	return &fakeClient{nodes: map[string][]byte{"/": nil}}
}

func (f *fakeClient) Get(_ context.Context, nodePath string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.nodes[nodePath]
	if !ok {
		return nil, fmt.Errorf("node does not exist: %s", nodePath)
	}

	return data, nil
}

func (f *fakeClient) GetJSON(ctx context.Context, nodePath string, out any) error {
	data, err := f.Get(ctx, nodePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

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

	seen := make(map[string]struct{})
	for p := range f.nodes {
		if !strings.HasPrefix(p, prefix) {
			continue
		}

		rest := strings.TrimPrefix(p, prefix)
		if rest == "" {
			continue
		}

		child, _, _ := strings.Cut(rest, "/")
		seen[child] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for child := range seen {
		out = append(out, child)
	}
	sort.Strings(out)

	return out, nil
}

func (f *fakeClient) EnsurePath(_ context.Context, nodePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ensureLocked(nodePath)

	return nil
}

func (f *fakeClient) ensureLocked(nodePath string) {
	if nodePath == "" || nodePath == "/" {
		f.nodes["/"] = nil
		return
	}

	if _, ok := f.nodes[nodePath]; ok {
		return
	}

	f.ensureLocked(path.Dir(nodePath))
	f.nodes[nodePath] = nil
}

func (f *fakeClient) Create(_ context.Context, nodePath string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ensureLocked(path.Dir(nodePath))
	f.nodes[nodePath] = data

	return nil
}

func (f *fakeClient) CreateJSON(ctx context.Context, nodePath string, obj any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return f.Create(ctx, nodePath, data)
}

func (f *fakeClient) CreateEphemeralSequential(_ context.Context, parentPath string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ensureLocked(parentPath)
	f.seq++
	created := fmt.Sprintf("%s/seq-%010d", strings.TrimSuffix(parentPath, "/"), f.seq)
	f.nodes[created] = data

	return created, nil
}

func (f *fakeClient) Delete(_ context.Context, nodePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.nodes, nodePath)

	return nil
}

func (f *fakeClient) DeleteChildren(ctx context.Context, parentPath string) error {
	children, err := f.Children(ctx, parentPath)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, child := range children {
		delete(f.nodes, parentPath+"/"+child)
	}

	return nil
}

func (f *fakeClient) Close() error {
	return nil
}
