// Package store adapts the rebalance engine's types.Store interface onto
// a ZooKeeper-backed hierarchical coordination store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	szk "github.com/samuel/go-zookeeper/zk"
	"github.com/sirupsen/logrus"
)

// Client exposes the subset of ZooKeeper operations the store adapter
// needs, with every call accepting a context so a slow or wedged session
// cannot block a rebalance indefinitely.
//
// Unlike the underlying samuel/go-zookeeper connection, Client recursively
// creates missing parent nodes on write and tolerates re-creation of
// already-existing nodes, since every write path in this package must be
// safe to retry after a leader crash mid-commit.
type Client interface {
	Get(ctx context.Context, nodePath string) ([]byte, error)
	GetJSON(ctx context.Context, nodePath string, out any) error
	Exists(ctx context.Context, nodePath string) (bool, error)
	Children(ctx context.Context, nodePath string) ([]string, error)

	// EnsurePath creates nodePath and every missing ancestor as empty
	// persistent nodes. It is a no-op for a path that already exists.
	EnsurePath(ctx context.Context, nodePath string) error

	// Create writes data to nodePath, creating missing ancestors first.
	// It overwrites the node's contents if the node already exists.
	Create(ctx context.Context, nodePath string, data []byte) error
	CreateJSON(ctx context.Context, nodePath string, obj any) error

	// CreateEphemeralSequential creates an ephemeral, sequentially-named
	// child of parentPath (e.g. for liveness and leader-election nodes)
	// and returns the full path of the node it created.
	CreateEphemeralSequential(ctx context.Context, parentPath string, data []byte) (string, error)

	Delete(ctx context.Context, nodePath string) error

	// DeleteChildren removes every child of parentPath, leaving
	// parentPath itself in place. Deleting a parent with no children is
	// not an error.
	DeleteChildren(ctx context.Context, parentPath string) error

	Close() error
}

var _ Client = (*ZKClient)(nil)

// ZKClient is the default Client implementation, backed by a single
// samuel/go-zookeeper connection.
type ZKClient struct {
	conn *szk.Conn
}

// Dial connects to the ZooKeeper ensemble at addrs and returns a ready
// Client. The returned events channel from the underlying connection is
// drained internally and not exposed; callers that need session-expiry
// notifications should use a Client wrapped with their own watcher, or
// consult Client.Exists against a roster node.
func Dial(addrs []string, sessionTimeout time.Duration) (*ZKClient, error) {
	conn, events, err := szk.Connect(addrs, sessionTimeout, szk.WithLogger(&debugLogger{}))
	if err != nil {
		return nil, fmt.Errorf("connecting to zookeeper: %w", err)
	}

	go func() {
		for range events {
		}
	}()

	return &ZKClient{conn: conn}, nil
}

// debugLogger sends the underlying driver's diagnostic output to logrus
// at debug level instead of the default stderr logger.
type debugLogger struct{}

func (l *debugLogger) Printf(format string, args ...any) {
	logrus.Debugf(format, args...)
}

func (c *ZKClient) Get(ctx context.Context, nodePath string) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}

	resultChan := make(chan result, 1)
	go func() {
		data, _, err := c.conn.Get(nodePath)
		resultChan <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-resultChan:
		return r.data, r.err
	}
}

func (c *ZKClient) GetJSON(ctx context.Context, nodePath string, out any) error {
	data, err := c.Get(ctx, nodePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

func (c *ZKClient) Exists(ctx context.Context, nodePath string) (bool, error) {
	type result struct {
		exists bool
		err    error
	}

	resultChan := make(chan result, 1)
	go func() {
		exists, _, err := c.conn.Exists(nodePath)
		resultChan <- result{exists, err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case r := <-resultChan:
		return r.exists, r.err
	}
}

func (c *ZKClient) Children(ctx context.Context, nodePath string) ([]string, error) {
	type result struct {
		children []string
		err      error
	}

	resultChan := make(chan result, 1)
	go func() {
		children, _, err := c.conn.Children(nodePath)
		if errors.Is(err, szk.ErrNoNode) {
			err = nil
		}
		resultChan <- result{children, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-resultChan:
		return r.children, r.err
	}
}

func (c *ZKClient) EnsurePath(ctx context.Context, nodePath string) error {
	if nodePath == "" || nodePath == "/" {
		return nil
	}

	parent := path.Dir(nodePath)
	if parent != "/" {
		if err := c.EnsurePath(ctx, parent); err != nil {
			return err
		}
	}

	exists, err := c.Exists(ctx, nodePath)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return c.createNode(ctx, nodePath, nil, 0)
}

func (c *ZKClient) Create(ctx context.Context, nodePath string, data []byte) error {
	if err := c.EnsurePath(ctx, path.Dir(nodePath)); err != nil {
		return err
	}

	exists, err := c.Exists(ctx, nodePath)
	if err != nil {
		return err
	}
	if exists {
		return c.setNode(ctx, nodePath, data)
	}

	return c.createNode(ctx, nodePath, data, 0)
}

func (c *ZKClient) CreateJSON(ctx context.Context, nodePath string, obj any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", nodePath, err)
	}

	return c.Create(ctx, nodePath, data)
}

func (c *ZKClient) CreateEphemeralSequential(ctx context.Context, parentPath string, data []byte) (string, error) {
	if err := c.EnsurePath(ctx, parentPath); err != nil {
		return "", err
	}

	type result struct {
		createdPath string
		err         error
	}

	resultChan := make(chan result, 1)
	go func() {
		createdPath, err := c.conn.Create(
			strings.TrimSuffix(parentPath, "/")+"/",
			data,
			szk.FlagEphemeral|szk.FlagSequence,
			szk.WorldACL(szk.PermAll),
		)
		resultChan <- result{createdPath, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-resultChan:
		return r.createdPath, r.err
	}
}

func (c *ZKClient) Delete(ctx context.Context, nodePath string) error {
	errChan := make(chan error, 1)
	go func() {
		err := c.conn.Delete(nodePath, -1)
		if errors.Is(err, szk.ErrNoNode) {
			err = nil
		}
		errChan <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

func (c *ZKClient) DeleteChildren(ctx context.Context, parentPath string) error {
	children, err := c.Children(ctx, parentPath)
	if err != nil {
		return err
	}

	for _, child := range children {
		if err := c.Delete(ctx, parentPath+"/"+child); err != nil {
			return fmt.Errorf("deleting %s/%s: %w", parentPath, child, err)
		}
	}

	return nil
}

func (c *ZKClient) Close() error {
	c.conn.Close()
	return nil
}

func (c *ZKClient) createNode(ctx context.Context, nodePath string, data []byte, flags int32) error {
	errChan := make(chan error, 1)
	go func() {
		_, err := c.conn.Create(nodePath, data, flags, szk.WorldACL(szk.PermAll))
		if errors.Is(err, szk.ErrNodeExists) {
			err = nil
		}
		errChan <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}

func (c *ZKClient) setNode(ctx context.Context, nodePath string, data []byte) error {
	errChan := make(chan error, 1)
	go func() {
		_, err := c.conn.Set(nodePath, data, -1)
		errChan <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	}
}
