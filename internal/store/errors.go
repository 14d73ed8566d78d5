package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	szk "github.com/samuel/go-zookeeper/zk"
)

// IsTransient checks whether err indicates a recoverable connectivity
// problem with the coordination store rather than a structural failure
// (bad path, permission denial, malformed data).
//
// Kept in internal/store to avoid leaking a ZooKeeper-specific error
// vocabulary into the orchestrator or types packages.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, szk.ErrConnectionClosed) ||
		errors.Is(err, szk.ErrSessionExpired) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "no servers")
}

// WithRetry calls op until it succeeds, ctx is cancelled, or maxAttempts is
// reached, retrying only when the returned error is transient per
// IsTransient. Backoff doubles from 20ms between attempts.
func WithRetry(ctx context.Context, maxAttempts int, op func(ctx context.Context) error) error {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		lastErr = err

		if !IsTransient(err) {
			return err
		}

		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		}

		if attempt < maxAttempts-1 {
			backoff := time.Duration(1<<uint(attempt)) * 20 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", maxAttempts, lastErr)
}
