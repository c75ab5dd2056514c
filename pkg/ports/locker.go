package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker defines the interface for distributed concurrency control.
// The engine takes a lock per verdict key before computing a cache miss, so
// that replicas sharing a cache compute each verdict once.
type DistributedLocker interface {
	// Lock acquires a lock for the given key, blocking until it is acquired
	// or the context is canceled. The TTL bounds how long a crashed holder
	// can keep the key.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
