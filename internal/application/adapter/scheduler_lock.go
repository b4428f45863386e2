// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// SchedulerLock guards scheduler ticks against overlapping runs across
// processes. The tick use cases are idempotent on their own; the lock only
// avoids wasted duplicate work when several instances share one store.
type SchedulerLock interface {
	// Acquire tries to take a lease with the given name. It returns false
	// without error when another holder currently owns the lease.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release gives up a held lease. Releasing an expired lease is a no-op.
	Release(ctx context.Context, name string) error
}
