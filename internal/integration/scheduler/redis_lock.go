// Package scheduler runs the periodic ledger jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wealthflow/backend/internal/application/adapter"
)

// releaseScript deletes the lease only if this holder still owns it, so a
// slow holder never releases a lease that already expired and was re-taken.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLock implements adapter.SchedulerLock on a Redis lease.
type redisLock struct {
	client  redis.UniversalClient
	ownerID string
}

// NewRedisLock creates a new Redis-backed scheduler lock.
func NewRedisLock(client redis.UniversalClient) adapter.SchedulerLock {
	return &redisLock{
		client:  client,
		ownerID: uuid.NewString(),
	}
}

// Acquire tries to take the named lease with SET NX.
func (l *redisLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(name), l.ownerID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lease %s: %w", name, err)
	}
	return ok, nil
}

// Release gives up a held lease.
func (l *redisLock) Release(ctx context.Context, name string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key(name)}, l.ownerID).Err(); err != nil {
		return fmt.Errorf("failed to release lease %s: %w", name, err)
	}
	return nil
}

func (l *redisLock) key(name string) string {
	return "scheduler:lease:" + name
}

// NoopLock always grants the lease. Used when Redis is not configured and
// only a single instance runs the scheduler.
type NoopLock struct{}

// Acquire always succeeds.
func (NoopLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return true, nil
}

// Release is a no-op.
func (NoopLock) Release(ctx context.Context, name string) error {
	return nil
}

// Ensure implementations satisfy the interface.
var (
	_ adapter.SchedulerLock = (*redisLock)(nil)
	_ adapter.SchedulerLock = NoopLock{}
)
