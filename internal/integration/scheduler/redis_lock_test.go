// Package scheduler runs the periodic ledger jobs.
package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newLockPair(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLock(t *testing.T) {
	ctx := context.Background()

	t.Run("acquire and release round trip", func(t *testing.T) {
		_, client := newLockPair(t)
		lock := NewRedisLock(client)

		ok, err := lock.Acquire(ctx, "recurring-tick", time.Minute)
		if err != nil {
			t.Fatalf("acquire failed: %v", err)
		}
		if !ok {
			t.Fatal("expected to acquire a free lease")
		}

		if err := lock.Release(ctx, "recurring-tick"); err != nil {
			t.Fatalf("release failed: %v", err)
		}

		ok, err = lock.Acquire(ctx, "recurring-tick", time.Minute)
		if err != nil {
			t.Fatalf("re-acquire failed: %v", err)
		}
		if !ok {
			t.Error("expected the released lease to be free again")
		}
	})

	t.Run("held lease is denied to another holder", func(t *testing.T) {
		_, client := newLockPair(t)
		first := NewRedisLock(client)
		second := NewRedisLock(client)

		if ok, _ := first.Acquire(ctx, "budget-alerts", time.Minute); !ok {
			t.Fatal("expected the first holder to acquire")
		}

		ok, err := second.Acquire(ctx, "budget-alerts", time.Minute)
		if err != nil {
			t.Fatalf("acquire failed: %v", err)
		}
		if ok {
			t.Error("expected the second holder to be denied")
		}
	})

	t.Run("release does not steal a foreign lease", func(t *testing.T) {
		_, client := newLockPair(t)
		holder := NewRedisLock(client)
		intruder := NewRedisLock(client)

		if ok, _ := holder.Acquire(ctx, "monthly-report", time.Minute); !ok {
			t.Fatal("expected to acquire a free lease")
		}

		if err := intruder.Release(ctx, "monthly-report"); err != nil {
			t.Fatalf("release failed: %v", err)
		}

		// The holder's lease must survive the intruder's release.
		if ok, _ := intruder.Acquire(ctx, "monthly-report", time.Minute); ok {
			t.Error("expected the lease to still be held")
		}
	})

	t.Run("lease expires after its TTL", func(t *testing.T) {
		mr, client := newLockPair(t)
		first := NewRedisLock(client)
		second := NewRedisLock(client)

		if ok, _ := first.Acquire(ctx, "recurring-tick", time.Minute); !ok {
			t.Fatal("expected to acquire a free lease")
		}

		mr.FastForward(2 * time.Minute)

		ok, err := second.Acquire(ctx, "recurring-tick", time.Minute)
		if err != nil {
			t.Fatalf("acquire failed: %v", err)
		}
		if !ok {
			t.Error("expected the expired lease to be acquirable")
		}
	})

	t.Run("leases are independent by name", func(t *testing.T) {
		_, client := newLockPair(t)
		lock := NewRedisLock(client)
		other := NewRedisLock(client)

		if ok, _ := lock.Acquire(ctx, "recurring-tick", time.Minute); !ok {
			t.Fatal("expected to acquire recurring-tick")
		}
		if ok, _ := other.Acquire(ctx, "budget-alerts", time.Minute); !ok {
			t.Error("expected budget-alerts to be free")
		}
	})
}

func TestNoopLock(t *testing.T) {
	ctx := context.Background()
	lock := NoopLock{}

	for i := 0; i < 3; i++ {
		ok, err := lock.Acquire(ctx, "recurring-tick", time.Minute)
		if err != nil || !ok {
			t.Fatalf("expected the noop lock to always grant, got ok=%v err=%v", ok, err)
		}
	}
	if err := lock.Release(ctx, "recurring-tick"); err != nil {
		t.Errorf("expected release to be a no-op, got %v", err)
	}
}
