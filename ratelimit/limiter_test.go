package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestMemoryStoreLimiterBlocksOverLimit(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("request %d: unexpected error: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("4th request should be blocked")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}

	// Another client is unaffected.
	allowed, _, err = limiter.Allow(ctx, "10.0.0.2")
	if err != nil || !allowed {
		t.Fatalf("other client should be allowed, got allowed=%v err=%v", allowed, err)
	}
}

func TestMemoryStoreWindowResets(t *testing.T) {
	store := NewMemoryStore()
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	limiter := NewLimiter(store, 1, time.Minute)
	ctx := context.Background()

	if allowed, _, _ := limiter.Allow(ctx, "ip"); !allowed {
		t.Fatal("first request should be allowed")
	}
	if allowed, _, _ := limiter.Allow(ctx, "ip"); allowed {
		t.Fatal("second request in window should be blocked")
	}

	now = now.Add(2 * time.Minute)
	if allowed, _, _ := limiter.Allow(ctx, "ip"); !allowed {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestRedisStoreLimiter(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	limiter := NewLimiter(NewRedisStore(client), 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, err := limiter.Allow(ctx, "203.0.113.9")
		if err != nil {
			t.Fatalf("request %d: unexpected error: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "203.0.113.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("3rd request should be blocked")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}

	mr.FastForward(2 * time.Minute)

	allowed, _, err = limiter.Allow(ctx, "203.0.113.9")
	if err != nil {
		t.Fatalf("unexpected error after window: %v", err)
	}
	if !allowed {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestLimiterZeroLimitAllowsEverything(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 0, time.Minute)

	for i := 0; i < 10; i++ {
		allowed, _, err := limiter.Allow(context.Background(), "ip")
		if err != nil || !allowed {
			t.Fatalf("request %d: allowed=%v err=%v", i+1, allowed, err)
		}
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return mr, client
}
