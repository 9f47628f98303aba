package provider

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterAllowsBurst(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if time.Since(start) > 10*time.Millisecond {
		t.Fatalf("burst waits should return immediately")
	}
}

func TestRateLimiterReserveReportsDelay(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	limiter := NewRateLimiter(1, 2*time.Second)
	limiter.lastRefill = base
	limiter.now = func() time.Time { return now }

	if d := limiter.reserve(); d != 0 {
		t.Fatalf("expected immediate token, got %v", d)
	}

	now = base.Add(500 * time.Millisecond)
	if d := limiter.reserve(); d != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s delay, got %v", d)
	}

	now = base.Add(2 * time.Second)
	if d := limiter.reserve(); d != 0 {
		t.Fatalf("expected refilled token, got %v", d)
	}
}

func TestRateLimiterRefillCapsAtMax(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	limiter := NewRateLimiter(2, time.Second)
	limiter.lastRefill = base
	limiter.now = func() time.Time { return now }

	limiter.reserve()
	limiter.reserve()

	now = base.Add(time.Minute)
	limiter.reserve()
	if limiter.tokens != 1 {
		t.Fatalf("expected bucket capped at 2 then one taken, got %d tokens", limiter.tokens)
	}
}

func TestRateLimiterRefill(t *testing.T) {
	limiter := NewRateLimiter(1, 5*time.Millisecond)
	ctx := context.Background()

	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("expected token after refill, got %v", err)
	}
}

func TestRateLimiterHonorsContext(t *testing.T) {
	limiter := NewRateLimiter(1, time.Second)
	ctx := context.Background()
	_ = limiter.Wait(ctx)

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	if err := limiter.Wait(timeoutCtx); err == nil {
		t.Fatal("expected context deadline error")
	}
	if time.Since(start) > 200*time.Millisecond {
		t.Fatalf("wait should stop after context cancellation")
	}
}

func TestRateLimiterClampsRefillInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		limiter := NewRateLimiter(1, interval)
		if limiter.refillInterval != time.Second {
			t.Fatalf("interval %v: expected 1s refill, got %v", interval, limiter.refillInterval)
		}
		limiter.lastRefill = base
		limiter.now = func() time.Time { return base.Add(5 * time.Second) }

		if d := limiter.reserve(); d != 0 {
			t.Fatalf("interval %v: expected token available, got delay %v", interval, d)
		}
	}
}
