package kv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	fail   bool
}

func (m *memCounter) incrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return 0, errors.New("connection refused")
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memCounter) del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counts, key)
	return nil
}

func TestThrottleLimitsAndResets(t *testing.T) {
	mem := &memCounter{counts: map[string]int64{}}
	th := &Throttle{store: mem, limit: 2, window: time.Minute}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, err := th.Allow(ctx, "ada@example.com"); err != nil || !ok {
			t.Fatalf("attempt %d should pass: %v %v", i+1, ok, err)
		}
	}
	if ok, _ := th.Allow(ctx, "ada@example.com"); ok {
		t.Fatalf("third attempt should be throttled")
	}
	if ok, _ := th.Allow(ctx, "bob@example.com"); !ok {
		t.Fatalf("other keys are counted separately")
	}
	if err := th.Reset(ctx, "ada@example.com"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if ok, _ := th.Allow(ctx, "ada@example.com"); !ok {
		t.Fatalf("reset should clear the counter")
	}
}

func TestThrottleDisabledAndFailOpen(t *testing.T) {
	th, err := NewThrottle("", 1, time.Minute)
	if err != nil {
		t.Fatalf("NewThrottle: %v", err)
	}
	for i := 0; i < 5; i++ {
		if ok, err := th.Allow(context.Background(), "x"); !ok || err != nil {
			t.Fatalf("disabled throttle must allow: %v %v", ok, err)
		}
	}
	if err := th.Ping(context.Background()); err != nil {
		t.Fatalf("Ping without redis: %v", err)
	}

	failing := &Throttle{store: &memCounter{counts: map[string]int64{}, fail: true}, limit: 1, window: time.Minute}
	if ok, err := failing.Allow(context.Background(), "x"); !ok || err != nil {
		t.Fatalf("redis failure must fail open: %v %v", ok, err)
	}

	if _, err := NewThrottle("not a url", 1, time.Minute); err == nil {
		t.Fatalf("expected parse error")
	}
}
