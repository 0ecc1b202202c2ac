package ratelimiter

import (
	"fmt"
	"testing"
	"time"
)

func TestAllow_PerIPBudget(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New(2)
	l.now = func() time.Time { return fixed }

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("expected the first two requests to pass")
	}
	if l.Allow("10.0.0.1") {
		t.Error("third request within the same instant should be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("a different IP has its own bucket")
	}

	fixed = fixed.Add(time.Second)
	if !l.Allow("10.0.0.1") {
		t.Error("bucket should refill after a second")
	}
}

func TestAllow_PrunesIdleEntries(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	l := New(1)
	l.now = func() time.Time { return now }

	for i := 0; i <= pruneThreshold; i++ {
		l.Allow(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	if got := l.Len(); got != pruneThreshold+1 {
		t.Fatalf("Len() = %d, want %d", got, pruneThreshold+1)
	}

	now = start.Add(maxIdle + time.Minute)
	l.Allow("192.168.1.1")
	if got := l.Len(); got != 1 {
		t.Errorf("Len() after prune = %d, want 1", got)
	}
}

func TestNew_ClampsRate(t *testing.T) {
	l := New(0)
	if !l.Allow("10.0.0.1") {
		t.Error("a zero rate is clamped to one request per second")
	}
}
