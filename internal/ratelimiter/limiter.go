package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// pruneThreshold is the map size above which idle entries are pruned.
	pruneThreshold = 500
	maxIdle        = 10 * time.Minute
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPLimiters holds one token bucket per client IP.
// Burst is set equal to the rate so no extra burst capacity is allowed
// beyond the configured per-second maximum.
type IPLimiters struct {
	mu      sync.Mutex
	entries map[string]*entry
	r       rate.Limit
	burst   int
	now     func() time.Time
}

// New creates IPLimiters granting ratePerSec requests per second per IP.
func New(ratePerSec int) *IPLimiters {
	if ratePerSec < 1 {
		ratePerSec = 1
	}
	return &IPLimiters{
		entries: make(map[string]*entry),
		r:       rate.Limit(ratePerSec),
		burst:   ratePerSec,
		now:     time.Now,
	}
}

// Allow reports whether ip may make a request now. It never blocks.
func (l *IPLimiters) Allow(ip string) bool {
	return l.get(ip).AllowN(l.now(), 1)
}

// Len returns the number of tracked IPs.
func (l *IPLimiters) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *IPLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.entries) > pruneThreshold {
		cutoff := now.Add(-maxIdle)
		for k, e := range l.entries {
			if e.lastSeen.Before(cutoff) {
				delete(l.entries, k)
			}
		}
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.r, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}
