// Package ratelimit provides a token-bucket limiter keyed by caller
// identity. The ops API keys it by remote IP, the chat transport by chat
// ID; both share the same bucket-per-key bookkeeping.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Keyed hands out one token bucket per key and evicts buckets idle longer
// than the retention period, so one-off callers do not accumulate.
type Keyed[K comparable] struct {
	mu        sync.Mutex
	entries   map[K]*entry
	r         rate.Limit
	burst     int
	retention time.Duration
	stop      chan struct{}
}

// NewKeyed creates a limiter allowing r events/second with the given burst
// per key. Buckets unused for retention are evicted.
func NewKeyed[K comparable](r rate.Limit, burst int, retention time.Duration) *Keyed[K] {
	k := &Keyed[K]{
		entries:   make(map[K]*entry),
		r:         r,
		burst:     burst,
		retention: retention,
		stop:      make(chan struct{}),
	}
	go k.evict()
	return k
}

// Allow reports whether key may emit another event right now.
func (k *Keyed[K]) Allow(key K) bool {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(k.r, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = time.Now()
	k.mu.Unlock()
	return e.limiter.Allow()
}

// Close stops the eviction goroutine.
func (k *Keyed[K]) Close() {
	close(k.stop)
}

func (k *Keyed[K]) evict() {
	ticker := time.NewTicker(k.retention / 2)
	defer ticker.Stop()
	for {
		select {
		case <-k.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-k.retention)
			k.mu.Lock()
			for key, e := range k.entries {
				if e.lastSeen.Before(cutoff) {
					delete(k.entries, key)
				}
			}
			k.mu.Unlock()
		}
	}
}
