// FILE: logtools/src/internal/tokenbucket/bucket.go
package tokenbucket

import (
	"sync"
	"time"
)

// TokenBucket paces work to a steady rate with bursts up to its capacity.
type TokenBucket struct {
	capacity   float64
	tokens     float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// New creates a full bucket with given capacity and refill rate.
func New(capacity float64, refillRate float64) *TokenBucket {
	return newWithClock(capacity, refillRate, time.Now)
}

func newWithClock(capacity, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

// Allow attempts to consume one token, returns true if allowed.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Reserve consumes n tokens and returns how long the caller must wait
// before the tokens are actually available. The balance may go negative;
// later reservations queue behind it.
func (tb *TokenBucket) Reserve(n float64) time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	tb.tokens -= n
	if tb.tokens >= 0 {
		return 0
	}
	return time.Duration(-tb.tokens / tb.refillRate * float64(time.Second))
}

// Wait blocks until one token is available and consumes it.
func (tb *TokenBucket) Wait() time.Duration {
	delay := tb.Reserve(1)
	if delay > 0 {
		time.Sleep(delay)
	}
	return delay
}

// Tokens returns the current number of available tokens.
func (tb *TokenBucket) Tokens() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens
}

// refill adds tokens based on time elapsed since last refill.
// MUST be called with mutex held.
func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill).Seconds()

	// Clock went backwards: resync without adding tokens
	if elapsed < 0 {
		elapsed = 0
	}

	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}
