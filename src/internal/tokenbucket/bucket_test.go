// FILE: logtools/src/internal/tokenbucket/bucket_test.go
package tokenbucket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestAllow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	tb := newWithClock(2, 1, clock.now)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow(), "burst exhausted")

	clock.advance(time.Second)
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	clock.advance(10 * time.Second)
	assert.InDelta(t, 2.0, tb.Tokens(), 1e-9, "refill is capped at capacity")
}

func TestReserve(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	tb := newWithClock(1, 4, clock.now)

	assert.Equal(t, time.Duration(0), tb.Reserve(1))
	assert.Equal(t, 250*time.Millisecond, tb.Reserve(1))
	assert.Equal(t, 500*time.Millisecond, tb.Reserve(1), "reservations queue")

	clock.advance(500 * time.Millisecond)
	assert.InDelta(t, 0.0, tb.Tokens(), 1e-9)
}

func TestClockBackwards(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	tb := newWithClock(1, 1, clock.now)
	tb.Allow()

	clock.advance(-time.Hour)
	assert.InDelta(t, 0.0, tb.Tokens(), 1e-9)
	clock.advance(time.Second)
	assert.InDelta(t, 1.0, tb.Tokens(), 1e-9)
}

func TestWait(t *testing.T) {
	tb := New(1, 1000)
	assert.Equal(t, time.Duration(0), tb.Wait())
	assert.LessOrEqual(t, tb.Wait(), 2*time.Millisecond)
}
