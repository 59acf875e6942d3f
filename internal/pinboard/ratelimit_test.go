package pinboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives a Limiter without real sleeping. Sleeps advance the clock
// by the requested duration and are recorded.
type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(interval time.Duration, clock *fakeClock) *Limiter {
	l := NewLimiter(interval)
	l.now = clock.Now
	l.sleep = clock.Sleep
	return l
}

func TestLimiterFirstCallDoesNotBlock(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(3*time.Second, clock)

	require.NoError(t, l.Acquire(context.Background()))
	assert.Empty(t, clock.slept)
}

func TestLimiterBlocksForRemainingInterval(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(3*time.Second, clock)

	require.NoError(t, l.Acquire(context.Background()))
	clock.Advance(1 * time.Second)
	require.NoError(t, l.Acquire(context.Background()))

	require.Len(t, clock.slept, 1)
	assert.Equal(t, 2*time.Second, clock.slept[0])
}

func TestLimiterDoesNotBlockAfterIntervalElapsed(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(3*time.Second, clock)

	require.NoError(t, l.Acquire(context.Background()))
	clock.Advance(5 * time.Second)
	require.NoError(t, l.Acquire(context.Background()))

	assert.Empty(t, clock.slept)
}

func TestLimiterEnforcesMinimumSpacing(t *testing.T) {
	// Real clock, tiny interval: the gap between consecutive acquisitions
	// must never undercut the configured interval.
	const interval = 20 * time.Millisecond
	l := NewLimiter(interval)

	var last time.Time
	for i := 0; i < 4; i++ {
		require.NoError(t, l.Acquire(context.Background()))
		now := time.Now()
		if i > 0 {
			assert.GreaterOrEqual(t, now.Sub(last), interval-time.Millisecond)
		}
		last = now
	}
}

func TestLimiterContextCancelled(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(3*time.Second, clock)
	l.sleep = func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	}

	require.NoError(t, l.Acquire(context.Background()))
	recorded := l.last
	clock.Advance(1 * time.Second)

	err := l.Acquire(context.Background())
	require.ErrorIs(t, err, context.Canceled)
	// A cancelled wait makes no upstream call, so the last-call time stays.
	assert.Equal(t, recorded, l.last)
}

func TestLimiterZeroIntervalNeverBlocks(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(0, clock)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Acquire(context.Background()))
	}
	assert.Empty(t, clock.slept)
}
