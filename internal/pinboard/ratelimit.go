package pinboard

import (
	"context"
	"sync"
	"time"
)

// Limiter enforces a minimum spacing between the start of consecutive
// upstream calls. Pinboard asks clients to stay at one request every three
// seconds; the interval is configurable so tests can shrink it.
//
// Acquire anchors against call initiation: the last-call time is recorded
// when Acquire returns, so jitter from its own blocking folds into the next
// interval. The zero last-call time means "never called".
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Acquire blocks until at least the configured interval has passed since the
// previous call, then records now as the new last-call time. The only failure
// mode is context cancellation while waiting; the last-call time is left
// untouched in that case since no upstream call follows.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		if remaining := l.interval - l.now().Sub(l.last); remaining > 0 {
			if err := l.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}
	l.last = l.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
