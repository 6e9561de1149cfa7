// Package ratelimit provides client-side rate limiting strategies for the
// Hudu API. Hudu documents a hard limit of 300 requests per minute; the
// sliding-window limiter guarantees that bound, the token-bucket variant
// trades strictness for smoother pacing.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxCalls is the documented Hudu API quota.
	DefaultMaxCalls = 300
	// DefaultWindow is the quota window.
	DefaultWindow = time.Minute
)

// SlidingWindow admits at most maxCalls calls in any trailing window. State
// is an ordered slice of call timestamps guarded by a mutex; the
// read-prune-append sequence under the lock is what keeps the invariant
// under concurrent callers.
type SlidingWindow struct {
	mu       sync.Mutex
	maxCalls int
	window   time.Duration
	stamps   []time.Time

	now func() time.Time // overridable in tests
}

// NewSlidingWindow creates a limiter admitting maxCalls per window.
func NewSlidingWindow(maxCalls int, window time.Duration) (*SlidingWindow, error) {
	if maxCalls <= 0 {
		return nil, errors.Newf("max calls must be positive, got %d", maxCalls)
	}
	if window <= 0 {
		return nil, errors.Newf("window must be positive, got %s", window)
	}

	return &SlidingWindow{
		maxCalls: maxCalls,
		window:   window,
		stamps:   make([]time.Time, 0, maxCalls),
		now:      time.Now,
	}, nil
}

// Default returns a limiter with the documented Hudu quota of 300 calls per
// 60-second window.
func Default() *SlidingWindow {
	l, err := NewSlidingWindow(DefaultMaxCalls, DefaultWindow)
	if err != nil {
		panic(err) // constants are valid
	}
	return l
}

// Wait blocks until a call may proceed without exceeding the quota, then
// records the current timestamp. It returns early with the context error if
// ctx is canceled during the wait.
//
// Other callers may slip in while this one sleeps, so the admission check
// loops until the caller wins a slot.
func (l *SlidingWindow) Wait(ctx context.Context) error {
	for {
		delay, ok := l.tryAcquire()
		if ok {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrap(ctx.Err(), "context canceled during rate limit wait")
		}
	}
}

// tryAcquire prunes expired timestamps and either records the call or
// reports how long until the oldest remaining timestamp leaves the window.
func (l *SlidingWindow) tryAcquire() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	keep := 0
	for keep < len(l.stamps) && !l.stamps[keep].After(cutoff) {
		keep++
	}
	if keep > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[keep:]...)
	}

	if len(l.stamps) < l.maxCalls {
		l.stamps = append(l.stamps, now)
		return 0, true
	}

	delay := l.window - now.Sub(l.stamps[0])
	if delay <= 0 {
		delay = time.Millisecond
	}
	return delay, false
}

// InFlight returns the number of recorded calls still inside the window.
func (l *SlidingWindow) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	n := 0
	for _, ts := range l.stamps {
		if ts.After(cutoff) {
			n++
		}
	}
	return n
}

// PerMinute creates a token-bucket limiter replenishing at
// requestsPerMinute/60 tokens per second with burst capacity equal to
// requestsPerMinute. Unlike SlidingWindow it can briefly exceed the
// per-window quota after an idle period; use it when the upstream limit is
// advisory rather than enforced.
func PerMinute(requestsPerMinute int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
}
