// Package ratelimit provides a sliding-window request limiter for quota-bound
// upstream APIs. At most maxRequests admissions are granted within any trailing
// window; callers block in Admit until admission is safe.
//
// The limiter enforces only the aggregate cap. It makes no fairness or FIFO
// promise across concurrent waiters: a later caller whose re-check fires first
// may be admitted ahead of an earlier one.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// boundaryBuffer pads the computed wait so a request issued right at the window
// edge is not immediately rejected again by clock granularity.
const boundaryBuffer = 100 * time.Millisecond

// Limiter admits at most maxRequests calls per trailing window.
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu         sync.Mutex
	admissions []time.Time

	// now is swappable for tests.
	now func() time.Time
}

// New creates a Limiter. maxRequests must be positive and window must be a
// positive duration; zero values would make every Admit wait forever.
func New(maxRequests int, window time.Duration) (*Limiter, error) {
	if maxRequests <= 0 {
		return nil, fmt.Errorf("invalid maxRequests %d: must be positive", maxRequests)
	}
	if window <= 0 {
		return nil, fmt.Errorf("invalid window %v: must be positive", window)
	}
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}, nil
}

// Admit blocks until issuing one more request keeps the trailing window under
// the cap, then records the admission. The only failure mode is context
// cancellation; the limiter itself never rejects.
func (l *Limiter) Admit(ctx context.Context) error {
	for {
		wait, admitted := l.tryAdmit()
		if admitted {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			// Re-evaluate: time has passed and other waiters may have been
			// admitted while we slept.
		}
	}
}

// tryAdmit purges stale admissions and either records a new one or reports how
// long to wait before the oldest retained admission leaves the window.
func (l *Limiter) tryAdmit() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.purge(now)

	if len(l.admissions) >= l.maxRequests {
		oldest := l.admissions[0]
		return l.window - now.Sub(oldest) + boundaryBuffer, false
	}

	l.admissions = append(l.admissions, now)
	return 0, true
}

// Remaining reports how many admissions are still available in the current
// trailing window. Observability only; it is always in [0, maxRequests].
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purge(l.now())
	return l.maxRequests - len(l.admissions)
}

// purge drops admissions older than the window. Caller must hold mu.
func (l *Limiter) purge(now time.Time) {
	kept := l.admissions[:0]
	for _, t := range l.admissions {
		if now.Sub(t) < l.window {
			kept = append(kept, t)
		}
	}
	l.admissions = kept
}
