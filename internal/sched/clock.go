package sched

import (
	"context"
	"time"
)

// Clock abstracts timer creation so pacing-sensitive components can be tested
// without real wall-clock waits.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker is a cancellable recurring timer handle. Stop tears the ticker down
// deterministically: no ticks are delivered after Stop returns.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Sleep waits for d on the given clock, returning early with ctx.Err() if the
// context is cancelled first.
func Sleep(ctx context.Context, clock Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-clock.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RealClock delegates to the time package.
type RealClock struct{}

// NewReal returns a Clock backed by real timers.
func NewReal() RealClock { return RealClock{} }

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func (RealClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (rt *realTicker) Chan() <-chan time.Time { return rt.t.C }

func (rt *realTicker) Stop() { rt.t.Stop() }
