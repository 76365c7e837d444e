package sched

import (
	"sync"
	"time"
)

// Fake is a Clock for tests. After fires immediately and records the requested
// duration, so code under test runs at full speed while tests can still assert
// the pacing it asked for. Tickers never fire on their own; tests drive them
// with Fire.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	waits   []time.Duration
	tickers []*FakeTicker
}

// NewFake returns a fake clock anchored at a fixed instant.
func NewFake() *Fake {
	return &Fake{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake clock's notion of now. It does not fire any timers.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *Fake) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.waits = append(f.waits, d)
	f.now = f.now.Add(d)
	now := f.now
	f.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// Waits returns every duration passed to After, in call order.
func (f *Fake) Waits() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.waits))
	copy(out, f.waits)
	return out
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	ft := &FakeTicker{
		interval: d,
		ch:       make(chan time.Time, 1),
		done:     make(chan struct{}),
	}
	f.mu.Lock()
	f.tickers = append(f.tickers, ft)
	f.mu.Unlock()
	return ft
}

// Tickers returns all tickers created so far, in creation order.
func (f *Fake) Tickers() []*FakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*FakeTicker, len(f.tickers))
	copy(out, f.tickers)
	return out
}

// FakeTicker is a manually driven Ticker.
type FakeTicker struct {
	interval time.Duration
	ch       chan time.Time
	done     chan struct{}
	once     sync.Once
}

// Interval reports the requested tick interval.
func (ft *FakeTicker) Interval() time.Duration { return ft.interval }

func (ft *FakeTicker) Chan() <-chan time.Time { return ft.ch }

func (ft *FakeTicker) Stop() {
	ft.once.Do(func() { close(ft.done) })
}

// Stopped reports whether Stop has been called.
func (ft *FakeTicker) Stopped() bool {
	select {
	case <-ft.done:
		return true
	default:
		return false
	}
}

// Fire delivers one tick unless the ticker is stopped or the receiver is not
// ready within the grace window.
func (ft *FakeTicker) Fire(at time.Time) bool {
	select {
	case <-ft.done:
		return false
	default:
	}
	select {
	case ft.ch <- at:
		return true
	case <-time.After(time.Second):
		return false
	}
}
