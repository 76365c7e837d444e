package ingest

import "sync"

// TopThreshold is the scroll tolerance, in pixels, inside which the view
// still counts as "at the top".
const TopThreshold = 8

// FollowGate decides whether new arrivals may move the viewport. Following is
// on by default, suspends as soon as the viewer scrolls past the threshold,
// and resumes only when they scroll back within it. A manually scrolled
// viewport is never yanked.
type FollowGate struct {
	mu        sync.Mutex
	offset    float64
	following bool
}

// NewFollowGate returns a gate in the following state.
func NewFollowGate() *FollowGate {
	return &FollowGate{following: true}
}

// Observe records the current scroll offset and updates the follow state.
func (g *FollowGate) Observe(offset float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.offset = offset
	if offset > TopThreshold {
		g.following = false
	} else {
		g.following = true
	}
}

// Following reports whether the view should snap to the newest entry.
func (g *FollowGate) Following() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.following
}

// Offset returns the last observed scroll offset.
func (g *FollowGate) Offset() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.offset
}
