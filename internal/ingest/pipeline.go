package ingest

import (
	"context"
	"sync"
	"time"

	logpkg "opsim/internal/log"
	"opsim/internal/sched"
	"opsim/internal/telemetry"
)

// Pacing defaults. Poll and drain are deliberately decoupled: when arrival
// outpaces the drain, entries back up in the admission queue and the display
// keeps a steady rhythm.
const (
	DefaultPollInterval  = 2000 * time.Millisecond
	DefaultDrainInterval = 1500 * time.Millisecond
	MaxDisplayed         = 100
)

// BatchSource supplies fresh log batches. Satisfied by telemetry.Client.
type BatchSource interface {
	LogBatch(ctx context.Context, n int) ([]telemetry.LogEntry, error)
}

// Pipeline simulates a live log tail with bounded memory: a poller admits
// unseen entries into a FIFO queue, and an independent drainer moves one
// entry per tick into the newest-first display buffer.
type Pipeline struct {
	source        BatchSource
	clock         sched.Clock
	logger        logpkg.Logger
	pollInterval  time.Duration
	drainInterval time.Duration
	batchSize     int
	maxDisplayed  int

	mu        sync.Mutex
	queue     []telemetry.LogEntry
	displayed []telemetry.LogEntry
	known     map[string]struct{}
	subs      []func(telemetry.LogEntry)

	cancel context.CancelFunc
	done   chan struct{}
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithIntervals overrides the poll and drain pacing.
func WithIntervals(poll, drain time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if poll > 0 {
			p.pollInterval = poll
		}
		if drain > 0 {
			p.drainInterval = drain
		}
	}
}

// WithPipelineClock substitutes the timer source.
func WithPipelineClock(clock sched.Clock) PipelineOption {
	return func(p *Pipeline) { p.clock = clock }
}

// WithBatchSize overrides how many entries each poll requests.
func WithBatchSize(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// NewPipeline creates a stopped pipeline over the given source.
func NewPipeline(source BatchSource, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		source:        source,
		clock:         sched.NewReal(),
		logger:        logpkg.Global(),
		pollInterval:  DefaultPollInterval,
		drainInterval: DefaultDrainInterval,
		batchSize:     telemetry.DefaultLogBatchSize,
		maxDisplayed:  MaxDisplayed,
		known:         make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subscribe registers a callback invoked for every entry as it drains into
// the display buffer. Must be called before Start.
func (p *Pipeline) Subscribe(fn func(telemetry.LogEntry)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

// Start launches the poll and drain timers. Stop tears both down.
func (p *Pipeline) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx)
}

// Stop cancels the timers and waits for the loop to exit. No poll or drain
// fires after Stop returns.
func (p *Pipeline) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

func (p *Pipeline) run(ctx context.Context) {
	defer close(p.done)

	poll := p.clock.NewTicker(p.pollInterval)
	defer poll.Stop()
	drain := p.clock.NewTicker(p.drainInterval)
	defer drain.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-poll.Chan():
			p.PollOnce(ctx)
		case <-drain.Chan():
			p.DrainOnce()
		}
	}
}

// PollOnce fetches one batch and admits unseen entries. A failed or cancelled
// fetch contributes zero new entries; the next scheduled poll is the retry.
func (p *Pipeline) PollOnce(ctx context.Context) {
	batch, err := p.source.LogBatch(ctx, p.batchSize)
	if err != nil {
		if p.logger != nil {
			p.logger.Debug("log poll produced no data", "err", err)
		}
		return
	}
	if ctx.Err() != nil {
		// The view owning this pipeline is gone; discard the stale batch.
		return
	}
	p.admit(batch)
}

// admit appends entries whose id is neither displayed nor queued. Order
// within the batch is preserved, so drain order stays FIFO relative to
// admission order.
func (p *Pipeline) admit(batch []telemetry.LogEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, entry := range batch {
		if _, seen := p.known[entry.ID]; seen {
			continue
		}
		p.known[entry.ID] = struct{}{}
		p.queue = append(p.queue, entry)
	}
}

// DrainOnce moves the oldest queued entry to the front of the display buffer,
// evicting beyond capacity. No-op when the queue is empty.
func (p *Pipeline) DrainOnce() {
	p.mu.Lock()
	if len(p.queue) == 0 {
		p.mu.Unlock()
		return
	}

	next := p.queue[0]
	p.queue = p.queue[1:]

	updated := make([]telemetry.LogEntry, 0, len(p.displayed)+1)
	updated = append(updated, next)
	updated = append(updated, p.displayed...)
	if len(updated) > p.maxDisplayed {
		for _, evicted := range updated[p.maxDisplayed:] {
			delete(p.known, evicted.ID)
		}
		updated = updated[:p.maxDisplayed]
	}
	p.displayed = updated

	subs := p.subs
	p.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Snapshot returns a copy of the display buffer, newest entry first.
func (p *Pipeline) Snapshot() []telemetry.LogEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]telemetry.LogEntry, len(p.displayed))
	copy(out, p.displayed)
	return out
}

// QueueLen reports how many admitted entries still await display.
func (p *Pipeline) QueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}
