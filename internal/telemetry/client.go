package telemetry

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"opsim/internal/sched"
)

// DefaultMaxLatency bounds the simulated per-call delay.
const DefaultMaxLatency = 800 * time.Millisecond

// Client fronts a Generator the way an HTTP client would front a backend:
// every call waits a random 0–800ms before resolving and honors context
// cancellation. The wait happens on the caller's goroutine only; components
// that must stay responsive invoke the client from their own goroutines.
type Client struct {
	gen        *Generator
	clock      sched.Clock
	maxLatency time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMaxLatency caps the simulated delay. Zero disables the delay entirely.
func WithMaxLatency(d time.Duration) ClientOption {
	return func(c *Client) { c.maxLatency = d }
}

// WithClientClock substitutes the clock used for latency waits.
func WithClientClock(clock sched.Clock) ClientOption {
	return func(c *Client) { c.clock = clock }
}

// NewClient wraps a generator with simulated network behavior.
func NewClient(gen *Generator, opts ...ClientOption) *Client {
	c := &Client{
		gen:        gen,
		clock:      sched.NewReal(),
		maxLatency: DefaultMaxLatency,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) wait(ctx context.Context) error {
	if c.maxLatency <= 0 {
		return ctx.Err()
	}
	c.mu.Lock()
	d := time.Duration(c.rnd.Int63n(int64(c.maxLatency)))
	c.mu.Unlock()
	return sched.Sleep(ctx, c.clock, d)
}

// Metrics fetches a metrics snapshot.
func (c *Client) Metrics(ctx context.Context) (MetricsSnapshot, error) {
	if err := c.wait(ctx); err != nil {
		return MetricsSnapshot{}, err
	}
	return c.gen.Metrics(), nil
}

// LogBatch fetches the next batch of log entries.
func (c *Client) LogBatch(ctx context.Context, n int) ([]LogEntry, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.gen.LogBatch(n), nil
}

// Topics fetches the topic list.
func (c *Client) Topics(ctx context.Context) ([]string, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.gen.Topics(), nil
}

// Messages fetches one batch of records for a topic.
func (c *Client) Messages(ctx context.Context, topic string) ([]KafkaMessage, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.gen.Messages(topic), nil
}

// Trace fetches the trace with the given id.
func (c *Client) Trace(ctx context.Context, traceID string) (Trace, error) {
	if err := c.wait(ctx); err != nil {
		return Trace{}, err
	}
	return c.gen.Trace(traceID), nil
}

// TestSteps fetches the step sequence for a scenario.
func (c *Client) TestSteps(ctx context.Context, scenario string) ([]TestStep, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	return c.gen.TestSteps(scenario), nil
}
