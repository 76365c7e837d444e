package telemetry

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"opsim/internal/sched"
)

// Base figures for the metrics snapshot. Each call jitters them upward by a
// small random amount for a live feel.
const (
	baseOrdersToday  = 1234
	baseRevenueToday = 9876543
	baseAvgLatency   = 120
	baseSuccessRate  = 99.5
)

// HealthSource reports a degraded success rate while failure scenarios are
// active. The second return is false when the platform is healthy and the
// generator's own base rate should be used.
type HealthSource interface {
	SuccessRate() (float64, bool)
}

var logServices = []string{"ORDER", "PAYMENT", "INVENTORY", "AUTH", "NOTIFICATION"}

var logLevels = []string{LevelInfo, LevelWarn, LevelError, LevelSuccess}

var logMessages = []string{
	"Order processing started",
	"Payment gateway timeout",
	"Inventory check successful",
	"User authentication failed",
	"Email notification sent",
	"Database connection pool full",
	"Cache invalidated",
	"Microservice handshake initiated",
}

var kafkaTopics = []string{"order-events", "payment-events", "inventory-events", "shipping-events"}

// The canonical happy-path order trace. Spans are contiguous and sum inside
// the 600ms budget, so the waterfall invariant holds by construction.
var happyPathSpans = []TraceSpan{
	{Service: "Order Service", Start: 0, Duration: 120, Status: StatusSuccess},
	{Service: "Payment Service", Start: 120, Duration: 250, Status: StatusSuccess},
	{Service: "Inventory Service", Start: 370, Duration: 180, Status: StatusSuccess},
	{Service: "Saga Orchestrator", Start: 550, Duration: 50, Status: StatusSuccess},
}

const happyPathTotal = 600

var happyPathSteps = []TestStep{
	{Name: "Order Created", Duration: 120, Status: StatusSuccess},
	{Name: "Payment Processed", Duration: 250, Status: StatusSuccess},
	{Name: "Inventory Reserved", Duration: 180, Status: StatusSuccess},
	{Name: "Order Confirmed", Duration: 50, Status: StatusSuccess},
}

// Generator fabricates internally consistent telemetry for every signal the
// dashboard consumes. It stands in for the real backend: callers treat it as
// the terminal data source, never as a cache over something else.
type Generator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	clock  sched.Clock
	health HealthSource
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generated randomness reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rnd = rand.New(rand.NewSource(seed)) }
}

// WithClock substitutes the time source used for timestamps.
func WithClock(clock sched.Clock) Option {
	return func(g *Generator) { g.clock = clock }
}

// WithHealthSource lets active chaos scenarios show through in the metrics
// success rate.
func WithHealthSource(hs HealthSource) Option {
	return func(g *Generator) { g.health = hs }
}

// NewGenerator creates a generator seeded from the current time.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		clock: sched.NewReal(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Metrics returns a fresh snapshot. The history window is always exactly 24
// hourly points.
func (g *Generator) Metrics() MetricsSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	successRate := baseSuccessRate
	if g.health != nil {
		if rate, degraded := g.health.SuccessRate(); degraded {
			successRate = rate
		}
	}

	history := make([]HistoryPoint, 24)
	for i := range history {
		history[i] = HistoryPoint{
			Time:   fmt.Sprintf("%d:00", i),
			Orders: 50 + g.rnd.Intn(100),
		}
	}

	return MetricsSnapshot{
		OrdersToday:  baseOrdersToday + g.rnd.Intn(10),
		RevenueToday: baseRevenueToday + g.rnd.Intn(500),
		SuccessRate:  successRate,
		AvgLatency:   baseAvgLatency + g.rnd.Intn(20),
		Changes:      MetricChanges{Orders: 12, Revenue: 8, Success: 0.2, Latency: -5},
		History:      history,
	}
}

// DefaultLogBatchSize is the number of entries produced per poll.
const DefaultLogBatchSize = 5

// LogBatch returns n freshly minted log entries. Content repeats across calls;
// only the ids are guaranteed unique.
func (g *Generator) LogBatch(n int) []LogEntry {
	if n <= 0 {
		n = DefaultLogBatchSize
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	batch := make([]LogEntry, n)
	for i := range batch {
		batch[i] = LogEntry{
			ID:      uuid.NewString(),
			Time:    now.Format("15:04:05"),
			Type:    logLevels[g.rnd.Intn(len(logLevels))],
			Service: logServices[g.rnd.Intn(len(logServices))],
			Message: logMessages[g.rnd.Intn(len(logMessages))],
		}
	}
	return batch
}

// Topics returns the fixed topic catalogue.
func (g *Generator) Topics() []string {
	out := make([]string, len(kafkaTopics))
	copy(out, kafkaTopics)
	return out
}

// MessagesPerBatch is how many records a topic query returns.
const MessagesPerBatch = 10

// Messages fabricates one batch of records for the topic. Unknown topics get
// an empty batch rather than an error.
func (g *Generator) Messages(topic string) []KafkaMessage {
	known := false
	for _, t := range kafkaTopics {
		if t == topic {
			known = true
			break
		}
	}
	if !known {
		return []KafkaMessage{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.clock.Now().UTC().Format(time.RFC3339)
	msgs := make([]KafkaMessage, MessagesPerBatch)
	for i := range msgs {
		msgs[i] = KafkaMessage{
			Offset:    1000 + i,
			Timestamp: ts,
			Value: KafkaValue{
				EventType: "CREATED",
				OrderID:   fmt.Sprintf("ord-%d", g.rnd.Intn(1000)),
				Amount:    g.rnd.Intn(5000),
				Topic:     topic,
			},
		}
	}
	return msgs
}

// Trace returns the canonical happy-path order trace tagged with the
// requested id. Any id resolves to a trace; there is no not-found case.
func (g *Generator) Trace(traceID string) Trace {
	spans := make([]TraceSpan, len(happyPathSpans))
	copy(spans, happyPathSpans)
	return Trace{
		ID:            traceID,
		TotalDuration: happyPathTotal,
		Spans:         spans,
	}
}

// TestSteps returns the step sequence for a scenario run. Every scenario name
// currently maps to the same happy-path sequence; per-scenario failure steps
// were never wired up in the original dashboard and are deliberately not
// invented here.
func (g *Generator) TestSteps(scenario string) []TestStep {
	steps := make([]TestStep, len(happyPathSteps))
	copy(steps, happyPathSteps)
	return steps
}
