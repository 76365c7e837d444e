package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshotShape(t *testing.T) {
	gen := NewGenerator(WithSeed(1))
	snap := gen.Metrics()

	assert.GreaterOrEqual(t, snap.OrdersToday, 1234)
	assert.Less(t, snap.OrdersToday, 1244)
	assert.GreaterOrEqual(t, snap.RevenueToday, 9876543)
	assert.Less(t, snap.RevenueToday, 9877043)
	assert.Equal(t, 99.5, snap.SuccessRate)
	assert.GreaterOrEqual(t, snap.AvgLatency, 120)
	assert.Less(t, snap.AvgLatency, 140)

	assert.Equal(t, MetricChanges{Orders: 12, Revenue: 8, Success: 0.2, Latency: -5}, snap.Changes)

	require.Len(t, snap.History, 24)
	assert.Equal(t, "0:00", snap.History[0].Time)
	assert.Equal(t, "23:00", snap.History[23].Time)
	for _, point := range snap.History {
		assert.GreaterOrEqual(t, point.Orders, 50)
		assert.Less(t, point.Orders, 150)
	}
}

func TestMetricsUsesHealthSourceWhenDegraded(t *testing.T) {
	tests := []struct {
		name     string
		source   HealthSource
		wantRate float64
	}{
		{name: "no source", source: nil, wantRate: 99.5},
		{name: "healthy source", source: stubHealth{rate: 85.0, degraded: false}, wantRate: 99.5},
		{name: "degraded source", source: stubHealth{rate: 85.0, degraded: true}, wantRate: 85.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := []Option{WithSeed(1)}
			if tt.source != nil {
				opts = append(opts, WithHealthSource(tt.source))
			}
			gen := NewGenerator(opts...)
			assert.Equal(t, tt.wantRate, gen.Metrics().SuccessRate)
		})
	}
}

type stubHealth struct {
	rate     float64
	degraded bool
}

func (s stubHealth) SuccessRate() (float64, bool) { return s.rate, s.degraded }

func TestLogBatchUniqueIDsAndKnownContent(t *testing.T) {
	gen := NewGenerator(WithSeed(7))

	batch := gen.LogBatch(50)
	require.Len(t, batch, 50)

	ids := make(map[string]struct{}, len(batch))
	for _, entry := range batch {
		_, dup := ids[entry.ID]
		assert.False(t, dup, "duplicate id %s", entry.ID)
		ids[entry.ID] = struct{}{}

		assert.Contains(t, logServices, entry.Service)
		assert.Contains(t, logLevels, entry.Type)
		assert.Contains(t, logMessages, entry.Message)
		assert.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, entry.Time)
	}
}

func TestLogBatchDefaultsSize(t *testing.T) {
	gen := NewGenerator(WithSeed(7))
	assert.Len(t, gen.LogBatch(0), DefaultLogBatchSize)
	assert.Len(t, gen.LogBatch(-3), DefaultLogBatchSize)
}

func TestTopicsCatalogue(t *testing.T) {
	gen := NewGenerator()
	assert.Equal(t, []string{"order-events", "payment-events", "inventory-events", "shipping-events"}, gen.Topics())
}

func TestMessagesForKnownTopic(t *testing.T) {
	gen := NewGenerator(WithSeed(3))

	msgs := gen.Messages("payment-events")
	require.Len(t, msgs, MessagesPerBatch)

	for i, msg := range msgs {
		assert.Equal(t, 1000+i, msg.Offset)
		assert.Equal(t, "CREATED", msg.Value.EventType)
		assert.Equal(t, "payment-events", msg.Value.Topic)
		assert.Regexp(t, `^ord-\d+$`, msg.Value.OrderID)
		assert.GreaterOrEqual(t, msg.Value.Amount, 0)
		assert.Less(t, msg.Value.Amount, 5000)
	}
}

func TestMessagesUnknownTopicIsEmptyNotNil(t *testing.T) {
	gen := NewGenerator()
	msgs := gen.Messages("no-such-topic")
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestTraceIsCanonicalForAnyID(t *testing.T) {
	gen := NewGenerator()

	trace := gen.Trace("trace-123")
	assert.Equal(t, "trace-123", trace.ID)
	assert.Equal(t, 600, trace.TotalDuration)

	want := []TraceSpan{
		{Service: "Order Service", Start: 0, Duration: 120, Status: StatusSuccess},
		{Service: "Payment Service", Start: 120, Duration: 250, Status: StatusSuccess},
		{Service: "Inventory Service", Start: 370, Duration: 180, Status: StatusSuccess},
		{Service: "Saga Orchestrator", Start: 550, Duration: 50, Status: StatusSuccess},
	}
	assert.Equal(t, want, trace.Spans)

	// Every span stays inside the trace budget.
	for _, span := range trace.Spans {
		assert.LessOrEqual(t, span.Start+span.Duration, trace.TotalDuration)
	}
}

func TestTestStepsSameForEveryScenario(t *testing.T) {
	gen := NewGenerator()

	want := []TestStep{
		{Name: "Order Created", Duration: 120, Status: StatusSuccess},
		{Name: "Payment Processed", Duration: 250, Status: StatusSuccess},
		{Name: "Inventory Reserved", Duration: 180, Status: StatusSuccess},
		{Name: "Order Confirmed", Duration: 50, Status: StatusSuccess},
	}

	assert.Equal(t, want, gen.TestSteps("Happy Path Order"))
	assert.Equal(t, want, gen.TestSteps("Payment Failure"))
	assert.Equal(t, want, gen.TestSteps("anything else"))
}
