package telemetry

// LogEntry is a single synthetic platform log line.
type LogEntry struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Type    string `json:"type"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Log levels as rendered by the dashboard.
const (
	LevelInfo    = "INFO"
	LevelWarn    = "WARN"
	LevelError   = "ERROR"
	LevelSuccess = "SUCCESS"
)

// HistoryPoint is one hourly bucket of the 24-hour order chart.
type HistoryPoint struct {
	Time   string `json:"time"`
	Orders int    `json:"orders"`
}

// MetricChanges holds the signed deltas shown next to each headline metric.
type MetricChanges struct {
	Orders  int     `json:"orders"`
	Revenue int     `json:"revenue"`
	Success float64 `json:"success"`
	Latency int     `json:"latency"`
}

// MetricsSnapshot is one self-contained view of the storefront's health.
// Snapshots carry no cross-call continuity; each one is independently
// plausible rather than a running simulation.
type MetricsSnapshot struct {
	OrdersToday  int           `json:"ordersToday"`
	RevenueToday int           `json:"revenueToday"`
	SuccessRate  float64       `json:"successRate"`
	AvgLatency   int           `json:"avgLatency"`
	Changes      MetricChanges `json:"changes"`
	History      []HistoryPoint `json:"history"`
}

// KafkaValue is the decoded payload of a synthetic broker message.
type KafkaValue struct {
	EventType string `json:"eventType"`
	OrderID   string `json:"orderId"`
	Amount    int    `json:"amount"`
	Topic     string `json:"topic"`
}

// KafkaMessage mimics a consumed broker record. Offsets look monotonic within
// one batch but are not globally monotonic across calls.
type KafkaMessage struct {
	Offset    int        `json:"offset"`
	Timestamp string     `json:"timestamp"`
	Value     KafkaValue `json:"value"`
}

// Span statuses.
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// TraceSpan is a single timed unit of work attributed to one service.
// Start and Duration are millisecond offsets inside the owning trace.
type TraceSpan struct {
	Service  string `json:"service"`
	Start    int    `json:"start"`
	Duration int    `json:"duration"`
	Status   string `json:"status"`
}

// Trace is an ordered collection of spans sharing one duration budget.
// Every span satisfies Start+Duration <= TotalDuration.
type Trace struct {
	ID            string      `json:"id"`
	TotalDuration int         `json:"totalDuration"`
	Spans         []TraceSpan `json:"spans"`
}

// TestStep is one unit of a scenario execution, revealed to the viewer one at
// a time.
type TestStep struct {
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Status   string `json:"status"`
}

// TestRunResult is the response body of a scenario run request.
type TestRunResult struct {
	Success bool       `json:"success"`
	Steps   []TestStep `json:"steps"`
}
