package waterfall

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"opsim/internal/telemetry"
)

// SpanHost is the fixed host label shown in span metadata.
const SpanHost = "use-east-1b"

// SpanDetail is the inspection panel content for one selected span. The
// metadata fields are cosmetic and regenerated on every selection.
type SpanDetail struct {
	Service  string `json:"service"`
	Status   string `json:"status"`
	StartMS  int    `json:"start"`
	Duration int    `json:"duration"`
	SpanID   string `json:"spanId"`
	TraceID  string `json:"traceId"`
	Host     string `json:"host"`
}

// Inspector tracks the single selected span of one trace. Selecting a new
// span replaces the prior selection.
type Inspector struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	trace    telemetry.Trace
	selected int
}

// NewInspector creates an inspector over a trace with nothing selected.
func NewInspector(trace telemetry.Trace) *Inspector {
	return &Inspector{
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		trace:    trace,
		selected: -1,
	}
}

// Select picks one span by index and returns its detail panel, with freshly
// synthesized metadata. Out-of-range indexes clear the selection.
func (in *Inspector) Select(index int) (SpanDetail, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if index < 0 || index >= len(in.trace.Spans) {
		in.selected = -1
		return SpanDetail{}, false
	}

	in.selected = index
	span := in.trace.Spans[index]
	return SpanDetail{
		Service:  span.Service,
		Status:   span.Status,
		StartMS:  span.Start,
		Duration: span.Duration,
		SpanID:   fmt.Sprintf("sp-%d", in.rnd.Intn(1000)),
		TraceID:  in.trace.ID,
		Host:     SpanHost,
	}, true
}

// Selected returns the index of the selected span, or -1 when none.
func (in *Inspector) Selected() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.selected
}

// Close clears the selection.
func (in *Inspector) Close() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.selected = -1
}
