package waterfall

import (
	"opsim/internal/telemetry"
)

// Bar is one span positioned on the waterfall track. Offset and Width are
// fractions of the track width in [0,1].
type Bar struct {
	Service  string  `json:"service"`
	Status   string  `json:"status"`
	StartMS  int     `json:"start"`
	Duration int     `json:"duration"`
	Offset   float64 `json:"offset"`
	Width    float64 `json:"width"`
}

// Layout converts a trace into proportional horizontal bars, one per span in
// span order. A zero total duration yields zero-width bars rather than a
// division fault.
func Layout(trace telemetry.Trace) []Bar {
	bars := make([]Bar, len(trace.Spans))
	for i, span := range trace.Spans {
		bar := Bar{
			Service:  span.Service,
			Status:   span.Status,
			StartMS:  span.Start,
			Duration: span.Duration,
		}
		if trace.TotalDuration > 0 {
			total := float64(trace.TotalDuration)
			bar.Offset = float64(span.Start) / total
			bar.Width = float64(span.Duration) / total
		}
		bars[i] = bar
	}
	return bars
}
