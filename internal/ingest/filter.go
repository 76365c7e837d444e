package ingest

import (
	"strings"

	"opsim/internal/telemetry"
)

// Wildcard values that disable a filter dimension.
const (
	AnyService = "All"
	AnyLevel   = "ALL"
)

// FallbackService labels entries that carry no service of their own.
const FallbackService = "SYSTEM"

// Filter narrows what the viewer sees. It only changes rendering: the display
// buffer and admission queue are never touched by filtering.
type Filter struct {
	Search  string
	Service string
	Level   string
}

// Matches reports whether one entry passes every active dimension.
func (f Filter) Matches(entry telemetry.LogEntry) bool {
	service := entry.Service
	if service == "" {
		service = FallbackService
	}

	if f.Service != "" && f.Service != AnyService && service != f.Service {
		return false
	}
	if f.Level != "" && f.Level != AnyLevel && entry.Type != f.Level {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(entry.Message), needle) &&
			!strings.Contains(strings.ToLower(entry.Service), needle) {
			return false
		}
	}
	return true
}

// Apply returns the entries that pass the filter, preserving order.
func (f Filter) Apply(entries []telemetry.LogEntry) []telemetry.LogEntry {
	out := make([]telemetry.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if f.Matches(entry) {
			out = append(out, entry)
		}
	}
	return out
}
