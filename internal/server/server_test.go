package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsim/internal/chaos"
	"opsim/internal/ingest"
	"opsim/internal/telemetry"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	engine := chaos.NewEngine()
	gen := telemetry.NewGenerator(telemetry.WithSeed(1), telemetry.WithHealthSource(engine))
	client := telemetry.NewClient(gen, telemetry.WithMaxLatency(0))
	pipeline := ingest.NewPipeline(client)
	return New(0, client, engine, pipeline)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	var snap telemetry.MetricsSnapshot
	rec := doJSON(t, s, http.MethodGet, "/admin/metrics", nil, &snap)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 99.5, snap.SuccessRate)
	assert.Len(t, snap.History, 24)
}

func TestLogsEndpoint(t *testing.T) {
	s := newTestServer(t)

	var batch []telemetry.LogEntry
	rec := doJSON(t, s, http.MethodGet, "/admin/logs", nil, &batch)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, batch, telemetry.DefaultLogBatchSize)
}

func TestKafkaEndpoints(t *testing.T) {
	s := newTestServer(t)

	var topics []string
	doJSON(t, s, http.MethodGet, "/admin/kafka/topics", nil, &topics)
	assert.Equal(t, []string{"order-events", "payment-events", "inventory-events", "shipping-events"}, topics)

	var msgs []telemetry.KafkaMessage
	doJSON(t, s, http.MethodGet, "/admin/kafka/messages?topic=order-events", nil, &msgs)
	require.Len(t, msgs, telemetry.MessagesPerBatch)
	assert.Equal(t, 1000, msgs[0].Offset)

	// Unknown topics answer with an empty batch, not an error.
	var empty []telemetry.KafkaMessage
	rec := doJSON(t, s, http.MethodGet, "/admin/kafka/messages?topic=nope", nil, &empty)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, empty)
}

func TestTraceEndpoints(t *testing.T) {
	s := newTestServer(t)

	var trace telemetry.Trace
	doJSON(t, s, http.MethodGet, "/admin/traces/abc-123", nil, &trace)
	assert.Equal(t, "abc-123", trace.ID)
	assert.Equal(t, 600, trace.TotalDuration)
	require.Len(t, trace.Spans, 4)

	var bars []map[string]interface{}
	doJSON(t, s, http.MethodGet, "/admin/traces/abc-123/layout", nil, &bars)
	require.Len(t, bars, 4)
	assert.Equal(t, "Order Service", bars[0]["service"])
	assert.InDelta(t, 0.2, bars[0]["width"], 1e-9)
}

func TestTestRunEndpoint(t *testing.T) {
	s := newTestServer(t)

	var result telemetry.TestRunResult
	rec := doJSON(t, s, http.MethodPost, "/admin/tests/run",
		map[string]string{"scenario": "Happy Path Order"}, &result)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, result.Success)
	require.Len(t, result.Steps, 4)
	assert.Equal(t, "Order Created", result.Steps[0].Name)
}

func TestTestRunRejectsBadBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/tests/run", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChaosEndpoints(t *testing.T) {
	s := newTestServer(t)

	var scenarios []chaos.Scenario
	doJSON(t, s, http.MethodGet, "/admin/chaos/scenarios", nil, &scenarios)
	require.Len(t, scenarios, 3)

	var health chaos.Health
	doJSON(t, s, http.MethodGet, "/admin/chaos/health", nil, &health)
	assert.Equal(t, chaos.BreakerClosed, health.CircuitBreaker)
	assert.Equal(t, 99.9, health.SuccessRate)

	// Toggling payment kill trips the breaker.
	doJSON(t, s, http.MethodPost, "/admin/chaos/toggle",
		map[string]string{"id": chaos.ScenarioPaymentKill}, &health)
	assert.Equal(t, chaos.BreakerOpen, health.CircuitBreaker)
	assert.Equal(t, 85.0, health.SuccessRate)
	assert.Equal(t, "Cached responses", health.Fallback)

	// The degraded rate shows through the metrics endpoint.
	var snap telemetry.MetricsSnapshot
	doJSON(t, s, http.MethodGet, "/admin/metrics", nil, &snap)
	assert.Equal(t, 85.0, snap.SuccessRate)

	// Restore returns the healthy view.
	doJSON(t, s, http.MethodPost, "/admin/chaos/restore", nil, &health)
	assert.Equal(t, chaos.BreakerClosed, health.CircuitBreaker)
	assert.Equal(t, 99.9, health.SuccessRate)
}

func TestStorefrontEndpoints(t *testing.T) {
	s := newTestServer(t)

	var products []map[string]interface{}
	doJSON(t, s, http.MethodGet, "/products", nil, &products)
	require.Len(t, products, 10)

	var product map[string]interface{}
	doJSON(t, s, http.MethodGet, "/products/5", nil, &product)
	assert.Equal(t, "Holo-Visor", product["title"])

	var orders []map[string]interface{}
	doJSON(t, s, http.MethodGet, "/orders/user", nil, &orders)
	require.Len(t, orders, 3)

	var status map[string]interface{}
	doJSON(t, s, http.MethodGet, "/orders/ORD-1120", nil, &status)
	assert.Equal(t, "ORD-1120", status["id"])
	assert.Equal(t, "SHIPPED", status["status"])

	var receipt map[string]interface{}
	doJSON(t, s, http.MethodPost, "/orders", nil, &receipt)
	assert.Equal(t, true, receipt["success"])
}

func TestUnknownRouteIs404(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/nope", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
