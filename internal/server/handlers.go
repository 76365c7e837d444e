package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"opsim/internal/chaos"
	"opsim/internal/store"
	"opsim/internal/telemetry"
	"opsim/internal/waterfall"
)

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.client.Metrics(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, telemetry.MetricsSnapshot{})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	batch, err := s.client.LogBatch(r.Context(), telemetry.DefaultLogBatchSize)
	if err != nil {
		writeJSON(w, http.StatusOK, []telemetry.LogEntry{})
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func (s *Server) handleKafkaTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.client.Topics(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (s *Server) handleKafkaMessages(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	msgs, err := s.client.Messages(r.Context(), topic)
	if err != nil {
		writeJSON(w, http.StatusOK, []telemetry.KafkaMessage{})
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	traceID := mux.Vars(r)["id"]
	trace, err := s.client.Trace(r.Context(), traceID)
	if err != nil {
		writeJSON(w, http.StatusOK, telemetry.Trace{ID: traceID})
		return
	}
	writeJSON(w, http.StatusOK, trace)
}

func (s *Server) handleTraceLayout(w http.ResponseWriter, r *http.Request) {
	traceID := mux.Vars(r)["id"]
	trace, err := s.client.Trace(r.Context(), traceID)
	if err != nil {
		writeJSON(w, http.StatusOK, []waterfall.Bar{})
		return
	}
	writeJSON(w, http.StatusOK, waterfall.Layout(trace))
}

type testRunRequest struct {
	Scenario string `json:"scenario"`
}

func (s *Server) handleTestRun(w http.ResponseWriter, r *http.Request) {
	var req testRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	steps, err := s.client.TestSteps(r.Context(), req.Scenario)
	if err != nil {
		writeJSON(w, http.StatusOK, telemetry.TestRunResult{Success: false, Steps: []telemetry.TestStep{}})
		return
	}
	writeJSON(w, http.StatusOK, telemetry.TestRunResult{Success: true, Steps: steps})
}

func (s *Server) handleChaosScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chaos.Scenarios())
}

func (s *Server) handleChaosHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.chaos.Health())
}

type chaosToggleRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleChaosToggle(w http.ResponseWriter, r *http.Request) {
	var req chaosToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Unknown ids are a no-op; the derived health is the answer either way.
	s.chaos.Toggle(req.ID)
	writeJSON(w, http.StatusOK, s.chaos.Health())
}

func (s *Server) handleChaosRestore(w http.ResponseWriter, r *http.Request) {
	s.chaos.RestoreAll()
	writeJSON(w, http.StatusOK, s.chaos.Health())
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.Products())
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		id = 0
	}
	writeJSON(w, http.StatusOK, store.ProductByID(id))
}

func (s *Server) handleOrderHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.OrderHistory())
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.StatusFor(mux.Vars(r)["id"]))
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, store.PlaceOrder())
}
