package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"opsim/internal/chaos"
	"opsim/internal/ingest"
	logpkg "opsim/internal/log"
	"opsim/internal/telemetry"
)

// Server exposes the synthetic admin API consumed by the storefront
// dashboard, plus a websocket stream of the paced log tail.
type Server struct {
	port     int
	router   *mux.Router
	server   *http.Server
	upgrader websocket.Upgrader
	logger   logpkg.Logger

	client   *telemetry.Client
	chaos    *chaos.Engine
	pipeline *ingest.Pipeline

	clients      map[*websocket.Conn]bool
	clientsMutex sync.RWMutex
}

// New wires the admin API over the given telemetry client, chaos engine and
// log pipeline. The pipeline's drained entries are fanned out to websocket
// subscribers.
func New(port int, client *telemetry.Client, engine *chaos.Engine, pipeline *ingest.Pipeline) *Server {
	s := &Server{
		port:   port,
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // demo service, any origin may connect
			},
		},
		logger:   logpkg.Global(),
		client:   client,
		chaos:    engine,
		pipeline: pipeline,
		clients:  make(map[*websocket.Conn]bool),
	}

	pipeline.Subscribe(s.broadcastLogEntry)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	admin := s.router.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	admin.HandleFunc("/logs", s.handleLogs).Methods("GET")
	admin.HandleFunc("/logs/stream", s.handleLogStream)
	admin.HandleFunc("/kafka/topics", s.handleKafkaTopics).Methods("GET")
	admin.HandleFunc("/kafka/messages", s.handleKafkaMessages).Methods("GET")
	admin.HandleFunc("/traces/{id}", s.handleTrace).Methods("GET")
	admin.HandleFunc("/traces/{id}/layout", s.handleTraceLayout).Methods("GET")
	admin.HandleFunc("/tests/run", s.handleTestRun).Methods("POST")
	admin.HandleFunc("/chaos/scenarios", s.handleChaosScenarios).Methods("GET")
	admin.HandleFunc("/chaos/health", s.handleChaosHealth).Methods("GET")
	admin.HandleFunc("/chaos/toggle", s.handleChaosToggle).Methods("POST")
	admin.HandleFunc("/chaos/restore", s.handleChaosRestore).Methods("POST")

	// Storefront mock endpoints, kept so the existing front-end works
	// without a real shop backend.
	s.router.HandleFunc("/products", s.handleProducts).Methods("GET")
	s.router.HandleFunc("/products/{id}", s.handleProduct).Methods("GET")
	s.router.HandleFunc("/orders/user", s.handleOrderHistory).Methods("GET")
	s.router.HandleFunc("/orders/{id}", s.handleOrderStatus).Methods("GET")
	s.router.HandleFunc("/orders", s.handlePlaceOrder).Methods("POST")
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	if s.logger != nil {
		s.logger.Info("admin API listening", "port", s.port)
	}
	return s.server.ListenAndServe()
}

// Stop closes websocket clients and shuts the listener down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.clientsMutex.Lock()
	for client := range s.clients {
		_ = client.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.clientsMutex.Unlock()

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleLogStream upgrades the connection and keeps it registered until the
// peer goes away. Entries arrive via broadcastLogEntry.
func (s *Server) handleLogStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("websocket upgrade failed", "err", err)
		}
		return
	}
	defer conn.Close()

	s.clientsMutex.Lock()
	s.clients[conn] = true
	total := len(s.clients)
	s.clientsMutex.Unlock()

	if s.logger != nil {
		s.logger.Debug("log stream client connected", "total", total)
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.clientsMutex.Lock()
			delete(s.clients, conn)
			s.clientsMutex.Unlock()
			return
		}
	}
}

func (s *Server) broadcastLogEntry(entry telemetry.LogEntry) {
	s.clientsMutex.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clientsMutex.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(entry); err != nil {
			s.clientsMutex.Lock()
			delete(s.clients, conn)
			s.clientsMutex.Unlock()
			_ = conn.Close()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
