package chaos

import (
	"sync"

	logpkg "opsim/internal/log"
)

// Scenario ids. These are the only toggles the engine knows about.
const (
	ScenarioPaymentKill = "payment_kill"
	ScenarioLatency     = "latency"
	ScenarioPartition   = "partition"
)

// Scenario describes one injectable failure.
type Scenario struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var scenarios = []Scenario{
	{ID: ScenarioPaymentKill, Name: "Kill Payment Service", Description: "Simulate 503 Service Unavailable"},
	{ID: ScenarioLatency, Name: "Slow Database", Description: "Inject 2s latency to queries"},
	{ID: ScenarioPartition, Name: "Network Partition", Description: "Drop 30% of packets"},
}

// Scenarios returns the fixed scenario catalogue.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// Circuit breaker states.
const (
	BreakerOpen   = "OPEN"
	BreakerClosed = "CLOSED"
)

// Health is the system view derived from the active failure set. It is
// recomputed wholesale on every read; nothing here is stored.
type Health struct {
	CircuitBreaker string  `json:"circuitBreaker"`
	SuccessRate    float64 `json:"successRate"`
	Fallback       string  `json:"fallback"`
	RecoveryETA    int     `json:"recoveryETA"`
}

// healthyState is what an empty failure set always derives to.
var healthyState = Health{
	CircuitBreaker: BreakerClosed,
	SuccessRate:    99.9,
	Fallback:       "None",
	RecoveryETA:    0,
}

// Engine holds the set of active failure scenarios and derives aggregate
// health from it. All mutations swap in a freshly derived view; readers never
// observe a partial update.
type Engine struct {
	mu     sync.RWMutex
	active map[string]bool
	logger logpkg.Logger
}

// NewEngine creates an engine with no failures active.
func NewEngine() *Engine {
	return &Engine{
		active: make(map[string]bool),
		logger: logpkg.Global(),
	}
}

func knownScenario(id string) bool {
	for _, s := range scenarios {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Toggle flips one scenario: active becomes inactive and vice versa. Unknown
// ids are ignored. Toggling twice restores the original state.
func (e *Engine) Toggle(id string) {
	if !knownScenario(id) {
		return
	}

	e.mu.Lock()
	if e.active[id] {
		delete(e.active, id)
	} else {
		e.active[id] = true
	}
	count := len(e.active)
	e.mu.Unlock()

	if e.logger != nil {
		e.logger.Info("chaos scenario toggled", "scenario", id, "active_count", count)
	}
}

// RestoreAll clears every active failure, returning the system to the
// healthy terminal state regardless of history.
func (e *Engine) RestoreAll() {
	e.mu.Lock()
	e.active = make(map[string]bool)
	e.mu.Unlock()

	if e.logger != nil {
		e.logger.Info("all chaos scenarios restored")
	}
}

// Active returns the ids of currently toggled scenarios in catalogue order.
func (e *Engine) Active() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]string, 0, len(e.active))
	for _, s := range scenarios {
		if e.active[s.ID] {
			out = append(out, s.ID)
		}
	}
	return out
}

// IsActive reports whether one scenario is toggled on.
func (e *Engine) IsActive(id string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active[id]
}

// Health derives the aggregate system view from the active set.
//
// The success rate is NOT additive: exactly one branch applies, chosen by the
// precedence payment_kill > partition > latency. The recovery ETA IS additive
// across active scenarios. That asymmetry is intentional.
func (e *Engine) Health() Health {
	e.mu.RLock()
	paymentDown := e.active[ScenarioPaymentKill]
	slow := e.active[ScenarioLatency]
	partitioned := e.active[ScenarioPartition]
	e.mu.RUnlock()

	if !paymentDown && !slow && !partitioned {
		return healthyState
	}

	h := Health{
		CircuitBreaker: BreakerClosed,
		SuccessRate:    99.9,
		Fallback:       "None",
	}
	if paymentDown {
		h.CircuitBreaker = BreakerOpen
		h.Fallback = "Cached responses"
	}
	switch {
	case paymentDown:
		h.SuccessRate = 85.0
	case partitioned:
		h.SuccessRate = 92.5
	case slow:
		h.SuccessRate = 98.2
	}
	if paymentDown {
		h.RecoveryETA += 45
	}
	if slow {
		h.RecoveryETA += 15
	}
	if partitioned {
		h.RecoveryETA += 30
	}
	return h
}

// SuccessRate implements telemetry.HealthSource: the degraded rate shows
// through metrics snapshots while any scenario is active.
func (e *Engine) SuccessRate() (float64, bool) {
	e.mu.RLock()
	degraded := len(e.active) > 0
	e.mu.RUnlock()

	if !degraded {
		return healthyState.SuccessRate, false
	}
	return e.Health().SuccessRate, true
}
