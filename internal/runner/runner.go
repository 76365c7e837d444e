package runner

import (
	"context"
	"sync"
	"time"

	logpkg "opsim/internal/log"
	"opsim/internal/sched"
	"opsim/internal/telemetry"
)

// Pacing contracts. The reveal delay is presentation pacing, not a network
// property; it applies between consecutive step reveals within one run.
const (
	StepRevealDelay = 600 * time.Millisecond
	InterTestPause  = 1000 * time.Millisecond
)

// Run outcomes.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// idle marks no scenario running.
const idle = -1

// Scenario names one runnable test.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultScenarios is the dashboard's fixed scenario list.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "Happy Path Order", Description: "Order → Payment → Inventory → Confirmation"},
		{Name: "Payment Failure", Description: "Simulate payment service failure and rollback"},
		{Name: "Inventory Unavailable", Description: "Test out-of-stock scenario handling"},
	}
}

// Result records one completed run.
type Result struct {
	Status   string `json:"status"`
	Duration int    `json:"duration"`
}

// StepSource supplies the step sequence for a scenario. Satisfied by
// telemetry.Client.
type StepSource interface {
	TestSteps(ctx context.Context, scenario string) ([]telemetry.TestStep, error)
}

// Runner executes scenarios sequentially, revealing steps one at a time and
// recording a result per scenario index. At most one scenario runs at a time;
// concurrent starts are silently rejected.
type Runner struct {
	source    StepSource
	clock     sched.Clock
	logger    logpkg.Logger
	scenarios []Scenario

	mu      sync.Mutex
	running int
	results map[int]Result
	active  []telemetry.TestStep
	reveal  func(telemetry.TestStep)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRunnerClock substitutes the pacing clock.
func WithRunnerClock(clock sched.Clock) RunnerOption {
	return func(r *Runner) { r.clock = clock }
}

// WithScenarios overrides the scenario list.
func WithScenarios(scenarios []Scenario) RunnerOption {
	return func(r *Runner) { r.scenarios = scenarios }
}

// OnReveal registers a callback fired as each step becomes visible.
func OnReveal(fn func(telemetry.TestStep)) RunnerOption {
	return func(r *Runner) { r.reveal = fn }
}

// NewRunner creates an idle runner over the default scenario list.
func NewRunner(source StepSource, opts ...RunnerOption) *Runner {
	r := &Runner{
		source:    source,
		clock:     sched.NewReal(),
		logger:    logpkg.Global(),
		scenarios: DefaultScenarios(),
		running:   idle,
		results:   make(map[int]Result),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scenarios returns the scenario list in run order.
func (r *Runner) Scenarios() []Scenario {
	out := make([]Scenario, len(r.scenarios))
	copy(out, r.scenarios)
	return out
}

// Running returns the index of the scenario in progress, or -1 when idle.
func (r *Runner) Running() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Results returns a copy of the per-scenario outcomes recorded so far.
func (r *Runner) Results() map[int]Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[int]Result, len(r.results))
	for k, v := range r.results {
		out[k] = v
	}
	return out
}

// ActiveSteps returns the steps revealed so far for the live execution panel.
func (r *Runner) ActiveSteps() []telemetry.TestStep {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]telemetry.TestStep, len(r.active))
	copy(out, r.active)
	return out
}

// RunTest executes one scenario by index. It blocks until the run finishes,
// including the step-reveal animation. Starting while another run is in
// progress (or with an out-of-range index) is a silent no-op reported by the
// false return; neither the result map nor the running index change.
func (r *Runner) RunTest(ctx context.Context, index int) bool {
	r.mu.Lock()
	if r.running != idle || index < 0 || index >= len(r.scenarios) {
		r.mu.Unlock()
		return false
	}
	r.running = index
	r.active = nil
	r.mu.Unlock()

	// The runner must land back in IDLE whatever happens below.
	defer func() {
		r.mu.Lock()
		r.running = idle
		r.mu.Unlock()
	}()

	name := r.scenarios[index].Name
	if r.logger != nil {
		r.logger.Info("scenario started", "scenario", name, "index", index)
	}

	steps, err := r.source.TestSteps(ctx, name)
	if err != nil {
		r.record(index, Result{Status: StatusFail, Duration: 0})
		if r.logger != nil {
			r.logger.Warn("scenario failed", "scenario", name, "err", err)
		}
		return true
	}

	total := 0
	for _, step := range steps {
		if err := sched.Sleep(ctx, r.clock, StepRevealDelay); err != nil {
			r.record(index, Result{Status: StatusFail, Duration: 0})
			return true
		}
		r.mu.Lock()
		r.active = append(r.active, step)
		reveal := r.reveal
		r.mu.Unlock()
		if reveal != nil {
			reveal(step)
		}
		total += step.Duration
	}

	r.record(index, Result{Status: StatusPass, Duration: total})
	if r.logger != nil {
		r.logger.Info("scenario passed", "scenario", name, "duration_ms", total)
	}
	return true
}

// RunAll executes every scenario in order, waiting for each to complete and
// pausing between runs.
func (r *Runner) RunAll(ctx context.Context) {
	for i := range r.scenarios {
		r.RunTest(ctx, i)
		if err := sched.Sleep(ctx, r.clock, InterTestPause); err != nil {
			return
		}
	}
}

func (r *Runner) record(index int, result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[index] = result
}
