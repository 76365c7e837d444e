package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsim/internal/sched"
	"opsim/internal/telemetry"
)

type stubSteps struct {
	steps []telemetry.TestStep
	err   error
	block chan struct{}
}

func (s *stubSteps) TestSteps(ctx context.Context, scenario string) ([]telemetry.TestStep, error) {
	if s.block != nil {
		<-s.block
	}
	return s.steps, s.err
}

func happySteps() []telemetry.TestStep {
	return []telemetry.TestStep{
		{Name: "Order Created", Duration: 120, Status: telemetry.StatusSuccess},
		{Name: "Payment Processed", Duration: 250, Status: telemetry.StatusSuccess},
		{Name: "Inventory Reserved", Duration: 180, Status: telemetry.StatusSuccess},
		{Name: "Order Confirmed", Duration: 50, Status: telemetry.StatusSuccess},
	}
}

func TestRunTestPassAndPacing(t *testing.T) {
	fake := sched.NewFake()
	var revealed []string
	r := NewRunner(&stubSteps{steps: happySteps()},
		WithRunnerClock(fake),
		OnReveal(func(step telemetry.TestStep) { revealed = append(revealed, step.Name) }))

	ok := r.RunTest(context.Background(), 0)
	require.True(t, ok)

	result, found := r.Results()[0]
	require.True(t, found)
	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, 600, result.Duration)

	assert.Equal(t, []string{"Order Created", "Payment Processed", "Inventory Reserved", "Order Confirmed"}, revealed)
	assert.Len(t, r.ActiveSteps(), 4)

	// One reveal delay per step, nothing else.
	waits := fake.Waits()
	require.Len(t, waits, 4)
	for _, w := range waits {
		assert.Equal(t, StepRevealDelay, w)
	}

	assert.Equal(t, -1, r.Running(), "runner lands back in idle")
}

func TestRunTestFailsWhenSourceErrors(t *testing.T) {
	r := NewRunner(&stubSteps{err: errors.New("backend gone")},
		WithRunnerClock(sched.NewFake()))

	require.True(t, r.RunTest(context.Background(), 1))

	result := r.Results()[1]
	assert.Equal(t, StatusFail, result.Status)
	assert.Zero(t, result.Duration)
	assert.Equal(t, -1, r.Running())
}

func TestRunTestOutOfRangeIsSilentNoOp(t *testing.T) {
	r := NewRunner(&stubSteps{steps: happySteps()}, WithRunnerClock(sched.NewFake()))

	assert.False(t, r.RunTest(context.Background(), -1))
	assert.False(t, r.RunTest(context.Background(), 3))
	assert.Empty(t, r.Results())
}

func TestRunTestRejectsConcurrentStart(t *testing.T) {
	block := make(chan struct{})
	source := &stubSteps{steps: happySteps(), block: block}
	r := NewRunner(source, WithRunnerClock(sched.NewFake()))

	started := make(chan struct{})
	done := make(chan bool)
	go func() {
		close(started)
		done <- r.RunTest(context.Background(), 0)
	}()

	<-started
	require.Eventually(t, func() bool { return r.Running() == 0 }, time.Second, time.Millisecond)

	// Second start while the first is in flight: rejected, no state change.
	assert.False(t, r.RunTest(context.Background(), 1))
	assert.Equal(t, 0, r.Running())

	close(block)
	assert.True(t, <-done)
	assert.Equal(t, -1, r.Running())
	_, ranSecond := r.Results()[1]
	assert.False(t, ranSecond)
}

func TestRunTestCancelledContextFails(t *testing.T) {
	r := NewRunner(&stubSteps{steps: happySteps()}) // real clock; Sleep sees ctx first

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.True(t, r.RunTest(ctx, 0))
	assert.Equal(t, StatusFail, r.Results()[0].Status)
	assert.Equal(t, -1, r.Running())
}

func TestRunAllRunsEveryScenarioWithPauses(t *testing.T) {
	fake := sched.NewFake()
	r := NewRunner(&stubSteps{steps: happySteps()}, WithRunnerClock(fake))

	r.RunAll(context.Background())

	results := r.Results()
	require.Len(t, results, 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, StatusPass, results[i].Status)
	}

	// 4 reveal delays per scenario plus one pause after each.
	waits := fake.Waits()
	require.Len(t, waits, 15)
	assert.Equal(t, InterTestPause, waits[4])
	assert.Equal(t, InterTestPause, waits[9])
	assert.Equal(t, InterTestPause, waits[14])
}

func TestDefaultScenarioList(t *testing.T) {
	r := NewRunner(&stubSteps{steps: happySteps()})

	scenarios := r.Scenarios()
	require.Len(t, scenarios, 3)
	assert.Equal(t, "Happy Path Order", scenarios[0].Name)
	assert.Equal(t, "Payment Failure", scenarios[1].Name)
	assert.Equal(t, "Inventory Unavailable", scenarios[2].Name)
}
