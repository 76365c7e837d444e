package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsim/internal/sched"
)

func TestClientWaitsBeforeResolving(t *testing.T) {
	fake := sched.NewFake()
	gen := NewGenerator(WithSeed(1), WithClock(fake))
	client := NewClient(gen, WithClientClock(fake))

	_, err := client.Metrics(context.Background())
	require.NoError(t, err)

	waits := fake.Waits()
	require.Len(t, waits, 1)
	assert.GreaterOrEqual(t, waits[0], time.Duration(0))
	assert.Less(t, waits[0], DefaultMaxLatency)
}

func TestClientZeroLatencySkipsWait(t *testing.T) {
	fake := sched.NewFake()
	gen := NewGenerator(WithSeed(1), WithClock(fake))
	client := NewClient(gen, WithClientClock(fake), WithMaxLatency(0))

	_, err := client.Topics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fake.Waits())
}

func TestClientPropagatesCancellation(t *testing.T) {
	gen := NewGenerator(WithSeed(1))
	client := NewClient(gen) // real clock; cancellation must win the race

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.LogBatch(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = client.Metrics(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientPassesThroughGeneratorData(t *testing.T) {
	fake := sched.NewFake()
	gen := NewGenerator(WithSeed(1), WithClock(fake))
	client := NewClient(gen, WithMaxLatency(0))
	ctx := context.Background()

	topics, err := client.Topics(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen.Topics(), topics)

	trace, err := client.Trace(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", trace.ID)
	assert.Equal(t, 600, trace.TotalDuration)

	steps, err := client.TestSteps(ctx, "Happy Path Order")
	require.NoError(t, err)
	assert.Len(t, steps, 4)

	msgs, err := client.Messages(ctx, "order-events")
	require.NoError(t, err)
	assert.Len(t, msgs, MessagesPerBatch)
}
