package genai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedGenerator struct {
	calls     int
	failUntil int
	err       error
}

func (g *scriptedGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	if g.calls <= g.failUntil {
		return "", g.err
	}
	return "ok", nil
}

func newTestExecutor(gen TextGenerator) (*Executor, *[]time.Duration) {
	slept := []time.Duration{}
	e := NewExecutor(gen)
	e.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return e, &slept
}

func TestExecuteSucceedsFirstAttempt(t *testing.T) {
	gen := &scriptedGenerator{}
	e, slept := newTestExecutor(gen)

	text, err := e.Execute(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 1, gen.calls)
	assert.Empty(t, *slept)
}

func TestExecuteRetriesThenSucceeds(t *testing.T) {
	gen := &scriptedGenerator{failUntil: 2, err: errors.New("transient")}
	e, slept := newTestExecutor(gen)

	text, err := e.Execute(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, gen.calls)
	// Exactly two backoff sleeps, doubling from the base.
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *slept)
}

func TestExecuteExhaustsAttempts(t *testing.T) {
	cause := errors.New("connection refused")
	gen := &scriptedGenerator{failUntil: 99, err: cause}
	e, slept := newTestExecutor(gen)

	_, err := e.Execute(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, gen.calls)
	// No sleep after the final attempt.
	assert.Len(t, *slept, 2)
}

func TestExecutorPolicyOverride(t *testing.T) {
	cause := errors.New("connection refused")
	gen := &scriptedGenerator{failUntil: 99, err: cause}
	e := NewExecutorWithPolicy(gen, 2, 0)

	_, err := e.Execute(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 2, gen.calls)
}

func TestExecuteHonorsContextDuringBackoff(t *testing.T) {
	gen := &scriptedGenerator{failUntil: 99, err: errors.New("transient")}
	e := NewExecutor(gen)
	e.sleep = func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	}

	_, err := e.Execute(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, gen.calls)
}
