//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("no reachable servers")

type clock struct{ t time.Time }

func (c *clock) now() time.Time                     { return c.t }
func (c *clock) advance(d time.Duration)            { c.t = c.t.Add(d) }
func fail() error                                   { return errDown }
func succeed() error                                { return nil }
func run(cb *CircuitBreaker, fn func() error) error { return cb.Execute(context.Background(), fn) }

func newTestBreaker(cfg Config) (*CircuitBreaker, *clock) {
	clk := &clock{t: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
	cb := New(cfg)
	cb.now = clk.now
	return cb, clk
}

func TestNew_FillsDefaults(t *testing.T) {
	cb := New(Config{})
	def := DefaultConfig()

	assert.Equal(t, def.FailureThreshold, cb.cfg.FailureThreshold)
	assert.Equal(t, def.SuccessThreshold, cb.cfg.SuccessThreshold)
	assert.Equal(t, def.Timeout, cb.cfg.Timeout)
	assert.Equal(t, def.Name, cb.cfg.Name)
	assert.Equal(t, StateClosed, cb.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}

func TestCircuitBreaker_Lifecycle(t *testing.T) {
	cb, clk := newTestBreaker(Config{FailureThreshold: 2, SuccessThreshold: 2, Timeout: 30 * time.Second, Name: "lifecycle"})

	assert.ErrorIs(t, run(cb, fail), errDown)
	assert.Equal(t, StateClosed, cb.State(), "below threshold")
	assert.ErrorIs(t, run(cb, fail), errDown)
	require.Equal(t, StateOpen, cb.State())

	called := false
	err := run(cb, func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called, "open breaker does not call through")

	clk.advance(29 * time.Second)
	assert.ErrorIs(t, run(cb, succeed), ErrCircuitOpen, "still inside the timeout")

	clk.advance(time.Second)
	assert.NoError(t, run(cb, succeed))
	assert.Equal(t, StateHalfOpen, cb.State(), "one trial success of two")
	assert.NoError(t, run(cb, succeed))
	assert.Equal(t, StateClosed, cb.State())

	stats := cb.Snapshot()
	assert.Equal(t, 0, stats.FailureCount)
	assert.True(t, stats.IsHealthy)
	assert.Equal(t, clk.t.Add(-30*time.Second), stats.LastFailure)
}

func TestCircuitBreaker_FailedTrialReopens(t *testing.T) {
	cb, clk := newTestBreaker(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute})

	_ = run(cb, fail)
	clk.advance(time.Minute)
	assert.ErrorIs(t, run(cb, fail), errDown)
	require.Equal(t, StateOpen, cb.State())

	clk.advance(59 * time.Second)
	assert.ErrorIs(t, run(cb, succeed), ErrCircuitOpen, "timeout restarts at the failed trial")
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb, _ := newTestBreaker(Config{FailureThreshold: 3})

	_ = run(cb, fail)
	_ = run(cb, fail)
	_ = run(cb, succeed)
	_ = run(cb, fail)
	_ = run(cb, fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 2, cb.Snapshot().FailureCount)
}

func TestCircuitBreaker_HalfOpenAdmitsOneTrial(t *testing.T) {
	cb, clk := newTestBreaker(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Second})
	_ = run(cb, fail)
	clk.advance(time.Second)

	inTrial := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = run(cb, func() error {
			close(inTrial)
			<-release
			return nil
		})
	}()
	<-inTrial

	assert.ErrorIs(t, run(cb, succeed), ErrCircuitOpen, "second caller while probing")
	assert.Equal(t, StateHalfOpen, cb.State())

	close(release)
	wg.Wait()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IsFailure(t *testing.T) {
	notFound := errors.New("no documents")
	cb, _ := newTestBreaker(Config{
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return !errors.Is(err, notFound) },
	})

	assert.ErrorIs(t, run(cb, func() error { return notFound }), notFound, "still returned")
	assert.Equal(t, StateClosed, cb.State())

	_ = run(cb, fail)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_CancelledContext(t *testing.T) {
	cb, _ := newTestBreaker(Config{FailureThreshold: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := cb.Execute(ctx, func() error { called = true; return nil })

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.Equal(t, StateClosed, cb.State(), "caller giving up is not a dependency failure")
}

func TestDo(t *testing.T) {
	cb, _ := newTestBreaker(Config{FailureThreshold: 1})

	n, err := Do(context.Background(), cb, func(context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = Do(context.Background(), cb, func(context.Context) (string, error) { return "", errDown })
	assert.ErrorIs(t, err, errDown)

	s, err := Do(context.Background(), cb, func(context.Context) (string, error) { return "unreachable", nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Empty(t, s)
}
