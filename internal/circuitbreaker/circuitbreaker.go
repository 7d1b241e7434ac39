// Package circuitbreaker guards calls to MongoDB and the mail provider.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guttosm/quote-service/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned without calling the dependency while the breaker
// is open, or while a half-open trial call is already in flight.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is a breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config tunes a breaker.
type Config struct {
	// FailureThreshold consecutive counted failures open the breaker.
	FailureThreshold int
	// SuccessThreshold consecutive trial successes close it again.
	SuccessThreshold int
	// Timeout is how long the breaker stays open before admitting a trial call.
	Timeout time.Duration
	// Name labels logs and metrics.
	Name string
	// IsFailure decides whether an error counts toward opening. Nil counts
	// every error. Errors that do not count are still returned.
	IsFailure func(error) bool
}

// DefaultConfig returns the settings used for MongoDB collections.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

// CircuitBreaker is safe for concurrent use. While half-open it admits one
// trial call at a time; concurrent callers get ErrCircuitOpen.
type CircuitBreaker struct {
	cfg Config
	now func() time.Time

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	openedAt    time.Time
	lastFailure time.Time
	probing     bool
}

// New returns a closed breaker. Zero thresholds fall back to DefaultConfig.
func New(cfg Config) *CircuitBreaker {
	def := DefaultConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	cb := &CircuitBreaker{cfg: cfg, now: time.Now}
	metrics.SetCircuitState(cfg.Name, int(StateClosed))
	return cb
}

// Execute runs fn unless the breaker refuses the call.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	trial, err := cb.admit()
	if err != nil {
		metrics.RecordCircuitRejected(cb.cfg.Name)
		return err
	}

	err = fn()
	cb.record(trial, err)
	return err
}

// Do is Execute for calls that return a value.
func Do[T any](ctx context.Context, cb *CircuitBreaker, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func() error {
		var callErr error
		out, callErr = fn(ctx)
		return callErr
	})
	return out, err
}

func (cb *CircuitBreaker) admit() (trial bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.Timeout {
			return false, ErrCircuitOpen
		}
		cb.transition(StateHalfOpen)
		fallthrough
	case StateHalfOpen:
		if cb.probing {
			return false, ErrCircuitOpen
		}
		cb.probing = true
		return true, nil
	default:
		return false, nil
	}
}

func (cb *CircuitBreaker) record(trial bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if trial {
		cb.probing = false
	}
	if err != nil && cb.cfg.IsFailure != nil && !cb.cfg.IsFailure(err) {
		// Not the dependency's fault; a trial that hit one proves nothing.
		return
	}

	if err != nil {
		cb.failures++
		cb.lastFailure = cb.now()
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			cb.open()
		}
		return
	}

	cb.failures = 0
	if cb.state != StateHalfOpen {
		return
	}
	cb.successes++
	if cb.successes >= cb.cfg.SuccessThreshold {
		cb.transition(StateClosed)
	}
}

func (cb *CircuitBreaker) open() {
	cb.openedAt = cb.now()
	cb.transition(StateOpen)
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	cb.successes = 0
	if to == StateClosed {
		cb.failures = 0
	}
	metrics.SetCircuitState(cb.cfg.Name, int(to))

	ev := log.Info()
	if to == StateOpen {
		ev = log.Warn().Int("failures", cb.failures)
	}
	ev.Str("circuit_breaker", cb.cfg.Name).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("Circuit breaker state changed")
}

// State returns the current position. An open breaker whose timeout has
// elapsed still reports open until the next call tries it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats is a point-in-time view of a breaker, reported by /readyz.
type Stats struct {
	Name         string
	State        string
	FailureCount int
	SuccessCount int
	LastFailure  time.Time
	IsHealthy    bool
}

// Snapshot returns the breaker's counters.
func (cb *CircuitBreaker) Snapshot() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return Stats{
		Name:         cb.cfg.Name,
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		LastFailure:  cb.lastFailure,
		IsHealthy:    cb.state == StateClosed,
	}
}
