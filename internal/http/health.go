package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 2 * time.Second

// HealthChecker reports whether a dependency answers.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// PingFunc adapts a ping such as MongoDB's HealthCheck to a HealthChecker.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Check(ctx context.Context) error { return f(ctx) }

// HealthHandler serves the liveness and readiness checks.
type HealthHandler struct {
	checkers map[string]HealthChecker
	breakers map[string]*circuitbreaker.CircuitBreaker
	timeout  time.Duration
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
		timeout:  readinessTimeout,
	}
}

// RegisterChecker adds a dependency pinged by the readiness check.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker adds a breaker whose open state fails readiness.
// A half-open breaker is recovering and still counts as ready.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.breakers[name] = cb
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness endpoint.
//
// @Summary     Liveness check
// @Description Answers while the process is serving. Metrics are scraped from /metrics.
// @Tags        Health
// @Produce     json
// @Success     200 {object} dto.ReadinessResponse "Process is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ReadinessResponse{Status: dto.StatusReady})
}

// Readiness handles the readiness endpoint.
//
// @Summary     Readiness check
// @Description Pings every registered dependency concurrently and reports each circuit breaker. Any failed ping or open breaker answers 503.
// @Tags        Health
// @Produce     json
// @Success     200 {object} dto.ReadinessResponse "Ready"
// @Failure     503 {object} dto.ReadinessResponse "A dependency is down"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp := dto.ReadinessResponse{Status: dto.StatusReady}

	if len(h.checkers) > 0 {
		resp.Checks = h.ping(c.Request.Context())
		for _, result := range resp.Checks {
			if result != dto.StatusReady {
				resp.Status = dto.StatusDegraded
			}
		}
	}

	if len(h.breakers) > 0 {
		resp.Circuits = make(map[string]string, len(h.breakers))
		for name, cb := range h.breakers {
			state := cb.State()
			resp.Circuits[name] = state.String()
			if state == circuitbreaker.StateOpen {
				resp.Status = dto.StatusDegraded
			}
		}
	}

	status := http.StatusOK
	if resp.Status != dto.StatusReady {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) ping(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]string, len(h.checkers))
	)
	for name, checker := range h.checkers {
		g.Go(func() error {
			result := dto.StatusReady
			if err := checker.Check(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}
