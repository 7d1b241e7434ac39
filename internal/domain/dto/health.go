package dto

// Readiness statuses.
const (
	StatusReady    = "ok"
	StatusDegraded = "degraded"
)

// ReadinessResponse reports each dependency ping and circuit breaker.
type ReadinessResponse struct {
	Status   string            `json:"status" example:"degraded"`
	Checks   map[string]string `json:"checks,omitempty"`
	Circuits map[string]string `json:"circuits,omitempty"`
} // @name ReadinessResponse
