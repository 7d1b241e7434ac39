package dto

import (
	"net/http"
	"time"
)

// Error codes are stable, machine-readable and never translated.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeForbidden      = "forbidden"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeConflict       = "conflict"
	ErrCodeTimeout        = "timeout"
	// ErrCodeUnavailable covers a dependency that is disabled or whose circuit is open.
	ErrCodeUnavailable = "service_unavailable"
	// ErrCodeUpstream means a provider such as the mail API refused the request.
	ErrCodeUpstream = "upstream_error"
	// ErrCodeInvalidConfig means the tenant's pricing config cannot price the request.
	ErrCodeInvalidConfig = "invalid_config"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:          ErrCodeInvalidRequest,
	http.StatusUnauthorized:        ErrCodeUnauthorized,
	http.StatusForbidden:           ErrCodeForbidden,
	http.StatusNotFound:            ErrCodeNotFound,
	http.StatusRequestTimeout:      ErrCodeTimeout,
	http.StatusConflict:            ErrCodeConflict,
	http.StatusUnprocessableEntity: ErrCodeInvalidConfig,
	http.StatusTooManyRequests:     ErrCodeRateLimit,
	http.StatusBadGateway:          ErrCodeUpstream,
	http.StatusServiceUnavailable:  ErrCodeUnavailable,
	http.StatusGatewayTimeout:      ErrCodeTimeout,
}

// SuccessResponse wraps every 2xx body.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2026-03-02T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the body of every 4xx and 5xx answer. Message is in the
// caller's language; Details maps a request field to what is wrong with it.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"quantity: must be between 1 and 100000"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-03-02T10:00:00Z"`
} // @name ErrorResponse

func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now().UTC()}
}

func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus picks the error code for a status. Unlisted 4xx statuses
// are the caller's fault and read as invalid_request; anything else is internal.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	if status >= 400 && status < 500 {
		return ErrCodeInvalidRequest
	}
	return ErrCodeInternal
}
