package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyConflict indicates a concurrent write won.
	ErrKeyConflict = "error.conflict"
	// ErrKeyUnavailable indicates an open circuit breaker.
	ErrKeyUnavailable = "error.unavailable"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyInvalidConfig indicates the tenant's pricing config cannot price the order.
	ErrKeyInvalidConfig = "error.invalid_config"
	// ErrKeyTenantNotFound indicates no pricing config exists for the tenant.
	ErrKeyTenantNotFound = "error.tenant_not_found"
	// ErrKeyTenantMismatch indicates a console token issued for another tenant.
	ErrKeyTenantMismatch = "error.tenant_mismatch"
	// ErrKeyPortalDisabled indicates the tenant has not enabled the customer portal.
	ErrKeyPortalDisabled = "error.portal_disabled"
	// ErrKeyDatabaseDisabled indicates an operation that needs MongoDB.
	ErrKeyDatabaseDisabled = "error.database_disabled"
	// ErrKeyPDFUnavailable indicates the PDF renderer failed.
	ErrKeyPDFUnavailable = "error.pdf_unavailable"
	// ErrKeyEmailUnavailable indicates email delivery is off or its circuit is open.
	ErrKeyEmailUnavailable = "error.email_unavailable"
	// ErrKeyEmailFailed indicates the mail provider rejected a message.
	ErrKeyEmailFailed = "error.email_failed"
	// ErrKeyConsoleAuthDisabled indicates console tokens cannot be issued.
	ErrKeyConsoleAuthDisabled = "error.console_auth_disabled"
)

// Success message translation keys.
const (
	// SuccessKeyQuoteCalculated indicates a successful quote calculation.
	SuccessKeyQuoteCalculated = "success.quote_calculated"
)
