package model

import "fmt"

// ValidationError reports a caller-supplied value outside its allowed range.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConfigError reports a tenant pricing configuration that is internally inconsistent.
type ConfigError struct {
	Tenant  string
	Message string
}

// Error returns the error message for ConfigError.
func (e *ConfigError) Error() string {
	if e.Tenant == "" {
		return "pricing config: " + e.Message
	}
	return "pricing config " + e.Tenant + ": " + e.Message
}

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(tenant, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Tenant: tenant, Message: fmt.Sprintf(format, args...)}
}
