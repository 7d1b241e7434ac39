package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/circuitbreaker"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/logger"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service"
)

// ErrorStatus maps a service or engine error to its HTTP status and message key.
func ErrorStatus(err error) (int, string) {
	var vErr *model.ValidationError
	var cErr *model.ConfigError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequest
	case errors.As(err, &cErr):
		return http.StatusUnprocessableEntity, i18n.ErrKeyInvalidConfig
	case errors.Is(err, service.ErrTenantNotFound):
		return http.StatusNotFound, i18n.ErrKeyTenantNotFound
	case errors.Is(err, repository.ErrVersionConflict):
		return http.StatusConflict, i18n.ErrKeyConflict
	case errors.Is(err, service.ErrRepositoryNotConfigured):
		return http.StatusServiceUnavailable, i18n.ErrKeyDatabaseDisabled
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

// ErrorBody builds the translated error response for a status and message key.
func ErrorBody(c *gin.Context, status int, key string) dto.ErrorResponse {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	return dto.NewError(dto.ErrCodeFromStatus(status), message).WithRequestID(GetRequestID(c))
}

// Abort writes the translated error for key and stops the handler chain.
func Abort(c *gin.Context, status int, key string) {
	c.AbortWithStatusJSON(status, ErrorBody(c, status, key))
}

// ErrorHandler renders the last error a handler attached with c.Error, using
// ErrorStatus for the status code.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		status, key := ErrorStatus(last.Err)

		log := logger.Logger()
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("tenant", GetTenant(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Err(last.Err).
			Msg("Request failed")

		if !c.Writer.Written() {
			c.JSON(status, ErrorBody(c, status, key))
		}
	}
}
