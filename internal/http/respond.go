package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/domain/dto"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/i18n"
	"github.com/guttosm/quote-service/internal/middleware"
)

// BuildRequest decodes the JSON body into a new T and runs its binding rules.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ResponseBuilder writes the dto envelopes, stamped with the request id.
type ResponseBuilder struct {
	c *gin.Context
}

func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

func (b *ResponseBuilder) Success(status int, data any) {
	b.c.JSON(status, dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now().UTC(),
	})
}

func (b *ResponseBuilder) SuccessOK(data any)      { b.Success(http.StatusOK, data) }
func (b *ResponseBuilder) SuccessCreated(data any) { b.Success(http.StatusCreated, data) }

// Error aborts with the catalog message for key in the caller's language.
// err, when set, is attached to the context for the request log.
func (b *ResponseBuilder) Error(status int, key string, err error) {
	msg := i18n.GetTranslator().Translate(key, i18n.GetLocale(b.c))
	b.abort(status, msg, nil, err)
}

// Fail maps a domain error to its status and aborts. Validation and config
// errors keep their own message so the caller sees what to fix.
func (b *ResponseBuilder) Fail(err error) {
	status, key := middleware.ErrorStatus(err)

	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		var details map[string]string
		if vErr.Field != "" {
			details = map[string]string{vErr.Field: vErr.Message}
		}
		b.abort(status, vErr.Error(), details, err)
		return
	}
	var cErr *model.ConfigError
	if errors.As(err, &cErr) {
		b.abort(status, cErr.Error(), nil, err)
		return
	}
	b.Error(status, key, err)
}

func (b *ResponseBuilder) abort(status int, message string, details map[string]string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	resp := dto.NewError(dto.ErrCodeFromStatus(status), message).WithRequestID(middleware.GetRequestID(b.c))
	resp.Details = details
	b.c.AbortWithStatusJSON(status, resp)
}
