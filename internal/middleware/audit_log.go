package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/service"
)

const auditTimeout = 5 * time.Second

// AuditLog logs an admin or console action for audit purposes, such as
// publishing a pricing config or issuing a console token.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, "info", actionType, message, fields)
	persistAsync(loggingService, entry)
}

// AuditLogError logs a failed action for audit purposes.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	persistAsync(loggingService, entry)
}

// AuditQuote records a computed breakdown without delaying the response.
func AuditQuote(loggingService service.LoggingService, c *gin.Context, actionType string, b *model.Breakdown) {
	if loggingService == nil || b == nil {
		return
	}
	requestID := GetRequestID(c)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		loggingService.AuditQuote(ctx, actionType, requestID, b)
	}()
}

// GetTenant returns the tenant the request acts for: the console token's tenant
// when present, otherwise the route's :tenant parameter.
func GetTenant(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyTenant); exists {
		if tenant, ok := v.(string); ok && tenant != "" {
			return tenant
		}
	}
	return c.Param("tenant")
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	fields = withActor(c, fields)
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Tenant:     GetTenant(c),
		ActionType: actionType,
		Fields:     fields,
	}
}

func persistAsync(loggingService service.LoggingService, entry *model.LogEntry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}

// withActor returns fields plus the admin key fingerprint and console operator
// that authenticated the request. The caller's map is left untouched.
func withActor(c *gin.Context, fields map[string]interface{}) map[string]interface{} {
	admin := c.GetString(ContextKeyAdminKey)
	operator := c.GetString(ContextKeyOperator)
	if admin == "" && operator == "" {
		return fields
	}
	out := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	if admin != "" {
		out[ContextKeyAdminKey] = admin
	}
	if operator != "" {
		out["operator"] = operator
	}
	return out
}
