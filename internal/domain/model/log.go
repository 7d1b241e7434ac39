// Package model holds the quote engine's data model and the service's persisted entities.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action types recorded in audit log entries.
const (
	ActionConsoleQuote         = "console_quote"
	ActionPortalQuote          = "portal_quote"
	ActionQuotePDF             = "quote_pdf"
	ActionQuoteEmail           = "quote_emailed"
	ActionFreeformQuote        = "freeform_quote"
	ActionPublishPricingConfig = "pricing_config_published"
	ActionReloadPricingConfig  = "pricing_config_reloaded"
	ActionIssueConsoleToken    = "console_token_issued"
)

// LogEntry is a request or audit log document.
// Context-specific data goes into Fields.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Tenant     string                 `bson:"tenant,omitempty" json:"tenant,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the log entry's Fields map.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields adds multiple fields to the log entry's Fields map.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// LogQuery selects stored log entries, newest first. Zero values leave a
// field unconstrained.
type LogQuery struct {
	Tenant     string
	ActionType string
	Level      string
	RequestID  string
	Method     string
	// Path matches as a case-insensitive substring.
	Path   string
	Since  time.Time
	Until  time.Time
	Limit  int
	Offset int
}

// LogPage is one page of a LogQuery plus the number of entries it matched.
type LogPage struct {
	Entries []LogEntry `json:"entries"`
	Total   int64      `json:"total"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
}
