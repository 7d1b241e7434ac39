package dto

import (
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// ActivityQuery filters a tenant's stored quotes and admin actions.
type ActivityQuery struct {
	Action string    `form:"action" json:"action"`
	Level  string    `form:"level" json:"level" binding:"omitempty,oneof=debug info warn error"`
	Since  time.Time `form:"since" json:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until  time.Time `form:"until" json:"until" time_format:"2006-01-02T15:04:05Z07:00" binding:"omitempty,gtefield=Since"`
	Limit  int       `form:"limit" json:"limit" binding:"omitempty,min=1,max=200"`
	Offset int       `form:"offset" json:"offset" binding:"omitempty,min=0"`
}

// ToLogQuery scopes q to tenant.
func (q ActivityQuery) ToLogQuery(tenant string) model.LogQuery {
	return model.LogQuery{
		Tenant:     tenant,
		ActionType: q.Action,
		Level:      q.Level,
		Since:      q.Since,
		Until:      q.Until,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
}

// ActivityEntry is one stored entry as the admin API shows it. Client
// addresses and user agents stay in storage.
type ActivityEntry struct {
	Timestamp  time.Time              `json:"timestamp"`
	Level      string                 `json:"level" example:"info"`
	Action     string                 `json:"action,omitempty" example:"portal_quote"`
	Message    string                 `json:"message" example:"Quote computed"`
	RequestID  string                 `json:"request_id,omitempty"`
	Method     string                 `json:"method,omitempty" example:"POST"`
	Path       string                 `json:"path,omitempty"`
	StatusCode int                    `json:"status_code,omitempty" example:"200"`
	Error      string                 `json:"error,omitempty"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
} // @name ActivityEntry

// ActivityResponse is one page of tenant activity.
type ActivityResponse struct {
	Entries []ActivityEntry `json:"entries"`
	Total   int64           `json:"total" example:"137"`
	Limit   int             `json:"limit" example:"50"`
	Offset  int             `json:"offset" example:"0"`
} // @name ActivityResponse

// NewActivityResponse maps a stored page.
func NewActivityResponse(page *model.LogPage) ActivityResponse {
	resp := ActivityResponse{
		Entries: make([]ActivityEntry, len(page.Entries)),
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}
	for i, e := range page.Entries {
		resp.Entries[i] = ActivityEntry{
			Timestamp:  e.Timestamp,
			Level:      e.Level,
			Action:     e.ActionType,
			Message:    e.Message,
			RequestID:  e.RequestID,
			Method:     e.Method,
			Path:       e.Path,
			StatusCode: e.StatusCode,
			Error:      e.Error,
			Fields:     e.Fields,
		}
	}
	return resp
}
