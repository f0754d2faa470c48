package dto

import "time"

// AuditQueryParams filters and paginates a forensic audit log read.
type AuditQueryParams struct {
	EntityType string     `form:"entityType"`
	EntityID   string     `form:"entityID"`
	ActorType  string     `form:"actorType"`
	ActionType string     `form:"actionType"`
	FromDate   *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}
