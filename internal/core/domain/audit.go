package domain

import (
	"encoding/json"
	"time"
)

// ActorType identifies what kind of principal performed an audited action.
type ActorType string

const (
	ActorUser   ActorType = "USER"
	ActorAI     ActorType = "AI"
	ActorSystem ActorType = "SYSTEM"
)

// AuditAction is the verb recorded against an entity.
type AuditAction string

const (
	AuditCreate    AuditAction = "CREATE"
	AuditUpdate    AuditAction = "UPDATE"
	AuditDelete    AuditAction = "DELETE"
	AuditPost      AuditAction = "POST"
	AuditReverse   AuditAction = "REVERSE"
	AuditApprove   AuditAction = "APPROVE"
	AuditAuthorize AuditAction = "AUTHORIZE"
	AuditSubmit    AuditAction = "SUBMIT"
	AuditLock      AuditAction = "LOCK"
)

// Audited entity types.
const (
	EntityAccount           = "account"
	EntityJournal           = "journal"
	EntityVATPeriod         = "vat_period"
	EntityVATReconciliation = "vat_reconciliation"
	EntityVATSubmission     = "vat_submission"
	EntityVATReportSnapshot = "vat_report_snapshot"
)

// AuditLogEntry is one append-only record of a state-changing action.
// Rows are never updated or deleted; entity references are weak (by id only)
// and survive deletion of the entity itself.
type AuditLogEntry struct {
	AuditID     string          `json:"auditID"` // Primary key (UUID)
	CompanyID   string          `json:"companyID"`
	ActorType   ActorType       `json:"actorType"`
	ActorID     string          `json:"actorID"`
	ActionType  AuditAction     `json:"actionType"`
	EntityType  string          `json:"entityType"` // e.g. "journal", "vat_reconciliation"
	EntityID    string          `json:"entityID"`
	BeforeState json.RawMessage `json:"beforeState,omitempty"`
	AfterState  json.RawMessage `json:"afterState,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
