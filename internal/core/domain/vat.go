package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus tracks the monotonic draft -> approved -> locked lifecycle shared
// by VAT periods and reconciliation versions. LOCKED is terminal.
type PeriodStatus string

const (
	PeriodDraft    PeriodStatus = "DRAFT"
	PeriodApproved PeriodStatus = "APPROVED"
	PeriodLocked   PeriodStatus = "LOCKED"
)

// FilingFrequency is the cadence of the filing window.
type FilingFrequency string

const (
	FilingMonthly   FilingFrequency = "MONTHLY"
	FilingBiMonthly FilingFrequency = "BI_MONTHLY"
	FilingAnnual    FilingFrequency = "ANNUAL"
)

// VATPeriod is a fixed VAT/PAYE filing window, created idempotently per
// (companyID, periodKey).
type VATPeriod struct {
	VATPeriodID     string          `json:"vatPeriodID"` // Primary key (UUID)
	CompanyID       string          `json:"companyID"`
	PeriodKey       string          `json:"periodKey"` // e.g. "2026-03/04", unique per company
	FromDate        time.Time       `json:"fromDate"`
	ToDate          time.Time       `json:"toDate"`
	FilingFrequency FilingFrequency `json:"filingFrequency"`
	Status          PeriodStatus    `json:"status"`
	AuditFields
}

// VATReconciliation is one versioned comparison of VAT-ledger amounts against
// trial-balance and statement-of-account figures for a period.
type VATReconciliation struct {
	VATReconciliationID string          `json:"vatReconciliationID"` // Primary key (UUID)
	VATPeriodID         string          `json:"vatPeriodID"`
	Version             int             `json:"version"` // Unique per period, monotonically increasing
	Status              PeriodStatus    `json:"status"`
	SOAAmount           decimal.Decimal `json:"soaAmount"` // Statement-of-account balance reconciled against
	DiffAuthorized      bool            `json:"diffAuthorized"`
	DiffAuthorizedBy    string          `json:"diffAuthorizedBy,omitempty"` // Authorizer initials
	DiffAuthorizedAt    *time.Time      `json:"diffAuthorizedAt,omitempty"`
	SOAAuthorized       bool            `json:"soaAuthorized"`
	SOAAuthorizedBy     string          `json:"soaAuthorizedBy,omitempty"`
	SOAAuthorizedAt     *time.Time      `json:"soaAuthorizedAt,omitempty"`
	ApprovedBy          string          `json:"approvedBy,omitempty"`
	ApprovedAt          *time.Time      `json:"approvedAt,omitempty"`
	LockedBy            string          `json:"lockedBy,omitempty"`
	LockedAt            *time.Time      `json:"lockedAt,omitempty"`
	Metadata            json.RawMessage `json:"metadata,omitempty"`
	Lines               []VATReconciliationLine `json:"lines,omitempty"`
	AuditFields
}

// VATReconciliationLine carries the computed VAT-ledger amount for one report row
// together with the trial-balance/statement amounts it is reconciled against.
type VATReconciliationLine struct {
	LineID              string          `json:"lineID"` // Primary key (UUID)
	VATReconciliationID string          `json:"vatReconciliationID"`
	SectionKey          string          `json:"sectionKey"` // e.g. "OUTPUT", "INPUT"
	RowKey              string          `json:"rowKey"`     // e.g. "1", "14A"
	Label               string          `json:"label"`
	VATAmount           decimal.Decimal `json:"vatAmount"`
	TBAmount            decimal.Decimal `json:"tbAmount"`
	StatementAmount     decimal.Decimal `json:"statementAmount"`
	DifferenceAmount    decimal.Decimal `json:"differenceAmount"`
	AccountID           string          `json:"accountID,omitempty"`
	LineOrder           int             `json:"lineOrder"`
}

// VATSubmission records a filing with the revenue authority. Created once at
// submission time, never mutated.
type VATSubmission struct {
	VATSubmissionID     string          `json:"vatSubmissionID"` // Primary key (UUID)
	CompanyID           string          `json:"companyID"`
	VATPeriodID         string          `json:"vatPeriodID"`
	VATReconciliationID string          `json:"vatReconciliationID"`
	SubmissionDate      time.Time       `json:"submissionDate"`
	SubmittedBy         string          `json:"submittedBy"`
	SubmissionReference string          `json:"submissionReference"`
	OutputVAT           decimal.Decimal `json:"outputVAT"`
	InputVAT            decimal.Decimal `json:"inputVAT"`
	NetVAT              decimal.Decimal `json:"netVAT"`
	PaymentDate         *time.Time      `json:"paymentDate,omitempty"`
	PaymentReference    string          `json:"paymentReference,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// VATReportSnapshot is a generated report payload (VAT201-style) tied to a
// period; frozen (locked) when the period is submitted.
type VATReportSnapshot struct {
	SnapshotID  string          `json:"snapshotID"` // Primary key (UUID)
	CompanyID   string          `json:"companyID"`
	VATPeriodID string          `json:"vatPeriodID"`
	ReportType  string          `json:"reportType"` // e.g. "VAT201"
	Payload     json.RawMessage `json:"payload"`
	Status      PeriodStatus    `json:"status"`
	AuditFields
}
