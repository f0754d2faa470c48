package dto

import (
	"encoding/json"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateVATPeriodRequest get-or-creates a filing period by period key.
type CreateVATPeriodRequest struct {
	PeriodKey       string    `json:"periodKey" binding:"required"`
	FromDate        time.Time `json:"fromDate" binding:"required"`
	ToDate          time.Time `json:"toDate" binding:"required"`
	FilingFrequency string    `json:"filingFrequency" binding:"required,oneof=MONTHLY BI_MONTHLY ANNUAL"`
}

// VATReconciliationLineRequest is one reconciliation row in a draft save.
type VATReconciliationLineRequest struct {
	SectionKey      string          `json:"sectionKey" binding:"required"`
	RowKey          string          `json:"rowKey" binding:"required"`
	Label           string          `json:"label"`
	VATAmount       decimal.Decimal `json:"vatAmount"`
	TBAmount        decimal.Decimal `json:"tbAmount"`
	StatementAmount decimal.Decimal `json:"statementAmount"`
	AccountID       string          `json:"accountID"`
}

// SaveVATReconciliationRequest upserts the period's draft reconciliation,
// fully replacing its lines.
type SaveVATReconciliationRequest struct {
	VATPeriodID string                         `json:"vatPeriodID" binding:"required"`
	SOAAmount   decimal.Decimal                `json:"soaAmount"`
	Lines       []VATReconciliationLineRequest `json:"lines" binding:"required,min=1,dive"`
	Metadata    json.RawMessage                `json:"metadata"`
}

// AuthorizeReconciliationRequest carries the sign-off initials.
type AuthorizeReconciliationRequest struct {
	Initials string `json:"initials" binding:"required"`
}

// SubmitVATRequest submits a period's approved reconciliation to the filing authority.
type SubmitVATRequest struct {
	SubmissionReference string          `json:"submissionReference" binding:"required"`
	OutputVAT           decimal.Decimal `json:"outputVAT"`
	InputVAT            decimal.Decimal `json:"inputVAT"`
	NetVAT              decimal.Decimal `json:"netVAT"`
	PaymentDate         *time.Time      `json:"paymentDate"`
	PaymentReference    string          `json:"paymentReference"`
}

// VATPeriodDetail is a period together with its latest reconciliation version.
type VATPeriodDetail struct {
	Period         domain.VATPeriod          `json:"period"`
	Reconciliation *domain.VATReconciliation `json:"reconciliation,omitempty"`
}
