package dto

import (
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit-or-credit line in a journal create request.
// Exactly one of debit/credit must be positive; the service enforces this
// beyond what binding can express.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateJournalRequest creates a new draft journal with its lines.
type CreateJournalRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	Reference   string               `json:"reference"`
	Description string               `json:"description" binding:"required"`
	SourceType  string               `json:"sourceType"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReverseJournalRequest carries the mandatory reason for a reversal.
type ReverseJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListJournalsParams filters and paginates a journal listing.
type ListJournalsParams struct {
	Status     string     `form:"status"`
	SourceType string     `form:"sourceType"`
	FromDate   *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}

// ListJournalsResponse carries one page of journals.
type ListJournalsResponse struct {
	Journals []domain.Journal `json:"journals"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}
