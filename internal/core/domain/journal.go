package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	JournalDraft    JournalStatus = "DRAFT"
	JournalPosted   JournalStatus = "POSTED"
	JournalReversed JournalStatus = "REVERSED"
)

// ReversalSourceSuffix marks the sourceType of a reversal journal.
const ReversalSourceSuffix = ":reversal"

// Journal represents a single, balanced financial event composed of ordered lines.
// Lifecycle: created DRAFT, posted once (irreversible), neutralised only by a
// separate reversal journal; a DRAFT may be deleted, a POSTED journal never.
type Journal struct {
	JournalID    string        `json:"journalID"` // Primary key (UUID)
	CompanyID    string        `json:"companyID"`
	JournalDate  time.Time     `json:"journalDate"`
	Reference    string        `json:"reference"`
	Description  string        `json:"description"`
	SourceType   string        `json:"sourceType"` // Originating subsystem (e.g. "manual", "bank-import")
	Status       JournalStatus `json:"status"`
	PostedBy     string        `json:"postedBy,omitempty"`
	PostedAt     *time.Time    `json:"postedAt,omitempty"`
	ReversalOfID *string       `json:"reversalOfID,omitempty"` // Set on the reversing journal
	ReversedByID *string       `json:"reversedByID,omitempty"` // Set on the original once reversed
	Lines        []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one debit-or-credit posting against an account.
// Exactly one of Debit/Credit is non-zero on a valid line.
type JournalLine struct {
	LineID      string          `json:"lineID"` // Primary key (UUID)
	JournalID   string          `json:"journalID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineOrder   int             `json:"lineOrder"`
}

// TotalDebit sums the debit side of the journal's lines.
func (j *Journal) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of the journal's lines.
func (j *Journal) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}
	return total
}
