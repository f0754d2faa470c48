package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount maps an imported bank statement feed onto a ledger account.
type BankAccount struct {
	BankAccountID   string `json:"bankAccountID"` // Primary key (UUID)
	CompanyID       string `json:"companyID"`
	Name            string `json:"name"`
	BankName        string `json:"bankName"`
	AccountNumber   string `json:"accountNumber"`
	LedgerAccountID string `json:"ledgerAccountID"` // FK -> accounts
	IsActive        bool   `json:"isActive"`
	AuditFields
}

// BankTransaction is one imported statement line. StatementBalance is the
// bank's running balance after this line; IsReconciled flips once the line has
// been matched to a posted journal.
type BankTransaction struct {
	BankTransactionID string          `json:"bankTransactionID"` // Primary key (UUID)
	CompanyID         string          `json:"companyID"`
	BankAccountID     string          `json:"bankAccountID"`
	TransactionDate   time.Time       `json:"transactionDate"`
	Description       string          `json:"description"`
	Reference         string          `json:"reference"`
	Amount            decimal.Decimal `json:"amount"` // Signed: deposits positive, withdrawals negative
	StatementBalance  decimal.Decimal `json:"statementBalance"`
	IsReconciled      bool            `json:"isReconciled"`
	MatchedJournalID  *string         `json:"matchedJournalID,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}
