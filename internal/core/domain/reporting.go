package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's aggregated debit/credit totals over the
// report window. Balance is debit minus credit.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceBucket aggregates rows of a single account type.
type TrialBalanceBucket struct {
	AccountType AccountType       `json:"accountType"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balance     decimal.Decimal   `json:"balance"`
}

// TrialBalanceReport is the full trial balance over a date range. A false
// IsBalanced signals a data-integrity fault, not a business condition.
type TrialBalanceReport struct {
	CompanyID   string               `json:"companyID"`
	FromDate    time.Time            `json:"fromDate"`
	ToDate      time.Time            `json:"toDate"`
	Buckets     []TrialBalanceBucket `json:"buckets"`
	TotalDebit  decimal.Decimal      `json:"totalDebit"`
	TotalCredit decimal.Decimal      `json:"totalCredit"`
	IsBalanced  bool                 `json:"isBalanced"`
}

// GeneralLedgerEntry is one posted line in an account's ledger with the
// running balance after that line.
type GeneralLedgerEntry struct {
	JournalID      string          `json:"journalID"`
	JournalDate    time.Time       `json:"journalDate"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport is an account's ledger over an optional window.
type GeneralLedgerReport struct {
	AccountID      string               `json:"accountID"`
	AccountCode    string               `json:"accountCode"`
	AccountName    string               `json:"accountName"`
	FromDate       *time.Time           `json:"fromDate,omitempty"`
	ToDate         *time.Time           `json:"toDate,omitempty"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Entries        []GeneralLedgerEntry `json:"entries"`
	TotalDebit     decimal.Decimal      `json:"totalDebit"`
	TotalCredit    decimal.Decimal      `json:"totalCredit"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
}

// BankReconciliationReport compares the statement balance against the mapped
// ledger account balance as of a date, netting out unreconciled statement lines.
type BankReconciliationReport struct {
	BankAccountID     string            `json:"bankAccountID"`
	LedgerAccountID   string            `json:"ledgerAccountID"`
	AsOfDate          time.Time         `json:"asOfDate"`
	StatementBalance  decimal.Decimal   `json:"statementBalance"`
	LedgerBalance     decimal.Decimal   `json:"ledgerBalance"`
	UnreconciledTotal decimal.Decimal   `json:"unreconciledTotal"`
	ReconciledBalance decimal.Decimal   `json:"reconciledBalance"`
	Difference        decimal.Decimal   `json:"difference"`
	IsReconciled      bool              `json:"isReconciled"`
	Unreconciled      []BankTransaction `json:"unreconciled"`
}
