package repositories

import (
	"context"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-side aggregation queries. All summing
// happens at the store layer; services only bucket and total the results.
type ReportingRepository interface {
	// GetTrialBalanceRows aggregates posted debit/credit per account over the range.
	GetTrialBalanceRows(ctx context.Context, companyID string, fromDate, toDate time.Time) ([]domain.TrialBalanceRow, error)

	// GetAccountOpeningBalance returns the signed sum (debit - credit) of posted
	// lines strictly before the given date.
	GetAccountOpeningBalance(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error)

	// GetLedgerEntries retrieves an account's posted lines in the optional window,
	// ordered by journal date then journal id.
	GetLedgerEntries(ctx context.Context, companyID, accountID string, fromDate, toDate *time.Time) ([]domain.GeneralLedgerEntry, error)

	// GetLedgerBalanceAsOf returns the signed ledger balance of an account up to
	// and including the given date.
	GetLedgerBalanceAsOf(ctx context.Context, companyID, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// BankRepositoryFacade defines storage operations over bank accounts and
// imported statement lines.
type BankRepositoryFacade interface {
	// FindBankAccountByID retrieves a company's bank account by id.
	FindBankAccountByID(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error)

	// LatestStatementBalance returns the statement balance of the most recent
	// statement line at or before asOf. found is false when no line exists.
	LatestStatementBalance(ctx context.Context, bankAccountID string, asOf time.Time) (balance decimal.Decimal, found bool, err error)

	// ListUnreconciledTransactions retrieves statement lines up to asOf that have
	// not been matched to a posted journal, ordered by date.
	ListUnreconciledTransactions(ctx context.Context, bankAccountID string, asOf time.Time) ([]domain.BankTransaction, error)
}
