package services

import (
	"context"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
)

// ReportingSvcFacade exposes the pure read-side calculators over posted journal data.
type ReportingSvcFacade interface {
	// TrialBalance aggregates per-account debit/credit over the range, bucketed
	// by account type, with grand totals and the balance invariant flag.
	TrialBalance(ctx context.Context, companyID string, fromDate, toDate time.Time) (*domain.TrialBalanceReport, error)

	// GeneralLedger walks an account's posted lines with a running balance,
	// including the opening balance before the window.
	GeneralLedger(ctx context.Context, companyID, accountID string, fromDate, toDate *time.Time) (*domain.GeneralLedgerReport, error)

	// BankReconciliation derives the statement-vs-ledger delta for a bank account
	// as of a date.
	BankReconciliation(ctx context.Context, companyID, bankAccountID string, asOfDate time.Time) (*domain.BankReconciliationReport, error)
}
