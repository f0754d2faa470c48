package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService derives read-only reports from posted journal data. It never
// writes, so nothing here is audited or capability-checked beyond authentication.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
	bankRepo      portsrepo.BankRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade, bankRepo portsrepo.BankRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		bankRepo:      bankRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance aggregates per-account debit/credit totals over the range,
// bucketed by account type. Accounts with no posted activity are omitted.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, fromDate, toDate time.Time) (*domain.TrialBalanceReport, error) {
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: toDate must not be before fromDate", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, companyID, fromDate, toDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate trial balance", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}

	byType := make(map[domain.AccountType][]domain.TrialBalanceRow)
	for i := range rows {
		rows[i].Balance = rows[i].Debit.Sub(rows[i].Credit)
		byType[rows[i].AccountType] = append(byType[rows[i].AccountType], rows[i])
	}

	report := &domain.TrialBalanceReport{
		CompanyID:   companyID,
		FromDate:    fromDate,
		ToDate:      toDate,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, accountType := range domain.AccountTypes {
		typeRows, ok := byType[accountType]
		if !ok {
			continue
		}
		bucket := domain.TrialBalanceBucket{
			AccountType: accountType,
			Rows:        typeRows,
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
		}
		for _, row := range typeRows {
			bucket.TotalDebit = bucket.TotalDebit.Add(row.Debit)
			bucket.TotalCredit = bucket.TotalCredit.Add(row.Credit)
		}
		bucket.Balance = bucket.TotalDebit.Sub(bucket.TotalCredit)
		report.TotalDebit = report.TotalDebit.Add(bucket.TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(bucket.TotalCredit)
		report.Buckets = append(report.Buckets, bucket)
	}

	report.IsBalanced = accounting.WithinTolerance(report.TotalDebit, report.TotalCredit)
	if !report.IsBalanced {
		// Only reversals bypass posting validation, and they mirror balanced
		// journals, so an unbalanced ledger means corrupted data.
		s.GetLogger(ctx).Error("Trial balance does not balance",
			slog.String("company_id", companyID),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
	}
	return report, nil
}

// GeneralLedger walks an account's posted lines in date order with a running
// balance seeded from the opening balance before the window.
func (s *reportingService) GeneralLedger(ctx context.Context, companyID, accountID string, fromDate, toDate *time.Time) (*domain.GeneralLedgerReport, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	opening := decimal.Zero
	if fromDate != nil {
		opening, err = s.reportingRepo.GetAccountOpeningBalance(ctx, companyID, accountID, *fromDate)
		if err != nil {
			return nil, fmt.Errorf("failed to compute opening balance: %w", err)
		}
	}

	entries, err := s.reportingRepo.GetLedgerEntries(ctx, companyID, accountID, fromDate, toDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	report := &domain.GeneralLedgerReport{
		AccountID:      accountID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		FromDate:       fromDate,
		ToDate:         toDate,
		OpeningBalance: opening,
		Entries:        entries,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}

	running := opening
	for i := range entries {
		running = running.Add(entries[i].Debit).Sub(entries[i].Credit)
		entries[i].RunningBalance = running
		report.TotalDebit = report.TotalDebit.Add(entries[i].Debit)
		report.TotalCredit = report.TotalCredit.Add(entries[i].Credit)
	}
	report.ClosingBalance = running
	return report, nil
}

// BankReconciliation derives the statement-vs-ledger delta for a bank account
// as of a date. Unreconciled statement lines explain timing differences.
func (s *reportingService) BankReconciliation(ctx context.Context, companyID, bankAccountID string, asOfDate time.Time) (*domain.BankReconciliationReport, error) {
	bankAccount, err := s.bankRepo.FindBankAccountByID(ctx, companyID, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}

	statementBalance, _, err := s.bankRepo.LatestStatementBalance(ctx, bankAccountID, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve statement balance: %w", err)
	}

	ledgerBalance, err := s.reportingRepo.GetLedgerBalanceAsOf(ctx, companyID, bankAccount.LedgerAccountID, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ledger balance: %w", err)
	}

	unreconciled, err := s.bankRepo.ListUnreconciledTransactions(ctx, bankAccountID, asOfDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unreconciled transactions", slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to list unreconciled transactions: %w", err)
	}

	unreconciledTotal := decimal.Zero
	for _, txn := range unreconciled {
		unreconciledTotal = unreconciledTotal.Add(txn.Amount)
	}

	reconciled := statementBalance.Sub(unreconciledTotal)
	// Positive difference means the ledger is overstated against the statement.
	diff := ledgerBalance.Sub(reconciled)

	return &domain.BankReconciliationReport{
		BankAccountID:     bankAccountID,
		LedgerAccountID:   bankAccount.LedgerAccountID,
		AsOfDate:          asOfDate,
		StatementBalance:  statementBalance,
		LedgerBalance:     ledgerBalance,
		UnreconciledTotal: unreconciledTotal,
		ReconciledBalance: reconciled,
		Difference:        diff,
		IsReconciled:      accounting.WithinTolerance(reconciled, ledgerBalance),
		Unreconciled:      unreconciled,
	}, nil
}
