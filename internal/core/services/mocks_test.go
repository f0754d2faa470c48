package services_test

import (
	"context"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// stubTx satisfies pgx.Tx for services that thread a transaction through
// repository calls. The services never touch the tx directly, so every method
// is inert.
type stubTx struct{}

var _ pgx.Tx = (*stubTx)(nil)

func (t *stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *stubTx) Commit(ctx context.Context) error          { return nil }
func (t *stubTx) Rollback(ctx context.Context) error        { return nil }
func (t *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *stubTx) Conn() *pgx.Conn                                               { return nil }

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalLines(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, companyID string, filter portsrepo.ListJournalsFilter) ([]domain.Journal, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalForUpdateTx(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, tx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) MarkPostedTx(ctx context.Context, tx pgx.Tx, journalID, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, tx, journalID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversalTx(ctx context.Context, tx pgx.Tx, reversal domain.Journal, originalJournalID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, reversal, originalJournalID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournalTx(ctx context.Context, tx pgx.Tx, journalID string) error {
	args := m.Called(ctx, tx, journalID)
	return args.Error(0)
}

// --- Mock AccountService (as used by JournalService) ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, onlyActive bool, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, onlyActive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock AuditService ---

type MockAuditService struct {
	mock.Mock
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

func (m *MockAuditService) Record(ctx context.Context, event portssvc.AuditEvent) {
	m.Called(ctx, event)
}

func (m *MockAuditService) RecordInTx(ctx context.Context, tx pgx.Tx, event portssvc.AuditEvent) {
	m.Called(ctx, tx, event)
}

func (m *MockAuditService) Query(ctx context.Context, companyID string, params dto.AuditQueryParams) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Mock AuditLogRepository ---

type MockAuditLogRepository struct {
	mock.Mock
}

var _ portsrepo.AuditLogRepositoryFacade = (*MockAuditLogRepository)(nil)

func (m *MockAuditLogRepository) InsertEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) InsertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) QueryEntries(ctx context.Context, companyID string, filter portsrepo.AuditQueryFilter) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// --- Mock VATRepository ---

type MockVATRepository struct {
	mock.Mock
}

var _ portsrepo.VATRepositoryWithTx = (*MockVATRepository)(nil)

func (m *MockVATRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockVATRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockVATRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockVATRepository) FindPeriodByID(ctx context.Context, companyID, periodID string) (*domain.VATPeriod, error) {
	args := m.Called(ctx, companyID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATPeriod), args.Error(1)
}

func (m *MockVATRepository) ListPeriods(ctx context.Context, companyID string, limit, offset int) ([]domain.VATPeriod, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATPeriod), args.Error(1)
}

func (m *MockVATRepository) GetOrCreatePeriod(ctx context.Context, period domain.VATPeriod) (*domain.VATPeriod, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATPeriod), args.Error(1)
}

func (m *MockVATRepository) FindPeriodForUpdateTx(ctx context.Context, tx pgx.Tx, companyID, periodID string) (*domain.VATPeriod, error) {
	args := m.Called(ctx, tx, companyID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATPeriod), args.Error(1)
}

func (m *MockVATRepository) UpdatePeriodStatusTx(ctx context.Context, tx pgx.Tx, periodID string, status domain.PeriodStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, periodID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockVATRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.VATReconciliation, error) {
	args := m.Called(ctx, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATReconciliation), args.Error(1)
}

func (m *MockVATRepository) FindReconciliationLines(ctx context.Context, reconciliationID string) ([]domain.VATReconciliationLine, error) {
	args := m.Called(ctx, reconciliationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATReconciliationLine), args.Error(1)
}

func (m *MockVATRepository) FindLatestReconciliation(ctx context.Context, periodID string) (*domain.VATReconciliation, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATReconciliation), args.Error(1)
}

func (m *MockVATRepository) FindDraftReconciliationTx(ctx context.Context, tx pgx.Tx, periodID string) (*domain.VATReconciliation, error) {
	args := m.Called(ctx, tx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VATReconciliation), args.Error(1)
}

func (m *MockVATRepository) MaxReconciliationVersionTx(ctx context.Context, tx pgx.Tx, periodID string) (int, error) {
	args := m.Called(ctx, tx, periodID)
	return args.Int(0), args.Error(1)
}

func (m *MockVATRepository) InsertReconciliationTx(ctx context.Context, tx pgx.Tx, recon domain.VATReconciliation) error {
	args := m.Called(ctx, tx, recon)
	return args.Error(0)
}

func (m *MockVATRepository) UpdateReconciliationTx(ctx context.Context, tx pgx.Tx, recon domain.VATReconciliation) error {
	args := m.Called(ctx, tx, recon)
	return args.Error(0)
}

func (m *MockVATRepository) UpdateReconciliationStatusTx(ctx context.Context, tx pgx.Tx, reconciliationID string, status domain.PeriodStatus, byUserID string, at time.Time) error {
	args := m.Called(ctx, tx, reconciliationID, status, byUserID, at)
	return args.Error(0)
}

func (m *MockVATRepository) SetAuthorizationFlag(ctx context.Context, reconciliationID string, soa bool, initials, byUserID string, at time.Time) error {
	args := m.Called(ctx, reconciliationID, soa, initials, byUserID, at)
	return args.Error(0)
}

func (m *MockVATRepository) InsertSubmissionTx(ctx context.Context, tx pgx.Tx, submission domain.VATSubmission) error {
	args := m.Called(ctx, tx, submission)
	return args.Error(0)
}

func (m *MockVATRepository) ListSubmissions(ctx context.Context, companyID, periodID string) ([]domain.VATSubmission, error) {
	args := m.Called(ctx, companyID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATSubmission), args.Error(1)
}

func (m *MockVATRepository) SaveSnapshot(ctx context.Context, snapshot domain.VATReportSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockVATRepository) FindSnapshotsByPeriod(ctx context.Context, periodID string) ([]domain.VATReportSnapshot, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATReportSnapshot), args.Error(1)
}

func (m *MockVATRepository) LockSnapshotsTx(ctx context.Context, tx pgx.Tx, periodID string, lockedBy string, at time.Time) error {
	args := m.Called(ctx, tx, periodID, lockedBy, at)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, onlyActive bool, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, onlyActive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) HasJournalLines(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceRows(ctx context.Context, companyID string, fromDate, toDate time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetAccountOpeningBalance(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, before)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetLedgerEntries(ctx context.Context, companyID, accountID string, fromDate, toDate *time.Time) ([]domain.GeneralLedgerEntry, error) {
	args := m.Called(ctx, companyID, accountID, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralLedgerEntry), args.Error(1)
}

func (m *MockReportingRepository) GetLedgerBalanceAsOf(ctx context.Context, companyID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, accountID, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock BankRepository ---

type MockBankRepository struct {
	mock.Mock
}

var _ portsrepo.BankRepositoryFacade = (*MockBankRepository)(nil)

func (m *MockBankRepository) FindBankAccountByID(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, companyID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankRepository) LatestStatementBalance(ctx context.Context, bankAccountID string, asOf time.Time) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, bankAccountID, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockBankRepository) ListUnreconciledTransactions(ctx context.Context, bankAccountID string, asOf time.Time) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, bankAccountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}
