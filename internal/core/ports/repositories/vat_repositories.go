package repositories

import (
	"context"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// VATPeriodReader defines read operations for VAT/PAYE periods.
type VATPeriodReader interface {
	// FindPeriodByID retrieves a company's period by id.
	FindPeriodByID(ctx context.Context, companyID, periodID string) (*domain.VATPeriod, error)

	// ListPeriods retrieves a page of a company's periods ordered by from date desc.
	ListPeriods(ctx context.Context, companyID string, limit, offset int) ([]domain.VATPeriod, error)
}

// VATPeriodWriter defines write operations for VAT/PAYE periods.
type VATPeriodWriter interface {
	// GetOrCreatePeriod returns the existing period for (companyID, periodKey)
	// or inserts the given one. Idempotent under concurrency.
	GetOrCreatePeriod(ctx context.Context, period domain.VATPeriod) (*domain.VATPeriod, error)

	// FindPeriodForUpdateTx loads a period under a row lock, serialising
	// concurrent draft saves and submissions for the same period.
	FindPeriodForUpdateTx(ctx context.Context, tx pgx.Tx, companyID, periodID string) (*domain.VATPeriod, error)

	// UpdatePeriodStatusTx transitions a period's status.
	UpdatePeriodStatusTx(ctx context.Context, tx pgx.Tx, periodID string, status domain.PeriodStatus, updatedBy string, updatedAt time.Time) error
}

// VATReconciliationReader defines read operations for reconciliation versions.
type VATReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation header by id.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.VATReconciliation, error)

	// FindReconciliationLines retrieves a reconciliation's lines in line order.
	FindReconciliationLines(ctx context.Context, reconciliationID string) ([]domain.VATReconciliationLine, error)

	// FindLatestReconciliation retrieves the highest-version reconciliation for
	// a period, or ErrNotFound if none exists.
	FindLatestReconciliation(ctx context.Context, periodID string) (*domain.VATReconciliation, error)
}

// VATReconciliationWriter defines write operations for reconciliation versions.
type VATReconciliationWriter interface {
	// FindDraftReconciliationTx retrieves the period's current DRAFT
	// reconciliation under the caller's transaction, or ErrNotFound.
	FindDraftReconciliationTx(ctx context.Context, tx pgx.Tx, periodID string) (*domain.VATReconciliation, error)

	// MaxReconciliationVersionTx returns the highest version number recorded for
	// the period (0 when none).
	MaxReconciliationVersionTx(ctx context.Context, tx pgx.Tx, periodID string) (int, error)

	// InsertReconciliationTx inserts a new reconciliation version with its lines.
	InsertReconciliationTx(ctx context.Context, tx pgx.Tx, recon domain.VATReconciliation) error

	// UpdateReconciliationTx updates a draft's header fields and fully replaces its lines.
	UpdateReconciliationTx(ctx context.Context, tx pgx.Tx, recon domain.VATReconciliation) error

	// UpdateReconciliationStatusTx transitions a reconciliation's status,
	// recording the approving or locking user. It returns ErrInvalidState when
	// the reconciliation is not in the expected prior status.
	UpdateReconciliationStatusTx(ctx context.Context, tx pgx.Tx, reconciliationID string, status domain.PeriodStatus, byUserID string, at time.Time) error

	// SetAuthorizationFlag records a difference or SOA sign-off on a
	// reconciliation. It returns ErrInvalidState for a locked reconciliation.
	SetAuthorizationFlag(ctx context.Context, reconciliationID string, soa bool, initials, byUserID string, at time.Time) error
}

// VATSubmissionStore defines operations over immutable submission records and
// generated report snapshots.
type VATSubmissionStore interface {
	// InsertSubmissionTx inserts the immutable submission record.
	InsertSubmissionTx(ctx context.Context, tx pgx.Tx, submission domain.VATSubmission) error

	// ListSubmissions retrieves a period's submissions ordered by date desc.
	ListSubmissions(ctx context.Context, companyID, periodID string) ([]domain.VATSubmission, error)

	// SaveSnapshot persists a generated report snapshot.
	SaveSnapshot(ctx context.Context, snapshot domain.VATReportSnapshot) error

	// FindSnapshotsByPeriod retrieves a period's report snapshots.
	FindSnapshotsByPeriod(ctx context.Context, periodID string) ([]domain.VATReportSnapshot, error)

	// LockSnapshotsTx marks every snapshot of the period LOCKED.
	LockSnapshotsTx(ctx context.Context, tx pgx.Tx, periodID string, lockedBy string, at time.Time) error
}

// VATRepositoryFacade combines all VAT workflow repository interfaces.
type VATRepositoryFacade interface {
	VATPeriodReader
	VATPeriodWriter
	VATReconciliationReader
	VATReconciliationWriter
	VATSubmissionStore
}

// VATRepositoryWithTx extends VATRepositoryFacade with transaction capabilities.
type VATRepositoryWithTx interface {
	VATRepositoryFacade
	TransactionManager
}
