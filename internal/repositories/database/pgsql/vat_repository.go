package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vatPeriodColumns = `
	vat_period_id, company_id, period_key, from_date, to_date, filing_frequency, status,
	created_at, created_by, last_updated_at, last_updated_by
`

const vatReconColumns = `
	vat_reconciliation_id, vat_period_id, version, status, soa_amount,
	diff_authorized, diff_authorized_by, diff_authorized_at,
	soa_authorized, soa_authorized_by, soa_authorized_at,
	approved_by, approved_at, locked_by, locked_at, metadata,
	created_at, created_by, last_updated_at, last_updated_by
`

type PgxVATRepository struct {
	BaseRepository
}

// newPgxVATRepository creates a new repository for the VAT workflow tables.
func newPgxVATRepository(pool *pgxpool.Pool) portsrepo.VATRepositoryWithTx {
	return &PgxVATRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VATRepositoryWithTx = (*PgxVATRepository)(nil)

// FindPeriodByID retrieves a company's period by id.
func (r *PgxVATRepository) FindPeriodByID(ctx context.Context, companyID, periodID string) (*domain.VATPeriod, error) {
	query := `SELECT ` + vatPeriodColumns + ` FROM vat_periods WHERE vat_period_id = $1 AND company_id = $2;`
	period, err := scanVATPeriod(r.Pool.QueryRow(ctx, query, periodID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period "+periodID, err)
	}
	return period, nil
}

// ListPeriods retrieves a page of a company's periods ordered by from date desc.
func (r *PgxVATRepository) ListPeriods(ctx context.Context, companyID string, limit, offset int) ([]domain.VATPeriod, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + vatPeriodColumns + `
		FROM vat_periods
		WHERE company_id = $1
		ORDER BY from_date DESC, vat_period_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods", err)
	}
	defer rows.Close()

	periods := []domain.VATPeriod{}
	for rows.Next() {
		period, err := scanVATPeriod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating period rows", err)
	}
	return periods, nil
}

// GetOrCreatePeriod returns the existing period for (companyID, periodKey) or
// inserts the candidate. ON CONFLICT keeps it idempotent under concurrency.
func (r *PgxVATRepository) GetOrCreatePeriod(ctx context.Context, period domain.VATPeriod) (*domain.VATPeriod, error) {
	insert := `
		INSERT INTO vat_periods (` + vatPeriodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_id, period_key) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, insert,
		period.VATPeriodID,
		period.CompanyID,
		period.PeriodKey,
		period.FromDate,
		period.ToDate,
		period.FilingFrequency,
		period.Status,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert period "+period.PeriodKey, err)
	}

	query := `SELECT ` + vatPeriodColumns + ` FROM vat_periods WHERE company_id = $1 AND period_key = $2;`
	existing, err := scanVATPeriod(r.Pool.QueryRow(ctx, query, period.CompanyID, period.PeriodKey))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read back period "+period.PeriodKey, err)
	}
	return existing, nil
}

// FindPeriodForUpdateTx loads a period under a row lock.
func (r *PgxVATRepository) FindPeriodForUpdateTx(ctx context.Context, tx pgx.Tx, companyID, periodID string) (*domain.VATPeriod, error) {
	query := `SELECT ` + vatPeriodColumns + ` FROM vat_periods WHERE vat_period_id = $1 AND company_id = $2 FOR UPDATE;`
	period, err := scanVATPeriod(tx.QueryRow(ctx, query, periodID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock period "+periodID, err)
	}
	return period, nil
}

// UpdatePeriodStatusTx transitions a period's status.
func (r *PgxVATRepository) UpdatePeriodStatusTx(ctx context.Context, tx pgx.Tx, periodID string, status domain.PeriodStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE vat_periods
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE vat_period_id = $4;
	`
	tag, err := tx.Exec(ctx, query, status, updatedAt, updatedBy, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of period "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindReconciliationByID retrieves a reconciliation header by id.
func (r *PgxVATRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.VATReconciliation, error) {
	query := `SELECT ` + vatReconColumns + ` FROM vat_reconciliations WHERE vat_reconciliation_id = $1;`
	recon, err := scanVATReconciliation(r.Pool.QueryRow(ctx, query, reconciliationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reconciliation "+reconciliationID, err)
	}
	return recon, nil
}

// FindReconciliationLines retrieves a reconciliation's lines in line order.
func (r *PgxVATRepository) FindReconciliationLines(ctx context.Context, reconciliationID string) ([]domain.VATReconciliationLine, error) {
	query := `
		SELECT line_id, vat_reconciliation_id, section_key, row_key, label,
		       vat_amount, tb_amount, statement_amount, difference_amount, account_id, line_order
		FROM vat_reconciliation_lines
		WHERE vat_reconciliation_id = $1
		ORDER BY line_order;
	`
	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for reconciliation "+reconciliationID, err)
	}
	defer rows.Close()

	lines := []domain.VATReconciliationLine{}
	for rows.Next() {
		var line domain.VATReconciliationLine
		var label, accountID sql.NullString
		err := rows.Scan(
			&line.LineID,
			&line.VATReconciliationID,
			&line.SectionKey,
			&line.RowKey,
			&label,
			&line.VATAmount,
			&line.TBAmount,
			&line.StatementAmount,
			&line.DifferenceAmount,
			&accountID,
			&line.LineOrder,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reconciliation line row", err)
		}
		line.Label = label.String
		line.AccountID = accountID.String
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating reconciliation line rows", err)
	}
	return lines, nil
}

// FindLatestReconciliation retrieves the highest-version reconciliation for a period.
func (r *PgxVATRepository) FindLatestReconciliation(ctx context.Context, periodID string) (*domain.VATReconciliation, error) {
	query := `
		SELECT ` + vatReconColumns + `
		FROM vat_reconciliations
		WHERE vat_period_id = $1
		ORDER BY version DESC
		LIMIT 1;
	`
	recon, err := scanVATReconciliation(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest reconciliation for period "+periodID, err)
	}
	return recon, nil
}

// FindDraftReconciliationTx retrieves the period's current DRAFT reconciliation.
func (r *PgxVATRepository) FindDraftReconciliationTx(ctx context.Context, tx pgx.Tx, periodID string) (*domain.VATReconciliation, error) {
	query := `
		SELECT ` + vatReconColumns + `
		FROM vat_reconciliations
		WHERE vat_period_id = $1 AND status = $2
		ORDER BY version DESC
		LIMIT 1;
	`
	recon, err := scanVATReconciliation(tx.QueryRow(ctx, query, periodID, domain.PeriodDraft))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find draft reconciliation for period "+periodID, err)
	}
	return recon, nil
}

// MaxReconciliationVersionTx returns the highest version recorded for the period.
func (r *PgxVATRepository) MaxReconciliationVersionTx(ctx context.Context, tx pgx.Tx, periodID string) (int, error) {
	var version int
	query := `SELECT COALESCE(MAX(version), 0) FROM vat_reconciliations WHERE vat_period_id = $1;`
	if err := tx.QueryRow(ctx, query, periodID).Scan(&version); err != nil {
		return 0, apperrors.NewAppError(500, "failed to resolve max version for period "+periodID, err)
	}
	return version, nil
}

// InsertReconciliationTx inserts a new reconciliation version with its lines.
func (r *PgxVATRepository) InsertReconciliationTx(ctx context.Context, tx pgx.Tx, recon domain.VATReconciliation) error {
	query := `
		INSERT INTO vat_reconciliations (` + vatReconColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, query,
		recon.VATReconciliationID,
		recon.VATPeriodID,
		recon.Version,
		recon.Status,
		recon.SOAAmount,
		recon.DiffAuthorized,
		nullableString(recon.DiffAuthorizedBy),
		recon.DiffAuthorizedAt,
		recon.SOAAuthorized,
		nullableString(recon.SOAAuthorizedBy),
		recon.SOAAuthorizedAt,
		nullableString(recon.ApprovedBy),
		recon.ApprovedAt,
		nullableString(recon.LockedBy),
		recon.LockedAt,
		recon.Metadata,
		recon.CreatedAt,
		recon.CreatedBy,
		recon.LastUpdatedAt,
		recon.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "reconciliation version already exists for period "+recon.VATPeriodID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert reconciliation "+recon.VATReconciliationID, err)
	}
	return insertReconciliationLinesTx(ctx, tx, recon.VATReconciliationID, recon.Lines)
}

// UpdateReconciliationTx updates a draft's header fields and fully replaces its lines.
func (r *PgxVATRepository) UpdateReconciliationTx(ctx context.Context, tx pgx.Tx, recon domain.VATReconciliation) error {
	query := `
		UPDATE vat_reconciliations
		SET soa_amount = $1, metadata = $2,
		    diff_authorized = $3, diff_authorized_by = $4, diff_authorized_at = $5,
		    soa_authorized = $6, soa_authorized_by = $7, soa_authorized_at = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE vat_reconciliation_id = $11 AND status = $12;
	`
	tag, err := tx.Exec(ctx, query,
		recon.SOAAmount,
		recon.Metadata,
		recon.DiffAuthorized,
		nullableString(recon.DiffAuthorizedBy),
		recon.DiffAuthorizedAt,
		recon.SOAAuthorized,
		nullableString(recon.SOAAuthorizedBy),
		recon.SOAAuthorizedAt,
		recon.LastUpdatedAt,
		recon.LastUpdatedBy,
		recon.VATReconciliationID,
		domain.PeriodDraft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update reconciliation "+recon.VATReconciliationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM vat_reconciliation_lines WHERE vat_reconciliation_id = $1;`, recon.VATReconciliationID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for reconciliation "+recon.VATReconciliationID, err)
	}
	return insertReconciliationLinesTx(ctx, tx, recon.VATReconciliationID, recon.Lines)
}

// UpdateReconciliationStatusTx transitions a reconciliation's status, recording
// the approving or locking user. The status predicate makes concurrent
// transitions race-safe: only one of two racing approvals can win.
func (r *PgxVATRepository) UpdateReconciliationStatusTx(ctx context.Context, tx pgx.Tx, reconciliationID string, status domain.PeriodStatus, byUserID string, at time.Time) error {
	var query string
	var from domain.PeriodStatus
	switch status {
	case domain.PeriodApproved:
		from = domain.PeriodDraft
		query = `
			UPDATE vat_reconciliations
			SET status = $1, approved_by = $2, approved_at = $3, last_updated_at = $3, last_updated_by = $2
			WHERE vat_reconciliation_id = $4 AND status = $5;
		`
	case domain.PeriodLocked:
		from = domain.PeriodApproved
		query = `
			UPDATE vat_reconciliations
			SET status = $1, locked_by = $2, locked_at = $3, last_updated_at = $3, last_updated_by = $2
			WHERE vat_reconciliation_id = $4 AND status = $5;
		`
	default:
		from = domain.PeriodDraft
		query = `
			UPDATE vat_reconciliations
			SET status = $1, last_updated_at = $3, last_updated_by = $2
			WHERE vat_reconciliation_id = $4 AND status = $5;
		`
	}
	tag, err := tx.Exec(ctx, query, status, byUserID, at, reconciliationID, from)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of reconciliation "+reconciliationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: reconciliation %s is not %s", apperrors.ErrInvalidState, reconciliationID, from)
	}
	return nil
}

// SetAuthorizationFlag records a difference or SOA sign-off on a reconciliation.
// The status predicate rejects sign-offs that race with a concurrent lock.
func (r *PgxVATRepository) SetAuthorizationFlag(ctx context.Context, reconciliationID string, soa bool, initials, byUserID string, at time.Time) error {
	var query string
	if soa {
		query = `
			UPDATE vat_reconciliations
			SET soa_authorized = true, soa_authorized_by = $1, soa_authorized_at = $2,
			    last_updated_at = $2, last_updated_by = $3
			WHERE vat_reconciliation_id = $4 AND status <> $5;
		`
	} else {
		query = `
			UPDATE vat_reconciliations
			SET diff_authorized = true, diff_authorized_by = $1, diff_authorized_at = $2,
			    last_updated_at = $2, last_updated_by = $3
			WHERE vat_reconciliation_id = $4 AND status <> $5;
		`
	}
	tag, err := r.Pool.Exec(ctx, query, initials, at, byUserID, reconciliationID, domain.PeriodLocked)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record authorization on reconciliation "+reconciliationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: reconciliation %s is locked or missing", apperrors.ErrInvalidState, reconciliationID)
	}
	return nil
}

// InsertSubmissionTx inserts the immutable submission record.
func (r *PgxVATRepository) InsertSubmissionTx(ctx context.Context, tx pgx.Tx, submission domain.VATSubmission) error {
	query := `
		INSERT INTO vat_submissions (
			vat_submission_id, company_id, vat_period_id, vat_reconciliation_id,
			submission_date, submitted_by, submission_reference,
			output_vat, input_vat, net_vat, payment_date, payment_reference, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		submission.VATSubmissionID,
		submission.CompanyID,
		submission.VATPeriodID,
		submission.VATReconciliationID,
		submission.SubmissionDate,
		submission.SubmittedBy,
		submission.SubmissionReference,
		submission.OutputVAT,
		submission.InputVAT,
		submission.NetVAT,
		submission.PaymentDate,
		nullableString(submission.PaymentReference),
		submission.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert submission "+submission.VATSubmissionID, err)
	}
	return nil
}

// ListSubmissions retrieves a period's submissions ordered by date desc.
func (r *PgxVATRepository) ListSubmissions(ctx context.Context, companyID, periodID string) ([]domain.VATSubmission, error) {
	query := `
		SELECT vat_submission_id, company_id, vat_period_id, vat_reconciliation_id,
		       submission_date, submitted_by, submission_reference,
		       output_vat, input_vat, net_vat, payment_date, payment_reference, created_at
		FROM vat_submissions
		WHERE company_id = $1 AND vat_period_id = $2
		ORDER BY submission_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query submissions for period "+periodID, err)
	}
	defer rows.Close()

	submissions := []domain.VATSubmission{}
	for rows.Next() {
		var sub domain.VATSubmission
		var paymentDate sql.NullTime
		var paymentReference sql.NullString
		err := rows.Scan(
			&sub.VATSubmissionID,
			&sub.CompanyID,
			&sub.VATPeriodID,
			&sub.VATReconciliationID,
			&sub.SubmissionDate,
			&sub.SubmittedBy,
			&sub.SubmissionReference,
			&sub.OutputVAT,
			&sub.InputVAT,
			&sub.NetVAT,
			&paymentDate,
			&paymentReference,
			&sub.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan submission row", err)
		}
		if paymentDate.Valid {
			sub.PaymentDate = &paymentDate.Time
		}
		sub.PaymentReference = paymentReference.String
		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating submission rows", err)
	}
	return submissions, nil
}

// SaveSnapshot persists a generated report snapshot.
func (r *PgxVATRepository) SaveSnapshot(ctx context.Context, snapshot domain.VATReportSnapshot) error {
	query := `
		INSERT INTO vat_report_snapshots (
			snapshot_id, company_id, vat_period_id, report_type, payload, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		snapshot.SnapshotID,
		snapshot.CompanyID,
		snapshot.VATPeriodID,
		snapshot.ReportType,
		snapshot.Payload,
		snapshot.Status,
		snapshot.CreatedAt,
		snapshot.CreatedBy,
		snapshot.LastUpdatedAt,
		snapshot.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert report snapshot "+snapshot.SnapshotID, err)
	}
	return nil
}

// FindSnapshotsByPeriod retrieves a period's report snapshots.
func (r *PgxVATRepository) FindSnapshotsByPeriod(ctx context.Context, periodID string) ([]domain.VATReportSnapshot, error) {
	query := `
		SELECT snapshot_id, company_id, vat_period_id, report_type, payload, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM vat_report_snapshots
		WHERE vat_period_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query snapshots for period "+periodID, err)
	}
	defer rows.Close()

	snapshots := []domain.VATReportSnapshot{}
	for rows.Next() {
		var snap domain.VATReportSnapshot
		err := rows.Scan(
			&snap.SnapshotID,
			&snap.CompanyID,
			&snap.VATPeriodID,
			&snap.ReportType,
			&snap.Payload,
			&snap.Status,
			&snap.CreatedAt,
			&snap.CreatedBy,
			&snap.LastUpdatedAt,
			&snap.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan snapshot row", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating snapshot rows", err)
	}
	return snapshots, nil
}

// LockSnapshotsTx marks every snapshot of the period LOCKED.
func (r *PgxVATRepository) LockSnapshotsTx(ctx context.Context, tx pgx.Tx, periodID string, lockedBy string, at time.Time) error {
	query := `
		UPDATE vat_report_snapshots
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE vat_period_id = $4;
	`
	if _, err := tx.Exec(ctx, query, domain.PeriodLocked, at, lockedBy, periodID); err != nil {
		return apperrors.NewAppError(500, "failed to lock snapshots for period "+periodID, err)
	}
	return nil
}

func insertReconciliationLinesTx(ctx context.Context, tx pgx.Tx, reconciliationID string, lines []domain.VATReconciliationLine) error {
	query := `
		INSERT INTO vat_reconciliation_lines (
			line_id, vat_reconciliation_id, section_key, row_key, label,
			vat_amount, tb_amount, statement_amount, difference_amount, account_id, line_order
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query,
			line.LineID,
			reconciliationID,
			line.SectionKey,
			line.RowKey,
			nullableString(line.Label),
			line.VATAmount,
			line.TBAmount,
			line.StatementAmount,
			line.DifferenceAmount,
			nullableString(line.AccountID),
			line.LineOrder,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for reconciliation "+reconciliationID, err)
	}
	return nil
}

func scanVATPeriod(row pgx.Row) (*domain.VATPeriod, error) {
	var period domain.VATPeriod
	err := row.Scan(
		&period.VATPeriodID,
		&period.CompanyID,
		&period.PeriodKey,
		&period.FromDate,
		&period.ToDate,
		&period.FilingFrequency,
		&period.Status,
		&period.CreatedAt,
		&period.CreatedBy,
		&period.LastUpdatedAt,
		&period.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func scanVATReconciliation(row pgx.Row) (*domain.VATReconciliation, error) {
	var recon domain.VATReconciliation
	var diffBy, soaBy, approvedBy, lockedBy sql.NullString
	var diffAt, soaAt, approvedAt, lockedAt sql.NullTime

	err := row.Scan(
		&recon.VATReconciliationID,
		&recon.VATPeriodID,
		&recon.Version,
		&recon.Status,
		&recon.SOAAmount,
		&recon.DiffAuthorized,
		&diffBy,
		&diffAt,
		&recon.SOAAuthorized,
		&soaBy,
		&soaAt,
		&approvedBy,
		&approvedAt,
		&lockedBy,
		&lockedAt,
		&recon.Metadata,
		&recon.CreatedAt,
		&recon.CreatedBy,
		&recon.LastUpdatedAt,
		&recon.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	recon.DiffAuthorizedBy = diffBy.String
	recon.SOAAuthorizedBy = soaBy.String
	recon.ApprovedBy = approvedBy.String
	recon.LockedBy = lockedBy.String
	if diffAt.Valid {
		recon.DiffAuthorizedAt = &diffAt.Time
	}
	if soaAt.Valid {
		recon.SOAAuthorizedAt = &soaAt.Time
	}
	if approvedAt.Valid {
		recon.ApprovedAt = &approvedAt.Time
	}
	if lockedAt.Valid {
		recon.LockedAt = &lockedAt.Time
	}
	return &recon, nil
}
