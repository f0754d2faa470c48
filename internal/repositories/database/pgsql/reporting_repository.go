package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Reports cover journals that reached the ledger: POSTED plus REVERSED
// originals, whose effect the reversal journal nets out.
const postedStatuses = `('POSTED', 'REVERSED')`

// reportingRepository implements the ReportingRepository interface.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceRows aggregates posted debit/credit per account over the range.
// Active accounts appear even with no activity in the range; inactive accounts
// appear only when they have activity.
func (r *reportingRepository) GetTrialBalanceRows(ctx context.Context, companyID string, fromDate, toDate time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		LEFT JOIN (journal_lines l
			JOIN journals j ON j.journal_id = l.journal_id
				AND j.company_id = $1
				AND j.status IN ` + postedStatuses + `
				AND j.journal_date >= $2
				AND j.journal_date <= $3
		) ON l.account_id = a.account_id
		WHERE a.company_id = $1
			AND (a.is_active = true OR l.line_id IS NOT NULL)
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, companyID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.AccountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetAccountOpeningBalance returns the signed sum (debit - credit) of posted
// lines strictly before the given date.
func (r *reportingRepository) GetAccountOpeningBalance(ctx context.Context, companyID, accountID string, before time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit - l.credit), 0)
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		WHERE j.company_id = $1
			AND l.account_id = $2
			AND j.status IN ` + postedStatuses + `
			AND j.journal_date < $3;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, accountID, before).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("error querying opening balance: %w", err)
	}
	return balance, nil
}

// GetLedgerEntries retrieves an account's posted lines in the optional window,
// ordered by journal date then journal id for a stable running balance.
func (r *reportingRepository) GetLedgerEntries(ctx context.Context, companyID, accountID string, fromDate, toDate *time.Time) ([]domain.GeneralLedgerEntry, error) {
	query := `
		SELECT j.journal_id, j.journal_date, j.reference, COALESCE(l.description, j.description, ''), l.debit, l.credit
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		WHERE j.company_id = $1
			AND l.account_id = $2
			AND j.status IN ` + postedStatuses
	args := []any{companyID, accountID}

	if fromDate != nil {
		args = append(args, *fromDate)
		query += fmt.Sprintf(" AND j.journal_date >= $%d", len(args))
	}
	if toDate != nil {
		args = append(args, *toDate)
		query += fmt.Sprintf(" AND j.journal_date <= $%d", len(args))
	}
	query += " ORDER BY j.journal_date, j.journal_id, l.line_order;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.GeneralLedgerEntry{}
	for rows.Next() {
		var entry domain.GeneralLedgerEntry
		if err := rows.Scan(
			&entry.JournalID,
			&entry.JournalDate,
			&entry.Reference,
			&entry.Description,
			&entry.Debit,
			&entry.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning ledger entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// GetLedgerBalanceAsOf returns the signed ledger balance of an account up to
// and including the given date.
func (r *reportingRepository) GetLedgerBalanceAsOf(ctx context.Context, companyID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit - l.credit), 0)
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		WHERE j.company_id = $1
			AND l.account_id = $2
			AND j.status IN ` + postedStatuses + `
			AND j.journal_date <= $3;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, companyID, accountID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("error querying ledger balance: %w", err)
	}
	return balance, nil
}
