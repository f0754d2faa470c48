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

const journalColumns = `
	journal_id, company_id, journal_date, reference, description, source_type, status,
	posted_by, posted_at, reversal_of_id, reversed_by_id,
	created_at, created_by, last_updated_at, last_updated_by
`

const insertJournalQuery = `
	INSERT INTO journals (` + journalColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

const insertJournalLineQuery = `
	INSERT INTO journal_lines (line_id, journal_id, account_id, debit, credit, description, line_order)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveJournal persists a new journal and its lines within one DB transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertJournalTx(ctx, tx, journal); err != nil {
		return err
	}
	if err := insertJournalLinesTx(ctx, tx, journal.Lines); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for journal "+journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal header by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal "+journalID, err)
	}
	return journal, nil
}

// FindJournalLines retrieves a journal's lines in line order.
func (r *PgxJournalRepository) FindJournalLines(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, journal_id, account_id, debit, credit, description, line_order
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY line_order;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var line domain.JournalLine
		var description sql.NullString
		err := rows.Scan(
			&line.LineID,
			&line.JournalID,
			&line.AccountID,
			&line.Debit,
			&line.Credit,
			&description,
			&line.LineOrder,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal "+journalID, err)
		}
		line.Description = description.String
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating line rows for journal "+journalID, err)
	}
	return lines, nil
}

// ListJournals retrieves a filtered page of journal headers for a company,
// ordered by journal date desc then id desc.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID string, filter portsrepo.ListJournalsFilter) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE company_id = $1`
	args := []any{companyID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.SourceType != "" {
		args = append(args, filter.SourceType)
		query += fmt.Sprintf(" AND source_type = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		query += fmt.Sprintf(" AND journal_date >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		query += fmt.Sprintf(" AND journal_date <= $%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY journal_date DESC, journal_id DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating journal rows", err)
	}
	return journals, nil
}

// FindJournalForUpdateTx loads a journal header under a row lock.
func (r *PgxJournalRepository) FindJournalForUpdateTx(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1 FOR UPDATE;`
	journal, err := scanJournal(tx.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock journal "+journalID, err)
	}
	return journal, nil
}

// MarkPostedTx transitions a journal to POSTED.
func (r *PgxJournalRepository) MarkPostedTx(ctx context.Context, tx pgx.Tx, journalID, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE journals
		SET status = $1, posted_by = $2, posted_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE journal_id = $4;
	`
	tag, err := tx.Exec(ctx, query, domain.JournalPosted, postedBy, postedAt, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal "+journalID+" posted", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveReversalTx inserts the reversing journal with its lines and marks the
// original REVERSED with a link back to the reversal.
func (r *PgxJournalRepository) SaveReversalTx(ctx context.Context, tx pgx.Tx, reversal domain.Journal, originalJournalID string, updatedBy string, updatedAt time.Time) error {
	if err := insertJournalTx(ctx, tx, reversal); err != nil {
		return err
	}
	if err := insertJournalLinesTx(ctx, tx, reversal.Lines); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for reversal "+reversal.JournalID, err)
	}

	query := `
		UPDATE journals
		SET status = $1, reversed_by_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = $5;
	`
	tag, err := tx.Exec(ctx, query, domain.JournalReversed, reversal.JournalID, updatedAt, updatedBy, originalJournalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal "+originalJournalID+" reversed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteJournalTx deletes a journal and its lines.
func (r *PgxJournalRepository) DeleteJournalTx(ctx context.Context, tx pgx.Tx, journalID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for journal "+journalID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func insertJournalTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	_, err := tx.Exec(ctx, insertJournalQuery,
		journal.JournalID,
		journal.CompanyID,
		journal.JournalDate,
		journal.Reference,
		nullableString(journal.Description),
		journal.SourceType,
		journal.Status,
		nullableString(journal.PostedBy),
		journal.PostedAt,
		journal.ReversalOfID,
		journal.ReversedByID,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+journal.JournalID, err)
	}
	return nil
}

func insertJournalLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(insertJournalLineQuery,
			line.LineID,
			line.JournalID,
			line.AccountID,
			line.Debit,
			line.Credit,
			nullableString(line.Description),
			line.LineOrder,
		)
	}
	br := tx.SendBatch(ctx, batch)
	return br.Close()
}

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var journal domain.Journal
	var description, postedBy sql.NullString
	var postedAt sql.NullTime
	var reversalOfID, reversedByID sql.NullString

	err := row.Scan(
		&journal.JournalID,
		&journal.CompanyID,
		&journal.JournalDate,
		&journal.Reference,
		&description,
		&journal.SourceType,
		&journal.Status,
		&postedBy,
		&postedAt,
		&reversalOfID,
		&reversedByID,
		&journal.CreatedAt,
		&journal.CreatedBy,
		&journal.LastUpdatedAt,
		&journal.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	journal.Description = description.String
	journal.PostedBy = postedBy.String
	if postedAt.Valid {
		journal.PostedAt = &postedAt.Time
	}
	if reversalOfID.Valid {
		journal.ReversalOfID = &reversalOfID.String
	}
	if reversedByID.Valid {
		journal.ReversedByID = &reversedByID.String
	}
	return &journal, nil
}
