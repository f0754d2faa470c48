package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditColumns = `
	audit_id, company_id, actor_type, actor_id, action_type, entity_type, entity_id,
	before_state, after_state, reason, metadata, created_at
`

const insertAuditQuery = `
	INSERT INTO audit_logs (` + auditColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

// PgxAuditLogRepository persists the append-only audit log. The table carries
// no update or delete statements anywhere in this package.
type PgxAuditLogRepository struct {
	BaseRepository
}

// newPgxAuditLogRepository creates a new repository for audit log data.
func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

// InsertEntry appends one audit row outside any business transaction.
func (r *PgxAuditLogRepository) InsertEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	if _, err := r.Pool.Exec(ctx, insertAuditQuery, auditArgs(entry)...); err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+entry.AuditID, err)
	}
	return nil
}

// InsertEntryTx appends one audit row inside the caller's transaction. The
// insert runs under a savepoint so a failure here rolls back the audit row
// alone and leaves the surrounding business transaction usable.
func (r *PgxAuditLogRepository) InsertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLogEntry) error {
	inner, err := tx.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to open savepoint for audit entry "+entry.AuditID, err)
	}
	if _, err := inner.Exec(ctx, insertAuditQuery, auditArgs(entry)...); err != nil {
		_ = inner.Rollback(ctx)
		return apperrors.NewAppError(500, "failed to insert audit entry "+entry.AuditID, err)
	}
	if err := inner.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to release savepoint for audit entry "+entry.AuditID, err)
	}
	return nil
}

// QueryEntries retrieves a filtered page ordered by created_at desc, id desc.
func (r *PgxAuditLogRepository) QueryEntries(ctx context.Context, companyID string, filter portsrepo.AuditQueryFilter) ([]domain.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE company_id = $1`
	args := []any{companyID}

	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		query += fmt.Sprintf(" AND entity_id = $%d", len(args))
	}
	if filter.ActorType != "" {
		args = append(args, filter.ActorType)
		query += fmt.Sprintf(" AND actor_type = $%d", len(args))
	}
	if filter.ActionType != "" {
		args = append(args, filter.ActionType)
		query += fmt.Sprintf(" AND action_type = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, audit_id DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries", err)
	}
	defer rows.Close()

	entries := []domain.AuditLogEntry{}
	for rows.Next() {
		var entry domain.AuditLogEntry
		var reason sql.NullString
		err := rows.Scan(
			&entry.AuditID,
			&entry.CompanyID,
			&entry.ActorType,
			&entry.ActorID,
			&entry.ActionType,
			&entry.EntityType,
			&entry.EntityID,
			&entry.BeforeState,
			&entry.AfterState,
			&reason,
			&entry.Metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row", err)
		}
		entry.Reason = reason.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating audit rows", err)
	}
	return entries, nil
}

func auditArgs(entry domain.AuditLogEntry) []any {
	return []any{
		entry.AuditID,
		entry.CompanyID,
		entry.ActorType,
		entry.ActorID,
		entry.ActionType,
		entry.EntityType,
		entry.EntityID,
		entry.BeforeState,
		entry.AfterState,
		nullableString(entry.Reason),
		entry.Metadata,
		entry.CreatedAt,
	}
}
