package services

import (
	"context"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/jackc/pgx/v5"
)

// AuditEvent is what a mutating service hands to the audit log. Before/After
// are marshalled to JSON by the audit service; either may be nil.
type AuditEvent struct {
	CompanyID  string
	Actor      domain.Actor
	ActionType domain.AuditAction
	EntityType string
	EntityID   string
	Before     any
	After      any
	Reason     string
	Metadata   any
}

// AuditSvcFacade records and queries the append-only audit log. Recording is
// best-effort relative to the primary operation: failures are reported to the
// operational logger, never to the caller.
type AuditSvcFacade interface {
	// Record appends one audit entry outside any business transaction.
	Record(ctx context.Context, event AuditEvent)

	// RecordInTx appends one audit entry inside the caller's transaction so the
	// trace commits with the mutation. A failed write is isolated (savepoint)
	// and logged without poisoning the transaction.
	RecordInTx(ctx context.Context, tx pgx.Tx, event AuditEvent)

	// Query retrieves a filtered page of entries, newest first.
	Query(ctx context.Context, companyID string, params dto.AuditQueryParams) ([]domain.AuditLogEntry, error)
}
