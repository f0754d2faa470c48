package repositories

import (
	"context"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditQueryFilter narrows an audit log query. Zero values mean "no filter".
type AuditQueryFilter struct {
	EntityType string
	EntityID   string
	ActorType  domain.ActorType
	ActionType domain.AuditAction
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

// AuditLogRepositoryFacade defines storage operations for the append-only audit
// log. There are deliberately no update or delete operations.
type AuditLogRepositoryFacade interface {
	// InsertEntry appends one audit row.
	InsertEntry(ctx context.Context, entry domain.AuditLogEntry) error

	// InsertEntryTx appends one audit row inside the caller's transaction, so
	// the trace commits together with the mutation it describes.
	InsertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLogEntry) error

	// QueryEntries retrieves a filtered page ordered by created_at desc, id desc.
	QueryEntries(ctx context.Context, companyID string, filter AuditQueryFilter) ([]domain.AuditLogEntry, error)
}
