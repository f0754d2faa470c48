package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// auditService appends to and queries the append-only audit log. Writes are
// best-effort relative to the originating business operation: a failed write is
// reported to the operational logger and never surfaces to the caller.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditLogRepositoryFacade
}

// NewAuditService creates a new audit log service.
func NewAuditService(auditRepo portsrepo.AuditLogRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record appends one audit entry outside any business transaction.
func (s *auditService) Record(ctx context.Context, event portssvc.AuditEvent) {
	entry, err := s.buildEntry(event)
	if err != nil {
		s.logWriteFailure(ctx, err, event)
		return
	}
	if err := s.auditRepo.InsertEntry(ctx, entry); err != nil {
		s.logWriteFailure(ctx, err, event)
	}
}

// RecordInTx appends one audit entry inside the caller's transaction. The
// repository isolates the insert behind a savepoint, so a failed audit write
// does not poison the business transaction.
func (s *auditService) RecordInTx(ctx context.Context, tx pgx.Tx, event portssvc.AuditEvent) {
	entry, err := s.buildEntry(event)
	if err != nil {
		s.logWriteFailure(ctx, err, event)
		return
	}
	if err := s.auditRepo.InsertEntryTx(ctx, tx, entry); err != nil {
		s.logWriteFailure(ctx, err, event)
	}
}

// Query retrieves a filtered page of entries, newest first.
func (s *auditService) Query(ctx context.Context, companyID string, params dto.AuditQueryParams) ([]domain.AuditLogEntry, error) {
	filter := portsrepo.AuditQueryFilter{
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		ActorType:  domain.ActorType(params.ActorType),
		ActionType: domain.AuditAction(params.ActionType),
		FromDate:   params.FromDate,
		ToDate:     params.ToDate,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	entries, err := s.auditRepo.QueryEntries(ctx, companyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to query audit log", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	return entries, nil
}

func (s *auditService) buildEntry(event portssvc.AuditEvent) (domain.AuditLogEntry, error) {
	entry := domain.AuditLogEntry{
		AuditID:    uuid.NewString(),
		CompanyID:  event.CompanyID,
		ActorType:  event.Actor.Type,
		ActorID:    event.Actor.UserID,
		ActionType: event.ActionType,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Reason:     event.Reason,
		CreatedAt:  time.Now().UTC(),
	}
	if entry.ActorType == "" {
		entry.ActorType = domain.ActorSystem
	}

	var err error
	if entry.BeforeState, err = marshalState(event.Before); err != nil {
		return entry, fmt.Errorf("marshal before state: %w", err)
	}
	if entry.AfterState, err = marshalState(event.After); err != nil {
		return entry, fmt.Errorf("marshal after state: %w", err)
	}
	if entry.Metadata, err = marshalState(event.Metadata); err != nil {
		return entry, fmt.Errorf("marshal metadata: %w", err)
	}
	return entry, nil
}

func marshalState(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(v)
}

func (s *auditService) logWriteFailure(ctx context.Context, err error, event portssvc.AuditEvent) {
	// Operational error channel: the business mutation already succeeded (or is
	// committing); auditability is traded for availability here.
	s.LogError(ctx, err, "Audit log write failed",
		slog.String("company_id", event.CompanyID),
		slog.String("entity_type", event.EntityType),
		slog.String("entity_id", event.EntityID),
		slog.String("action", string(event.ActionType)))
}
