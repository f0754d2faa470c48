package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/google/uuid"
)

// vatService owns the VAT/PAYE reconciliation workflow. Draft saves and
// submissions take a row lock on the parent period so version numbers stay
// monotonic and lock transitions cannot race.
type vatService struct {
	BaseService
	vatRepo  portsrepo.VATRepositoryWithTx
	auditSvc portssvc.AuditSvcFacade
}

// NewVATService creates a new VATService.
func NewVATService(vatRepo portsrepo.VATRepositoryWithTx, auditSvc portssvc.AuditSvcFacade, canPerform domain.CapabilityChecker) portssvc.VATSvcFacade {
	return &vatService{
		BaseService: BaseService{CanPerform: canPerform},
		vatRepo:     vatRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.VATSvcFacade = (*vatService)(nil)

// GetOrCreatePeriod idempotently resolves a filing period by period key.
func (s *vatService) GetOrCreatePeriod(ctx context.Context, companyID string, req dto.CreateVATPeriodRequest, actor domain.Actor) (*domain.VATPeriod, error) {
	if err := s.Authorize(ctx, actor, domain.CapReconSave); err != nil {
		return nil, err
	}
	if !req.ToDate.After(req.FromDate) {
		return nil, fmt.Errorf("%w: toDate must be after fromDate", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	candidate := domain.VATPeriod{
		VATPeriodID:     uuid.NewString(),
		CompanyID:       companyID,
		PeriodKey:       req.PeriodKey,
		FromDate:        req.FromDate,
		ToDate:          req.ToDate,
		FilingFrequency: domain.FilingFrequency(req.FilingFrequency),
		Status:          domain.PeriodDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	period, err := s.vatRepo.GetOrCreatePeriod(ctx, candidate)
	if err != nil {
		s.LogError(ctx, err, "Failed to get or create VAT period", slog.String("period_key", req.PeriodKey))
		return nil, fmt.Errorf("failed to get or create period: %w", err)
	}

	if period.VATPeriodID == candidate.VATPeriodID {
		s.auditSvc.Record(ctx, portssvc.AuditEvent{
			CompanyID:  companyID,
			Actor:      actor,
			ActionType: domain.AuditCreate,
			EntityType: domain.EntityVATPeriod,
			EntityID:   period.VATPeriodID,
			After:      *period,
		})
	}
	return period, nil
}

// ListPeriods retrieves a page of a company's periods.
func (s *vatService) ListPeriods(ctx context.Context, companyID string, limit, offset int) ([]domain.VATPeriod, error) {
	periods, err := s.vatRepo.ListPeriods(ctx, companyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list VAT periods", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// GetPeriodDetail retrieves a period with its latest reconciliation version and lines.
func (s *vatService) GetPeriodDetail(ctx context.Context, companyID, periodID string) (*dto.VATPeriodDetail, error) {
	period, err := s.vatRepo.FindPeriodByID(ctx, companyID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}

	detail := &dto.VATPeriodDetail{Period: *period}

	recon, err := s.vatRepo.FindLatestReconciliation(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return detail, nil
		}
		return nil, fmt.Errorf("failed to load latest reconciliation: %w", err)
	}

	lines, err := s.vatRepo.FindReconciliationLines(ctx, recon.VATReconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciliation lines: %w", err)
	}
	recon.Lines = lines
	detail.Reconciliation = recon
	return detail, nil
}

// SaveDraftReconciliation upserts the period's draft reconciliation, fully
// replacing its lines. When no draft exists a new version is inserted with
// version = max + 1, computed under the period row lock.
func (s *vatService) SaveDraftReconciliation(ctx context.Context, companyID string, req dto.SaveVATReconciliationRequest, actor domain.Actor) (*domain.VATReconciliation, error) {
	if err := s.Authorize(ctx, actor, domain.CapReconSave); err != nil {
		return nil, err
	}

	tx, err := s.vatRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.vatRepo.Rollback(ctx, tx)

	period, err := s.vatRepo.FindPeriodForUpdateTx(ctx, tx, companyID, req.VATPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load period %s: %w", req.VATPeriodID, err)
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period is locked", apperrors.ErrInvalidState)
	}

	now := time.Now().UTC()

	existing, err := s.vatRepo.FindDraftReconciliationTx(ctx, tx, period.VATPeriodID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load draft reconciliation: %w", err)
	}

	var recon domain.VATReconciliation
	var beforeState any
	if existing != nil {
		beforeLines, lerr := s.vatRepo.FindReconciliationLines(ctx, existing.VATReconciliationID)
		if lerr == nil {
			existing.Lines = beforeLines
		}
		beforeState = *existing

		recon = *existing
		recon.SOAAmount = req.SOAAmount
		recon.Metadata = req.Metadata
		recon.Lines = buildReconciliationLines(recon.VATReconciliationID, req.Lines)
		// A new draft save invalidates earlier sign-offs.
		recon.DiffAuthorized = false
		recon.DiffAuthorizedBy = ""
		recon.DiffAuthorizedAt = nil
		recon.SOAAuthorized = false
		recon.SOAAuthorizedBy = ""
		recon.SOAAuthorizedAt = nil
		recon.LastUpdatedAt = now
		recon.LastUpdatedBy = actor.UserID

		if err := s.vatRepo.UpdateReconciliationTx(ctx, tx, recon); err != nil {
			s.LogError(ctx, err, "Failed to update draft reconciliation", slog.String("reconciliation_id", recon.VATReconciliationID))
			return nil, fmt.Errorf("failed to update reconciliation: %w", err)
		}
	} else {
		maxVersion, verr := s.vatRepo.MaxReconciliationVersionTx(ctx, tx, period.VATPeriodID)
		if verr != nil {
			return nil, fmt.Errorf("failed to resolve reconciliation version: %w", verr)
		}

		recon = domain.VATReconciliation{
			VATReconciliationID: uuid.NewString(),
			VATPeriodID:         period.VATPeriodID,
			Version:             maxVersion + 1,
			Status:              domain.PeriodDraft,
			SOAAmount:           req.SOAAmount,
			Metadata:            req.Metadata,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		recon.Lines = buildReconciliationLines(recon.VATReconciliationID, req.Lines)

		if err := s.vatRepo.InsertReconciliationTx(ctx, tx, recon); err != nil {
			s.LogError(ctx, err, "Failed to insert reconciliation", slog.String("period_id", period.VATPeriodID))
			return nil, fmt.Errorf("failed to insert reconciliation: %w", err)
		}
	}

	action := domain.AuditUpdate
	if existing == nil {
		action = domain.AuditCreate
	}
	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: action,
		EntityType: domain.EntityVATReconciliation,
		EntityID:   recon.VATReconciliationID,
		Before:     beforeState,
		After:      recon,
	})

	if err := s.vatRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Draft reconciliation saved",
		slog.String("reconciliation_id", recon.VATReconciliationID),
		slog.Int("version", recon.Version))
	return &recon, nil
}

// AuthorizeDifference records the difference sign-off on a draft reconciliation.
func (s *vatService) AuthorizeDifference(ctx context.Context, companyID, reconciliationID, initials string, actor domain.Actor) (*domain.VATReconciliation, error) {
	return s.authorize(ctx, companyID, reconciliationID, initials, false, actor)
}

// AuthorizeSOADifference records the statement-of-account sign-off.
func (s *vatService) AuthorizeSOADifference(ctx context.Context, companyID, reconciliationID, initials string, actor domain.Actor) (*domain.VATReconciliation, error) {
	return s.authorize(ctx, companyID, reconciliationID, initials, true, actor)
}

func (s *vatService) authorize(ctx context.Context, companyID, reconciliationID, initials string, soa bool, actor domain.Actor) (*domain.VATReconciliation, error) {
	if err := s.Authorize(ctx, actor, domain.CapReconAuthorize); err != nil {
		return nil, err
	}
	if initials == "" {
		return nil, fmt.Errorf("%w: authorizer initials are required", apperrors.ErrValidation)
	}

	recon, err := s.ownedReconciliation(ctx, companyID, reconciliationID)
	if err != nil {
		return nil, err
	}
	// Sign-offs do not change status, so an approved reconciliation can still
	// collect them. Only a locked one is immutable.
	if recon.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: reconciliation is locked", apperrors.ErrInvalidState)
	}

	now := time.Now().UTC()
	if err := s.vatRepo.SetAuthorizationFlag(ctx, reconciliationID, soa, initials, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to record authorization", slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to record authorization: %w", err)
	}

	before := *recon
	if soa {
		recon.SOAAuthorized = true
		recon.SOAAuthorizedBy = initials
		recon.SOAAuthorizedAt = &now
	} else {
		recon.DiffAuthorized = true
		recon.DiffAuthorizedBy = initials
		recon.DiffAuthorizedAt = &now
	}
	recon.LastUpdatedAt = now
	recon.LastUpdatedBy = actor.UserID

	s.auditSvc.Record(ctx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditAuthorize,
		EntityType: domain.EntityVATReconciliation,
		EntityID:   reconciliationID,
		Before:     before,
		After:      *recon,
		Metadata:   map[string]any{"soa": soa, "initials": initials},
	})
	return recon, nil
}

// ApproveReconciliation transitions a draft reconciliation to APPROVED and
// promotes the parent period if it is still DRAFT.
func (s *vatService) ApproveReconciliation(ctx context.Context, companyID, reconciliationID string, actor domain.Actor) (*domain.VATReconciliation, error) {
	if err := s.Authorize(ctx, actor, domain.CapReconApprove); err != nil {
		return nil, err
	}

	recon, err := s.ownedReconciliation(ctx, companyID, reconciliationID)
	if err != nil {
		return nil, err
	}
	if recon.Status != domain.PeriodDraft {
		return nil, fmt.Errorf("%w: reconciliation status is %s, expected DRAFT", apperrors.ErrInvalidState, recon.Status)
	}

	tx, err := s.vatRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.vatRepo.Rollback(ctx, tx)

	period, err := s.vatRepo.FindPeriodForUpdateTx(ctx, tx, companyID, recon.VATPeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load period %s: %w", recon.VATPeriodID, err)
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period is locked", apperrors.ErrInvalidState)
	}

	now := time.Now().UTC()
	if err := s.vatRepo.UpdateReconciliationStatusTx(ctx, tx, reconciliationID, domain.PeriodApproved, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to approve reconciliation", slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to approve reconciliation: %w", err)
	}

	if period.Status == domain.PeriodDraft {
		if err := s.vatRepo.UpdatePeriodStatusTx(ctx, tx, period.VATPeriodID, domain.PeriodApproved, actor.UserID, now); err != nil {
			return nil, fmt.Errorf("failed to approve period: %w", err)
		}
	}

	before := *recon
	recon.Status = domain.PeriodApproved
	recon.ApprovedBy = actor.UserID
	recon.ApprovedAt = &now
	recon.LastUpdatedAt = now
	recon.LastUpdatedBy = actor.UserID

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditApprove,
		EntityType: domain.EntityVATReconciliation,
		EntityID:   reconciliationID,
		Before:     before,
		After:      *recon,
	})

	if err := s.vatRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Reconciliation approved", slog.String("reconciliation_id", reconciliationID))
	return recon, nil
}

// SubmitToSARS records the filing and locks the reconciliation, the period and
// any generated report snapshots as one atomic unit. The period must hold an
// APPROVED latest reconciliation.
func (s *vatService) SubmitToSARS(ctx context.Context, companyID, periodID string, req dto.SubmitVATRequest, actor domain.Actor) (*domain.VATSubmission, error) {
	if err := s.Authorize(ctx, actor, domain.CapReconSubmit); err != nil {
		return nil, err
	}

	tx, err := s.vatRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.vatRepo.Rollback(ctx, tx)

	period, err := s.vatRepo.FindPeriodForUpdateTx(ctx, tx, companyID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to load period %s: %w", periodID, err)
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period is already locked", apperrors.ErrInvalidState)
	}

	recon, err := s.vatRepo.FindLatestReconciliation(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: period has no reconciliation to submit", apperrors.ErrInvalidState)
		}
		return nil, fmt.Errorf("failed to load latest reconciliation: %w", err)
	}
	if recon.Status != domain.PeriodApproved {
		return nil, fmt.Errorf("%w: latest reconciliation status is %s, expected APPROVED", apperrors.ErrInvalidState, recon.Status)
	}

	now := time.Now().UTC()
	submission := domain.VATSubmission{
		VATSubmissionID:     uuid.NewString(),
		CompanyID:           companyID,
		VATPeriodID:         periodID,
		VATReconciliationID: recon.VATReconciliationID,
		SubmissionDate:      now,
		SubmittedBy:         actor.UserID,
		SubmissionReference: req.SubmissionReference,
		OutputVAT:           req.OutputVAT,
		InputVAT:            req.InputVAT,
		NetVAT:              req.NetVAT,
		PaymentDate:         req.PaymentDate,
		PaymentReference:    req.PaymentReference,
		CreatedAt:           now,
	}

	if err := s.vatRepo.InsertSubmissionTx(ctx, tx, submission); err != nil {
		s.LogError(ctx, err, "Failed to insert submission", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to insert submission: %w", err)
	}
	if err := s.vatRepo.UpdateReconciliationStatusTx(ctx, tx, recon.VATReconciliationID, domain.PeriodLocked, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to lock reconciliation: %w", err)
	}
	if err := s.vatRepo.UpdatePeriodStatusTx(ctx, tx, periodID, domain.PeriodLocked, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to lock period: %w", err)
	}
	if err := s.vatRepo.LockSnapshotsTx(ctx, tx, periodID, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to lock report snapshots: %w", err)
	}

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditSubmit,
		EntityType: domain.EntityVATSubmission,
		EntityID:   submission.VATSubmissionID,
		After:      submission,
		Metadata: map[string]string{
			"vatPeriodID":         periodID,
			"vatReconciliationID": recon.VATReconciliationID,
		},
	})

	if err := s.vatRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Period submitted and locked",
		slog.String("period_id", periodID),
		slog.String("submission_id", submission.VATSubmissionID))
	return &submission, nil
}

// ListSubmissions retrieves a period's submission records.
func (s *vatService) ListSubmissions(ctx context.Context, companyID, periodID string) ([]domain.VATSubmission, error) {
	submissions, err := s.vatRepo.ListSubmissions(ctx, companyID, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list submissions", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// GenerateReportSnapshot assembles a VAT201-style payload from the period's
// latest reconciliation and stores it as a draft snapshot.
func (s *vatService) GenerateReportSnapshot(ctx context.Context, companyID, periodID string, actor domain.Actor) (*domain.VATReportSnapshot, error) {
	if err := s.Authorize(ctx, actor, domain.CapReconSave); err != nil {
		return nil, err
	}

	period, err := s.vatRepo.FindPeriodByID(ctx, companyID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.Status == domain.PeriodLocked {
		return nil, fmt.Errorf("%w: period is locked", apperrors.ErrInvalidState)
	}

	recon, err := s.vatRepo.FindLatestReconciliation(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: period has no reconciliation to report on", apperrors.ErrInvalidState)
		}
		return nil, fmt.Errorf("failed to load latest reconciliation: %w", err)
	}
	lines, err := s.vatRepo.FindReconciliationLines(ctx, recon.VATReconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciliation lines: %w", err)
	}
	recon.Lines = lines

	payload, err := json.Marshal(map[string]any{
		"periodKey":      period.PeriodKey,
		"fromDate":       period.FromDate,
		"toDate":         period.ToDate,
		"version":        recon.Version,
		"soaAmount":      recon.SOAAmount,
		"lines":          recon.Lines,
		"generatedAtUTC": time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble report payload: %w", err)
	}

	now := time.Now().UTC()
	snapshot := domain.VATReportSnapshot{
		SnapshotID:  uuid.NewString(),
		CompanyID:   companyID,
		VATPeriodID: periodID,
		ReportType:  "VAT201",
		Payload:     payload,
		Status:      domain.PeriodDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.vatRepo.SaveSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to save report snapshot", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to save report snapshot: %w", err)
	}

	s.auditSvc.Record(ctx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditCreate,
		EntityType: domain.EntityVATReportSnapshot,
		EntityID:   snapshot.SnapshotID,
		After:      snapshot,
	})
	return &snapshot, nil
}

// ownedReconciliation loads a reconciliation and verifies it belongs to the
// company via its parent period.
func (s *vatService) ownedReconciliation(ctx context.Context, companyID, reconciliationID string) (*domain.VATReconciliation, error) {
	recon, err := s.vatRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reconciliation %s: %w", reconciliationID, err)
	}
	if _, err := s.vatRepo.FindPeriodByID(ctx, companyID, recon.VATPeriodID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to verify period ownership: %w", err)
	}
	return recon, nil
}

// buildReconciliationLines converts request rows into domain lines, computing
// the per-row difference as vatAmount - tbAmount.
func buildReconciliationLines(reconciliationID string, reqLines []dto.VATReconciliationLineRequest) []domain.VATReconciliationLine {
	lines := make([]domain.VATReconciliationLine, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.VATReconciliationLine{
			LineID:              uuid.NewString(),
			VATReconciliationID: reconciliationID,
			SectionKey:          lr.SectionKey,
			RowKey:              lr.RowKey,
			Label:               lr.Label,
			VATAmount:           lr.VATAmount,
			TBAmount:            lr.TBAmount,
			StatementAmount:     lr.StatementAmount,
			DifferenceAmount:    lr.VATAmount.Sub(lr.TBAmount),
			AccountID:           lr.AccountID,
			LineOrder:           i,
		}
	}
	return lines
}
