package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/fynbooks/fynbooks_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// journalService owns the journal lifecycle and enforces the double-entry
// invariant. Post/reverse/delete run under a row lock on the journal so
// concurrent transitions of the same journal serialise.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountSvc  portssvc.AccountSvcFacade
	auditSvc    portssvc.AuditSvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, auditSvc portssvc.AuditSvcFacade, canPerform domain.CapabilityChecker) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: BaseService{CanPerform: canPerform},
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateDraftJournal validates and persists a new draft journal with its lines.
func (s *journalService) CreateDraftJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, actor domain.Actor) (*domain.Journal, error) {
	if err := s.Authorize(ctx, actor, domain.CapJournalCreate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountID:   lineReq.AccountID,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			Description: lineReq.Description,
			LineOrder:   i,
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	if err := accounting.ValidateJournalLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if err := s.validateAccounts(ctx, companyID, accountIDs); err != nil {
		return nil, err
	}

	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = "manual"
	}

	journal := domain.Journal{
		JournalID:   journalID,
		CompanyID:   companyID,
		JournalDate: req.Date,
		Reference:   req.Reference,
		Description: req.Description,
		SourceType:  sourceType,
		Status:      domain.JournalDraft,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		s.LogError(ctx, err, "Failed to save draft journal", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	s.auditSvc.Record(ctx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditCreate,
		EntityType: domain.EntityJournal,
		EntityID:   journalID,
		After:      journal,
	})

	s.LogInfo(ctx, "Draft journal created", slog.String("journal_id", journalID), slog.String("company_id", companyID))
	return &journal, nil
}

// PostJournal transitions a draft to POSTED after re-validating the balance
// invariant. The status change and audit entry commit together.
func (s *journalService) PostJournal(ctx context.Context, companyID, journalID string, actor domain.Actor) (*domain.Journal, error) {
	if err := s.Authorize(ctx, actor, domain.CapJournalPost); err != nil {
		return nil, err
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	journal, err := s.loadOwnedJournalForUpdate(ctx, tx, companyID, journalID)
	if err != nil {
		return nil, err
	}

	if journal.Status != domain.JournalDraft {
		return nil, fmt.Errorf("%w: journal status is %s, expected DRAFT", apperrors.ErrInvalidState, journal.Status)
	}

	lines, err := s.journalRepo.FindJournalLines(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal lines: %w", err)
	}
	if err := accounting.ValidateJournalLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkPostedTx(ctx, tx, journalID, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to post journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to post journal: %w", err)
	}

	before := *journal
	journal.Status = domain.JournalPosted
	journal.PostedBy = actor.UserID
	journal.PostedAt = &now
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = actor.UserID
	journal.Lines = lines

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditPost,
		EntityType: domain.EntityJournal,
		EntityID:   journalID,
		Before:     before,
		After:      *journal,
	})

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal posted", slog.String("journal_id", journalID), slog.String("company_id", companyID))
	return journal, nil
}

// ReverseJournal creates a new posted journal whose lines have debit and credit
// swapped per original line, and marks the original REVERSED. The reversal, the
// status change and the audit entry are one atomic unit.
func (s *journalService) ReverseJournal(ctx context.Context, companyID, journalID, reason string, actor domain.Actor) (*domain.Journal, error) {
	if err := s.Authorize(ctx, actor, domain.CapJournalReverse); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	original, err := s.loadOwnedJournalForUpdate(ctx, tx, companyID, journalID)
	if err != nil {
		return nil, err
	}

	if original.Status != domain.JournalPosted {
		return nil, fmt.Errorf("%w: journal status is %s, expected POSTED", apperrors.ErrInvalidState, original.Status)
	}

	originalLines, err := s.journalRepo.FindJournalLines(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal lines: %w", err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversalLines := make([]domain.JournalLine, len(originalLines))
	for i, line := range originalLines {
		reversalLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   reversalID,
			AccountID:   line.AccountID,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
			LineOrder:   i,
		}
	}

	reversal := domain.Journal{
		JournalID:    reversalID,
		CompanyID:    companyID,
		JournalDate:  original.JournalDate,
		Reference:    original.Reference,
		Description:  fmt.Sprintf("Reversal of %s: %s", original.Reference, reason),
		SourceType:   original.SourceType + domain.ReversalSourceSuffix,
		Status:       domain.JournalPosted,
		PostedBy:     actor.UserID,
		PostedAt:     &now,
		ReversalOfID: &original.JournalID,
		Lines:        reversalLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.journalRepo.SaveReversalTx(ctx, tx, reversal, original.JournalID, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to save reversal journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save reversal journal: %w", err)
	}

	before := *original
	original.Status = domain.JournalReversed
	original.ReversedByID = &reversalID

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditReverse,
		EntityType: domain.EntityJournal,
		EntityID:   journalID,
		Before:     before,
		After:      *original,
		Reason:     reason,
		Metadata:   map[string]string{"reversalJournalID": reversalID},
	})

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("reversal_journal_id", reversalID))
	return &reversal, nil
}

// DeleteJournal deletes a draft journal and its lines, recording the pre-delete
// snapshot as the audit beforeState.
func (s *journalService) DeleteJournal(ctx context.Context, companyID, journalID string, actor domain.Actor) error {
	if err := s.Authorize(ctx, actor, domain.CapJournalDelete); err != nil {
		return err
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	journal, err := s.loadOwnedJournalForUpdate(ctx, tx, companyID, journalID)
	if err != nil {
		return err
	}

	if journal.Status != domain.JournalDraft {
		return fmt.Errorf("%w: only draft journals may be deleted, status is %s", apperrors.ErrInvalidState, journal.Status)
	}

	lines, err := s.journalRepo.FindJournalLines(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to load journal lines: %w", err)
	}
	journal.Lines = lines

	if err := s.journalRepo.DeleteJournalTx(ctx, tx, journalID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft journal", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to delete journal: %w", err)
	}

	s.auditSvc.RecordInTx(ctx, tx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditDelete,
		EntityType: domain.EntityJournal,
		EntityID:   journalID,
		Before:     *journal,
	})

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return err
	}

	s.LogInfo(ctx, "Draft journal deleted", slog.String("journal_id", journalID))
	return nil
}

// ListJournals retrieves a filtered page ordered by date desc then id desc.
func (s *journalService) ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) ([]domain.Journal, error) {
	status := domain.JournalStatus(params.Status)
	if params.Status != "" {
		switch status {
		case domain.JournalDraft, domain.JournalPosted, domain.JournalReversed:
		default:
			return nil, fmt.Errorf("%w: unknown journal status %q", apperrors.ErrValidation, params.Status)
		}
	}

	filter := portsrepo.ListJournalsFilter{
		Status:     status,
		SourceType: params.SourceType,
		FromDate:   params.FromDate,
		ToDate:     params.ToDate,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	journals, err := s.journalRepo.ListJournals(ctx, companyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return journals, nil
}

// GetJournalWithLines retrieves one journal with its lines.
func (s *journalService) GetJournalWithLines(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if journal.CompanyID != companyID {
		// Obscure existence across companies.
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindJournalLines(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for journal %s: %w", journalID, err)
	}
	journal.Lines = lines
	return journal, nil
}

// loadOwnedJournalForUpdate locks the journal row and verifies company ownership.
func (s *journalService) loadOwnedJournalForUpdate(ctx context.Context, tx pgx.Tx, companyID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalForUpdateTx(ctx, tx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load journal %s: %w", journalID, err)
	}
	if journal.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return journal, nil
}

func (s *journalService) validateAccounts(ctx context.Context, companyID string, accountIDs []string) error {
	unique := uniqueStrings(accountIDs)
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, companyID, unique)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range unique {
		acc, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
