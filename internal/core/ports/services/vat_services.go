package services

import (
	"context"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
)

// VATSvcFacade owns the VAT/PAYE period and reconciliation state machine
// (draft -> approved -> locked) and the submission workflow.
type VATSvcFacade interface {
	// GetOrCreatePeriod idempotently resolves a filing period by period key.
	GetOrCreatePeriod(ctx context.Context, companyID string, req dto.CreateVATPeriodRequest, actor domain.Actor) (*domain.VATPeriod, error)

	// ListPeriods retrieves a page of a company's periods.
	ListPeriods(ctx context.Context, companyID string, limit, offset int) ([]domain.VATPeriod, error)

	// GetPeriodDetail retrieves a period with its latest reconciliation version and lines.
	GetPeriodDetail(ctx context.Context, companyID, periodID string) (*dto.VATPeriodDetail, error)

	// SaveDraftReconciliation upserts the period's draft reconciliation, fully
	// replacing its lines. New versions get version = max + 1.
	SaveDraftReconciliation(ctx context.Context, companyID string, req dto.SaveVATReconciliationRequest, actor domain.Actor) (*domain.VATReconciliation, error)

	// AuthorizeDifference records the difference sign-off on a reconciliation.
	AuthorizeDifference(ctx context.Context, companyID, reconciliationID, initials string, actor domain.Actor) (*domain.VATReconciliation, error)

	// AuthorizeSOADifference records the statement-of-account sign-off.
	AuthorizeSOADifference(ctx context.Context, companyID, reconciliationID, initials string, actor domain.Actor) (*domain.VATReconciliation, error)

	// ApproveReconciliation transitions draft -> approved and promotes the parent
	// period to approved if still draft.
	ApproveReconciliation(ctx context.Context, companyID, reconciliationID string, actor domain.Actor) (*domain.VATReconciliation, error)

	// SubmitToSARS records the filing and locks the reconciliation, the period
	// and any generated report snapshots as one atomic unit.
	SubmitToSARS(ctx context.Context, companyID, periodID string, req dto.SubmitVATRequest, actor domain.Actor) (*domain.VATSubmission, error)

	// ListSubmissions retrieves a period's submission records.
	ListSubmissions(ctx context.Context, companyID, periodID string) ([]domain.VATSubmission, error)

	// GenerateReportSnapshot assembles a VAT201-style payload from the period's
	// latest reconciliation and stores it as a draft snapshot.
	GenerateReportSnapshot(ctx context.Context, companyID, periodID string, actor domain.Actor) (*domain.VATReportSnapshot, error)
}
