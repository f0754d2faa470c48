package services

import (
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
// A nil canPerform uses the default role policy.
func NewServiceContainer(repos portsrepo.RepositoryProvider, canPerform domain.CapabilityChecker) *portssvc.ServiceContainer {
	auditSvc := NewAuditService(repos.AuditRepo)
	accountSvc := NewAccountService(repos.AccountRepo, auditSvc, canPerform)
	journalSvc := NewJournalService(repos.JournalRepo, accountSvc, auditSvc, canPerform)
	vatSvc := NewVATService(repos.VATRepo, auditSvc, canPerform)
	reportingSvc := NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.BankRepo)

	return &portssvc.ServiceContainer{
		Account:   accountSvc,
		Journal:   journalSvc,
		VAT:       vatSvc,
		Reporting: reportingSvc,
		Audit:     auditSvc,
	}
}
