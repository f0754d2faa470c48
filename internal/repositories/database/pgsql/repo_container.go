package pgsql

import (
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		VATRepo:       newPgxVATRepository(dbPool),
		AuditRepo:     newPgxAuditLogRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
		BankRepo:      newPgxBankRepository(dbPool),
	}
}
