package repositories

import (
	"context"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ListJournalsFilter narrows a journal listing. Zero values mean "no filter".
type ListJournalsFilter struct {
	Status     domain.JournalStatus
	SourceType string
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a journal header by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalLines retrieves a journal's lines in line order.
	FindJournalLines(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// ListJournals retrieves a filtered page of journals for a company,
	// ordered by journal date desc then id desc.
	ListJournals(ctx context.Context, companyID string, filter ListJournalsFilter) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal data. Tx-suffixed methods
// participate in a caller-owned transaction so multi-step mutations commit or
// roll back as one unit.
type JournalWriter interface {
	// SaveJournal persists a new journal and its lines atomically.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// FindJournalForUpdateTx loads a journal header under a row lock,
	// serialising concurrent post/reverse/delete of the same journal.
	FindJournalForUpdateTx(ctx context.Context, tx pgx.Tx, journalID string) (*domain.Journal, error)

	// MarkPostedTx transitions a journal to POSTED.
	MarkPostedTx(ctx context.Context, tx pgx.Tx, journalID, postedBy string, postedAt time.Time) error

	// SaveReversalTx inserts the reversing journal with its lines and marks the
	// original REVERSED with a link to the reversal.
	SaveReversalTx(ctx context.Context, tx pgx.Tx, reversal domain.Journal, originalJournalID string, updatedBy string, updatedAt time.Time) error

	// DeleteJournalTx deletes a journal and its lines.
	DeleteJournalTx(ctx context.Context, tx pgx.Tx, journalID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
