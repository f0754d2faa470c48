package services

import (
	"context"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
)

// JournalSvcFacade owns the journal lifecycle (draft -> posted -> reversed) and
// enforces the double-entry invariant.
type JournalSvcFacade interface {
	// CreateDraftJournal validates and persists a new draft journal with lines.
	CreateDraftJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, actor domain.Actor) (*domain.Journal, error)

	// PostJournal transitions a draft to POSTED after re-validating balance.
	PostJournal(ctx context.Context, companyID, journalID string, actor domain.Actor) (*domain.Journal, error)

	// ReverseJournal creates a posted reversal journal with debit/credit swapped
	// per line and marks the original REVERSED. Returns the reversal.
	ReverseJournal(ctx context.Context, companyID, journalID, reason string, actor domain.Actor) (*domain.Journal, error)

	// DeleteJournal deletes a draft journal and its lines.
	DeleteJournal(ctx context.Context, companyID, journalID string, actor domain.Actor) error

	// ListJournals retrieves a filtered page ordered by date desc, id desc.
	ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) ([]domain.Journal, error)

	// GetJournalWithLines retrieves one journal with its lines.
	GetJournalWithLines(ctx context.Context, companyID, journalID string) (*domain.Journal, error)
}
