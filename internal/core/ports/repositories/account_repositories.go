package repositories

import (
	"context"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
)

// AccountRepositoryFacade defines storage operations over the chart of accounts.
type AccountRepositoryFacade interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves a company's account by id.
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves a company's accounts keyed by id. Missing ids
	// are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of a company's accounts ordered by code.
	ListAccounts(ctx context.Context, companyID string, onlyActive bool, limit, offset int) ([]domain.Account, error)

	// UpdateAccount updates the mutable fields of an account (name, description, isActive).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// HasJournalLines reports whether any journal line references the account.
	HasJournalLines(ctx context.Context, accountID string) (bool, error)
}
