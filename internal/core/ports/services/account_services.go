package services

import (
	"context"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
)

// AccountSvcFacade manages the chart of accounts.
type AccountSvcFacade interface {
	// CreateAccount persists a new account after validating the type and code.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error)

	// GetAccountByID retrieves a company's account.
	GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves a company's accounts keyed by id.
	GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of a company's accounts ordered by code.
	ListAccounts(ctx context.Context, companyID string, onlyActive bool, limit, offset int) ([]domain.Account, error)

	// UpdateAccount updates name/description/isActive. Account type is immutable.
	UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error)
}
