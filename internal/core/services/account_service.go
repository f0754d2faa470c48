package services

import (
	"context"
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

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	auditSvc    portssvc.AuditSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, auditSvc portssvc.AuditSvcFacade, canPerform domain.CapabilityChecker) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{CanPerform: canPerform},
		accountRepo: accountRepo,
		auditSvc:    auditSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after validating the type.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	if err := s.Authorize(ctx, actor, domain.CapAccountManage); err != nil {
		return nil, err
	}

	accountType := domain.AccountType(req.AccountType)
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   companyID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: accountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.auditSvc.Record(ctx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditCreate,
		EntityType: domain.EntityAccount,
		EntityID:   account.AccountID,
		After:      account,
	})
	return &account, nil
}

// GetAccountByID retrieves a company's account.
func (s *accountService) GetAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountsByIDs retrieves a company's accounts keyed by id.
func (s *accountService) GetAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, companyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves a page of a company's accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, onlyActive bool, limit, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, onlyActive, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies the non-nil fields of req. Account type is immutable.
func (s *accountService) UpdateAccount(ctx context.Context, companyID, accountID string, req dto.UpdateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	if err := s.Authorize(ctx, actor, domain.CapAccountManage); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	before := *account
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = actor.UserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.auditSvc.Record(ctx, portssvc.AuditEvent{
		CompanyID:  companyID,
		Actor:      actor,
		ActionType: domain.AuditUpdate,
		EntityType: domain.EntityAccount,
		EntityID:   accountID,
		Before:     before,
		After:      *account,
	})
	return account, nil
}
