package services_test

import (
	"context"
	"testing"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/core/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockAuditSvc    *MockAuditService
	service         portssvc.AccountSvcFacade
	companyID       string
	actor           domain.Actor
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAuditSvc = new(MockAuditService)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockAuditSvc, nil)

	suite.companyID = uuid.NewString()
	suite.actor = domain.Actor{
		UserID: uuid.NewString(),
		Role:   domain.RoleAdmin,
		Type:   domain.ActorUser,
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Bank",
		AccountType: "ASSET",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.mockAuditSvc.On("Record", ctx, mock.AnythingOfType("services.AuditEvent")).Return().Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive, "new accounts start active")
	suite.Equal(suite.actor.UserID, account.CreatedBy)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "9999", Name: "Mystery", AccountType: "CONTRA"}

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Bank", AccountType: "ASSET"}

	dupErr := apperrors.NewAppError(409, "account code already exists", apperrors.ErrDuplicate)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(dupErr).Once()

	_, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAuditSvc.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ViewerForbidden() {
	ctx := context.Background()
	viewer := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleViewer, Type: domain.ActorUser}

	_, err := suite.service.CreateAccount(ctx, suite.companyID, dto.CreateAccountRequest{Code: "1000", Name: "Bank", AccountType: "ASSET"}, viewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_AppliesOnlyProvidedFields() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1000",
		Name:        "Bank",
		AccountType: domain.Asset,
		Description: "Main current account",
		IsActive:    true,
	}
	newName := "Bank - FNB"
	inactive := false
	req := dto.UpdateAccountRequest{Name: &newName, IsActive: &inactive}

	var updated domain.Account
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.companyID, existing.AccountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Account)
		}).Return(nil).Once()
	suite.mockAuditSvc.On("Record", ctx, mock.AnythingOfType("services.AuditEvent")).Return().Once()

	account, err := suite.service.UpdateAccount(ctx, suite.companyID, existing.AccountID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Equal("Bank - FNB", account.Name)
	suite.False(account.IsActive)
	suite.Equal("Main current account", account.Description, "omitted fields stay untouched")
	suite.Equal(domain.Asset, updated.AccountType)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_EmptyInput() {
	ctx := context.Background()

	accounts, err := suite.service.GetAccountsByIDs(ctx, suite.companyID, nil)

	suite.Require().NoError(err)
	suite.Empty(accounts)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
