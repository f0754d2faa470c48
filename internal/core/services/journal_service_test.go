package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/apperrors"
	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/core/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountSvc   *MockAccountService
	mockAuditSvc     *MockAuditService
	service          portssvc.JournalSvcFacade
	tx               pgx.Tx
	companyID        string
	actor            domain.Actor
	assetAccount     domain.Account
	liabilityAccount domain.Account
	incomeAccount    domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockAuditSvc = new(MockAuditService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockAuditSvc, nil)

	suite.tx = &stubTx{}
	suite.companyID = uuid.NewString()
	suite.actor = domain.Actor{
		UserID: uuid.NewString(),
		Role:   domain.RoleAccountant,
		Type:   domain.ActorUser,
	}

	suite.assetAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1000",
		Name:        "Bank",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "2100",
		Name:        "VAT Control",
		AccountType: domain.Liability,
		IsActive:    true,
	}
	suite.incomeAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "4000",
		Name:        "Sales",
		AccountType: domain.Income,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		Date:        time.Now().UTC(),
		Reference:   "INV-001",
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, Debit: decimal.NewFromInt(115)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100)},
			{AccountID: suite.liabilityAccount.AccountID, Credit: decimal.NewFromInt(15)},
		},
	}
}

func (suite *JournalServiceTestSuite) draftJournal() *domain.Journal {
	return &domain.Journal{
		JournalID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		JournalDate: time.Now().UTC().AddDate(0, 0, -1),
		Reference:   "INV-001",
		Description: "Cash sale",
		SourceType:  "manual",
		Status:      domain.JournalDraft,
	}
}

func (suite *JournalServiceTestSuite) journalLines(journalID string) []domain.JournalLine {
	return []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.assetAccount.AccountID, Debit: decimal.NewFromInt(115), LineOrder: 0},
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(100), LineOrder: 1},
		{LineID: uuid.NewString(), JournalID: journalID, AccountID: suite.liabilityAccount.AccountID, Credit: decimal.NewFromInt(15), LineOrder: 2},
	}
}

func (suite *JournalServiceTestSuite) TestCreateDraftJournal_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:     suite.assetAccount,
		suite.incomeAccount.AccountID:    suite.incomeAccount,
		suite.liabilityAccount.AccountID: suite.liabilityAccount,
	}
	accountIDs := []string{suite.assetAccount.AccountID, suite.incomeAccount.AccountID, suite.liabilityAccount.AccountID}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.companyID, accountIDs).Return(accountsMap, nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal")).Return(nil).Once()
	suite.mockAuditSvc.On("Record", ctx, mock.AnythingOfType("services.AuditEvent")).Return().Once()

	journal, err := suite.service.CreateDraftJournal(ctx, suite.companyID, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.NotEmpty(journal.JournalID)
	suite.Equal(suite.companyID, journal.CompanyID)
	suite.Equal(domain.JournalDraft, journal.Status)
	suite.Equal("manual", journal.SourceType)
	suite.Equal(suite.actor.UserID, journal.CreatedBy)
	suite.Require().Len(journal.Lines, 3)
	for i, line := range journal.Lines {
		suite.Equal(i, line.LineOrder)
		suite.Equal(journal.JournalID, line.JournalID)
	}

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateDraftJournal_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Debit = decimal.NewFromInt(100)

	journal, err := suite.service.CreateDraftJournal(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(journal)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateDraftJournal_BothSidesSet() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(115)

	_, err := suite.service.CreateDraftJournal(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateDraftJournal_NeitherSideSet() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = []dto.JournalLineRequest{
		{AccountID: suite.assetAccount.AccountID},
		{AccountID: suite.incomeAccount.AccountID},
	}

	_, err := suite.service.CreateDraftJournal(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateDraftJournal_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.incomeAccount
	inactive.IsActive = false
	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:     suite.assetAccount,
		suite.incomeAccount.AccountID:    inactive,
		suite.liabilityAccount.AccountID: suite.liabilityAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.companyID, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateDraftJournal(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateDraftJournal_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:     suite.assetAccount,
		suite.liabilityAccount.AccountID: suite.liabilityAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.companyID, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateDraftJournal(ctx, suite.companyID, req, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateDraftJournal_ViewerForbidden() {
	ctx := context.Background()
	viewer := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleViewer, Type: domain.ActorUser}

	_, err := suite.service.CreateDraftJournal(ctx, suite.companyID, suite.balancedRequest(), viewer)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_Success() {
	ctx := context.Background()
	journal := suite.draftJournal()
	lines := suite.journalLines(journal.JournalID)

	suite.mockJournalRepo.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, suite.tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalForUpdateTx", ctx, suite.tx, journal.JournalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("FindJournalLines", ctx, journal.JournalID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("MarkPostedTx", ctx, suite.tx, journal.JournalID, suite.actor.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditSvc.On("RecordInTx", ctx, suite.tx, mock.AnythingOfType("services.AuditEvent")).Return().Once()
	suite.mockJournalRepo.On("Commit", ctx, suite.tx).Return(nil).Once()

	posted, err := suite.service.PostJournal(ctx, suite.companyID, journal.JournalID, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.Equal(domain.JournalPosted, posted.Status)
	suite.Equal(suite.actor.UserID, posted.PostedBy)
	suite.Require().NotNil(posted.PostedAt)
	suite.Len(posted.Lines, 3)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_AlreadyPosted() {
	ctx := context.Background()
	journal := suite.draftJournal()
	journal.Status = domain.JournalPosted

	suite.mockJournalRepo.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, suite.tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalForUpdateTx", ctx, suite.tx, journal.JournalID).Return(journal, nil).Once()

	_, err := suite.service.PostJournal(ctx, suite.companyID, journal.JournalID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkPostedTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_CrossCompanyHidden() {
	ctx := context.Background()
	journal := suite.draftJournal()
	journal.CompanyID = uuid.NewString()

	suite.mockJournalRepo.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, suite.tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalForUpdateTx", ctx, suite.tx, journal.JournalID).Return(journal, nil).Once()

	_, err := suite.service.PostJournal(ctx, suite.companyID, journal.JournalID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestPostJournal_ClerkForbidden() {
	ctx := context.Background()
	clerk := domain.Actor{UserID: uuid.NewString(), Role: domain.RoleClerk, Type: domain.ActorUser}

	_, err := suite.service.PostJournal(ctx, suite.companyID, uuid.NewString(), clerk)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	ctx := context.Background()
	original := suite.draftJournal()
	original.Status = domain.JournalPosted
	originalLines := suite.journalLines(original.JournalID)

	var savedReversal domain.Journal
	suite.mockJournalRepo.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, suite.tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalForUpdateTx", ctx, suite.tx, original.JournalID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindJournalLines", ctx, original.JournalID).Return(originalLines, nil).Once()
	suite.mockJournalRepo.On("SaveReversalTx", ctx, suite.tx, mock.AnythingOfType("domain.Journal"), original.JournalID, suite.actor.UserID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			savedReversal = args.Get(2).(domain.Journal)
		}).Return(nil).Once()
	suite.mockAuditSvc.On("RecordInTx", ctx, suite.tx, mock.AnythingOfType("services.AuditEvent")).Return().Once()
	suite.mockJournalRepo.On("Commit", ctx, suite.tx).Return(nil).Once()

	reversal, err := suite.service.ReverseJournal(ctx, suite.companyID, original.JournalID, "duplicate capture", suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(savedReversal.JournalID, reversal.JournalID)
	suite.Equal(domain.JournalPosted, reversal.Status)
	suite.Equal(original.JournalDate, reversal.JournalDate)
	suite.Equal("manual"+domain.ReversalSourceSuffix, reversal.SourceType)
	suite.Require().NotNil(reversal.ReversalOfID)
	suite.Equal(original.JournalID, *reversal.ReversalOfID)

	suite.Require().Len(reversal.Lines, len(originalLines))
	for i, line := range reversal.Lines {
		suite.True(line.Debit.Equal(originalLines[i].Credit), "line %d debit must mirror original credit", i)
		suite.True(line.Credit.Equal(originalLines[i].Debit), "line %d credit must mirror original debit", i)
		suite.Equal(originalLines[i].AccountID, line.AccountID)
	}

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseJournal_RequiresReason() {
	ctx := context.Background()

	_, err := suite.service.ReverseJournal(ctx, suite.companyID, uuid.NewString(), "", suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_DraftRejected() {
	ctx := context.Background()
	journal := suite.draftJournal()

	suite.mockJournalRepo.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, suite.tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalForUpdateTx", ctx, suite.tx, journal.JournalID).Return(journal, nil).Once()

	_, err := suite.service.ReverseJournal(ctx, suite.companyID, journal.JournalID, "entered twice", suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveReversalTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_Success() {
	ctx := context.Background()
	journal := suite.draftJournal()
	lines := suite.journalLines(journal.JournalID)

	suite.mockJournalRepo.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, suite.tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalForUpdateTx", ctx, suite.tx, journal.JournalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("FindJournalLines", ctx, journal.JournalID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("DeleteJournalTx", ctx, suite.tx, journal.JournalID).Return(nil).Once()
	suite.mockAuditSvc.On("RecordInTx", ctx, suite.tx, mock.AnythingOfType("services.AuditEvent")).Return().Once()
	suite.mockJournalRepo.On("Commit", ctx, suite.tx).Return(nil).Once()

	err := suite.service.DeleteJournal(ctx, suite.companyID, journal.JournalID, suite.actor)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteJournal_PostedRejected() {
	ctx := context.Background()
	journal := suite.draftJournal()
	journal.Status = domain.JournalPosted

	suite.mockJournalRepo.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, suite.tx).Return(nil)
	suite.mockJournalRepo.On("FindJournalForUpdateTx", ctx, suite.tx, journal.JournalID).Return(journal, nil).Once()

	err := suite.service.DeleteJournal(ctx, suite.companyID, journal.JournalID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteJournalTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournals_UnknownStatus() {
	ctx := context.Background()

	_, err := suite.service.ListJournals(ctx, suite.companyID, dto.ListJournalsParams{Status: "PENDING"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListJournals", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetJournalWithLines_CrossCompanyHidden() {
	ctx := context.Background()
	journal := suite.draftJournal()
	journal.CompanyID = uuid.NewString()

	suite.mockJournalRepo.On("FindJournalByID", ctx, journal.JournalID).Return(journal, nil).Once()

	_, err := suite.service.GetJournalWithLines(ctx, suite.companyID, journal.JournalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindJournalLines", mock.Anything, mock.Anything)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
