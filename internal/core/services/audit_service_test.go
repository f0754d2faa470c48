package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	portsrepo "github.com/fynbooks/fynbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/fynbooks/fynbooks_backend/internal/core/ports/services"
	"github.com/fynbooks/fynbooks_backend/internal/core/services"
	"github.com/fynbooks/fynbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuditServiceTestSuite struct {
	suite.Suite
	mockAuditRepo *MockAuditLogRepository
	service       portssvc.AuditSvcFacade
	companyID     string
	actor         domain.Actor
}

func (suite *AuditServiceTestSuite) SetupTest() {
	suite.mockAuditRepo = new(MockAuditLogRepository)
	suite.service = services.NewAuditService(suite.mockAuditRepo)

	suite.companyID = uuid.NewString()
	suite.actor = domain.Actor{
		UserID: uuid.NewString(),
		Role:   domain.RoleAccountant,
		Type:   domain.ActorUser,
	}
}

func (suite *AuditServiceTestSuite) TestRecord_BuildsEntry() {
	ctx := context.Background()
	journalID := uuid.NewString()

	var inserted domain.AuditLogEntry
	suite.mockAuditRepo.On("InsertEntry", ctx, mock.AnythingOfType("domain.AuditLogEntry")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(domain.AuditLogEntry)
		}).Return(nil).Once()

	suite.service.Record(ctx, portssvc.AuditEvent{
		CompanyID:  suite.companyID,
		Actor:      suite.actor,
		ActionType: domain.AuditReverse,
		EntityType: domain.EntityJournal,
		EntityID:   journalID,
		Before:     map[string]string{"status": "POSTED"},
		After:      map[string]string{"status": "REVERSED"},
		Reason:     "entered twice",
		Metadata:   map[string]string{"reversalJournalID": uuid.NewString()},
	})

	suite.NotEmpty(inserted.AuditID)
	suite.Equal(suite.companyID, inserted.CompanyID)
	suite.Equal(domain.ActorUser, inserted.ActorType)
	suite.Equal(suite.actor.UserID, inserted.ActorID)
	suite.Equal(domain.AuditReverse, inserted.ActionType)
	suite.Equal(domain.EntityJournal, inserted.EntityType)
	suite.Equal(journalID, inserted.EntityID)
	suite.Equal("entered twice", inserted.Reason)
	suite.JSONEq(`{"status":"POSTED"}`, string(inserted.BeforeState))
	suite.JSONEq(`{"status":"REVERSED"}`, string(inserted.AfterState))
	suite.NotEmpty(inserted.Metadata)
	suite.False(inserted.CreatedAt.IsZero())

	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecord_DefaultsActorTypeToSystem() {
	ctx := context.Background()

	var inserted domain.AuditLogEntry
	suite.mockAuditRepo.On("InsertEntry", ctx, mock.AnythingOfType("domain.AuditLogEntry")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(domain.AuditLogEntry)
		}).Return(nil).Once()

	suite.service.Record(ctx, portssvc.AuditEvent{
		CompanyID:  suite.companyID,
		Actor:      domain.Actor{UserID: "scheduler"},
		ActionType: domain.AuditCreate,
		EntityType: domain.EntityVATPeriod,
		EntityID:   uuid.NewString(),
	})

	suite.Equal(domain.ActorSystem, inserted.ActorType)
}

func (suite *AuditServiceTestSuite) TestRecord_RepositoryFailureIsSwallowed() {
	ctx := context.Background()
	suite.mockAuditRepo.On("InsertEntry", ctx, mock.AnythingOfType("domain.AuditLogEntry")).Return(errors.New("connection reset")).Once()

	// Must not panic or propagate: the business mutation already succeeded.
	suite.service.Record(ctx, portssvc.AuditEvent{
		CompanyID:  suite.companyID,
		Actor:      suite.actor,
		ActionType: domain.AuditCreate,
		EntityType: domain.EntityJournal,
		EntityID:   uuid.NewString(),
	})

	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestRecordInTx_UsesCallerTransaction() {
	ctx := context.Background()
	tx := &stubTx{}

	suite.mockAuditRepo.On("InsertEntryTx", ctx, tx, mock.AnythingOfType("domain.AuditLogEntry")).Return(nil).Once()

	suite.service.RecordInTx(ctx, tx, portssvc.AuditEvent{
		CompanyID:  suite.companyID,
		Actor:      suite.actor,
		ActionType: domain.AuditPost,
		EntityType: domain.EntityJournal,
		EntityID:   uuid.NewString(),
	})

	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestQuery_MapsFilter() {
	ctx := context.Background()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	params := dto.AuditQueryParams{
		EntityType: domain.EntityJournal,
		ActionType: string(domain.AuditPost),
		ActorType:  string(domain.ActorUser),
		FromDate:   &from,
		Limit:      25,
	}
	expected := portsrepo.AuditQueryFilter{
		EntityType: domain.EntityJournal,
		ActorType:  domain.ActorUser,
		ActionType: domain.AuditPost,
		FromDate:   &from,
		Limit:      25,
	}
	entries := []domain.AuditLogEntry{{AuditID: uuid.NewString(), CompanyID: suite.companyID}}

	suite.mockAuditRepo.On("QueryEntries", ctx, suite.companyID, expected).Return(entries, nil).Once()

	result, err := suite.service.Query(ctx, suite.companyID, params)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *AuditServiceTestSuite) TestQuery_RepositoryError() {
	ctx := context.Background()
	suite.mockAuditRepo.On("QueryEntries", ctx, suite.companyID, mock.AnythingOfType("repositories.AuditQueryFilter")).Return(nil, errors.New("timeout")).Once()

	_, err := suite.service.Query(ctx, suite.companyID, dto.AuditQueryParams{})

	suite.Require().Error(err)
}

func TestAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
