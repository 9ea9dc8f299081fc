package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/core/services"
	"github.com/stayfolio/pms_backend/internal/dto"
)

type AssignmentServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.AssignmentSvcFacade
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewAssignmentService(suite.mockTxnRepo)
}

func (suite *AssignmentServiceTestSuite) payment(amount decimal.Decimal, assigned decimal.Decimal) *domain.FolioTransaction {
	return &domain.FolioTransaction{
		TransactionID:    uuid.NewString(),
		Type:             domain.TransactionPayment,
		Status:           domain.TxnStatusPosted,
		Amount:           amount,
		AssignedAmount:   assigned,
		UnassignedAmount: amount.Abs().Sub(assigned),
	}
}

func (suite *AssignmentServiceTestSuite) TestAssignPayment_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	txn := suite.payment(decimal.NewFromInt(500), decimal.Zero)
	newAssigned := decimal.NewFromInt(200)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	var capturedAssigned, capturedUnassigned decimal.Decimal
	var capturedEntry domain.AssignmentEntry
	updated := suite.payment(decimal.NewFromInt(500), newAssigned)
	suite.mockTxnRepo.On("UpdateAssignment", ctx, txn.TransactionID,
		mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("decimal.Decimal"),
		mock.AnythingOfType("domain.AssignmentEntry"), actorID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			capturedAssigned = args.Get(2).(decimal.Decimal)
			capturedUnassigned = args.Get(3).(decimal.Decimal)
			capturedEntry = args.Get(4).(domain.AssignmentEntry)
		}).
		Return(updated, nil).
		Once()

	result, err := suite.service.AssignPayment(ctx, txn.TransactionID, newAssigned, "invoice 4711", actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	// assigned + unassigned must always equal the payment amount
	suite.True(capturedAssigned.Add(capturedUnassigned).Equal(txn.Amount.Abs()))
	suite.True(capturedAssigned.Equal(newAssigned))
	suite.True(capturedEntry.PreviousAmount.Equal(decimal.Zero))
	suite.True(capturedEntry.NewAmount.Equal(newAssigned))
	suite.Equal(actorID, capturedEntry.ActorID)
	suite.Equal("invoice 4711", capturedEntry.Notes)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestAssignPayment_FullThenReduce() {
	ctx := context.Background()
	actorID := uuid.NewString()
	txn := suite.payment(decimal.NewFromInt(500), decimal.NewFromInt(500))
	reduced := decimal.NewFromInt(300)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	var capturedUnassigned decimal.Decimal
	var capturedEntry domain.AssignmentEntry
	suite.mockTxnRepo.On("UpdateAssignment", ctx, txn.TransactionID,
		mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("decimal.Decimal"),
		mock.AnythingOfType("domain.AssignmentEntry"), actorID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			capturedUnassigned = args.Get(3).(decimal.Decimal)
			capturedEntry = args.Get(4).(domain.AssignmentEntry)
		}).
		Return(suite.payment(decimal.NewFromInt(500), reduced), nil).
		Once()

	_, err := suite.service.AssignPayment(ctx, txn.TransactionID, reduced, "invoice reversed", actorID)

	suite.Require().NoError(err)
	suite.True(capturedUnassigned.Equal(decimal.NewFromInt(200)))
	suite.True(capturedEntry.PreviousAmount.Equal(decimal.NewFromInt(500)))
}

func (suite *AssignmentServiceTestSuite) TestAssignPayment_NegativeRejected() {
	ctx := context.Background()

	_, err := suite.service.AssignPayment(ctx, uuid.NewString(), decimal.NewFromInt(-1), "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAssignmentNegative)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestAssignPayment_ExceedsPaymentRejected() {
	ctx := context.Background()
	txn := suite.payment(decimal.NewFromInt(500), decimal.Zero)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.AssignPayment(ctx, txn.TransactionID, decimal.NewFromInt(600), "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAssignmentExceeds)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateAssignment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestAssignPayment_NonPaymentRejected() {
	ctx := context.Background()
	txn := &domain.FolioTransaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TransactionCharge,
		Status:        domain.TxnStatusPosted,
		Amount:        decimal.NewFromInt(100),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.AssignPayment(ctx, txn.TransactionID, decimal.NewFromInt(50), "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotAPayment)
}

func (suite *AssignmentServiceTestSuite) TestAssignPayment_VoidedRejected() {
	ctx := context.Background()
	txn := suite.payment(decimal.NewFromInt(500), decimal.Zero)
	txn.IsVoided = true

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.AssignPayment(ctx, txn.TransactionID, decimal.NewFromInt(50), "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaymentVoided)
}

func (suite *AssignmentServiceTestSuite) TestBulkAssign_NothingAppliedOnFailure() {
	ctx := context.Background()
	actorID := uuid.NewString()

	good := suite.payment(decimal.NewFromInt(100), decimal.Zero)
	bad := suite.payment(decimal.NewFromInt(50), decimal.Zero)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, good.TransactionID).Return(good, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, bad.TransactionID).Return(bad, nil).Once()

	mappings := []dto.AssignmentMapping{
		{TransactionID: good.TransactionID, AssignedAmount: decimal.NewFromInt(100)},
		// exceeds the 50 payment, must fail
		{TransactionID: bad.TransactionID, AssignedAmount: decimal.NewFromInt(75)},
		{TransactionID: uuid.NewString(), AssignedAmount: decimal.NewFromInt(10)},
	}

	applied, err := suite.service.BulkAssign(ctx, mappings, actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAssignmentExceeds)
	suite.Nil(applied)
	// nothing is written and the third mapping is never inspected
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateAssignments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "FindTransactionByID", 2)
}

func (suite *AssignmentServiceTestSuite) TestBulkAssign_AllSucceedInOneUnit() {
	ctx := context.Background()
	actorID := uuid.NewString()

	first := suite.payment(decimal.NewFromInt(100), decimal.Zero)
	second := suite.payment(decimal.NewFromInt(200), decimal.Zero)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, first.TransactionID).Return(first, nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, second.TransactionID).Return(second, nil).Once()

	var capturedUpdates []portsrepo.AssignmentUpdate
	suite.mockTxnRepo.On("UpdateAssignments", ctx, mock.AnythingOfType("[]repositories.AssignmentUpdate"), actorID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			capturedUpdates = args.Get(1).([]portsrepo.AssignmentUpdate)
		}).
		Return([]domain.FolioTransaction{
			{TransactionID: first.TransactionID, AssignedAmount: decimal.NewFromInt(100)},
			{TransactionID: second.TransactionID, AssignedAmount: decimal.NewFromInt(150)},
		}, nil).
		Once()

	mappings := []dto.AssignmentMapping{
		{TransactionID: first.TransactionID, AssignedAmount: decimal.NewFromInt(100)},
		{TransactionID: second.TransactionID, AssignedAmount: decimal.NewFromInt(150)},
	}

	applied, err := suite.service.BulkAssign(ctx, mappings, actorID)

	suite.Require().NoError(err)
	suite.Require().Len(applied, 2)
	suite.Equal(first.TransactionID, applied[0].TransactionID)
	suite.Equal(second.TransactionID, applied[1].TransactionID)

	suite.Require().Len(capturedUpdates, 2)
	suite.True(capturedUpdates[0].Unassigned.Equal(decimal.Zero))
	suite.True(capturedUpdates[1].Unassigned.Equal(decimal.NewFromInt(50)))
	suite.Equal(actorID, capturedUpdates[0].Entry.ActorID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestBulkAssign_RepositoryFailurePropagates() {
	ctx := context.Background()
	actorID := uuid.NewString()
	txn := suite.payment(decimal.NewFromInt(100), decimal.Zero)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("UpdateAssignments", ctx, mock.AnythingOfType("[]repositories.AssignmentUpdate"), actorID, mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.NewAppError(500, "storage failure", nil)).
		Once()

	applied, err := suite.service.BulkAssign(ctx, []dto.AssignmentMapping{
		{TransactionID: txn.TransactionID, AssignedAmount: decimal.NewFromInt(40)},
	}, actorID)

	suite.Require().Error(err)
	suite.Nil(applied)
}

func (suite *AssignmentServiceTestSuite) TestBulkAssign_EmptyMappingsRejected() {
	ctx := context.Background()

	_, err := suite.service.BulkAssign(ctx, nil, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateAssignments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestGetUnassignedPaymentAmount() {
	ctx := context.Background()
	hotelID := uuid.NewString()
	companyID := uuid.NewString()
	expected := decimal.NewFromInt(1250)

	suite.mockTxnRepo.On("SumUnassignedByCompany", ctx, hotelID, companyID).Return(expected, nil).Once()

	total, err := suite.service.GetUnassignedPaymentAmount(ctx, companyID, hotelID)

	suite.Require().NoError(err)
	suite.True(total.Equal(expected))
}

func TestAssignmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}
