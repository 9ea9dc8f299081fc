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

type SettlementServiceTestSuite struct {
	suite.Suite
	mockFolioRepo *MockFolioRepository
	mockTxnRepo   *MockTransactionRepository
	mockLedgerSvc *MockLedgerService
	mockHotelSvc  *MockHotelService
	service       portssvc.SettlementSvcFacade
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockFolioRepo = new(MockFolioRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockLedgerSvc = new(MockLedgerService)
	suite.mockHotelSvc = new(MockHotelService)
	suite.service = services.NewSettlementService(suite.mockFolioRepo, suite.mockTxnRepo, suite.mockLedgerSvc, suite.mockHotelSvc)
}

func (suite *SettlementServiceTestSuite) activeMethod() *domain.PaymentMethod {
	return &domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		Name:            "Front Desk Card",
		Kind:            domain.PaymentMethodCard,
		IsActive:        true,
	}
}

func (suite *SettlementServiceTestSuite) TestValidateCheckoutEligibility_CollectsAllReasons() {
	ctx := context.Background()
	folioID := uuid.NewString()
	folio := &domain.Folio{
		FolioID:      folioID,
		Status:       domain.FolioStatusDisputed,
		Workflow:     domain.WorkflowActive,
		Balance:      decimal.NewFromInt(120),
		CurrencyCode: "USD",
	}
	txns := []domain.FolioTransaction{
		{TransactionNumber: 1, Status: domain.TxnStatusPosted},
		{TransactionNumber: 2, Status: domain.TxnStatusPending},
		{TransactionNumber: 3, Status: domain.TxnStatusDisputed},
		{TransactionNumber: 4, Status: domain.TxnStatusPending, IsVoided: true},
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByFolioID", ctx, folioID).Return(txns, nil).Once()

	reasons, err := suite.service.ValidateCheckoutEligibility(ctx, folioID)

	suite.Require().NoError(err)
	// non-open status, outstanding balance, pending txn 2, disputed txn 3;
	// the voided pending txn 4 is skipped
	suite.Len(reasons, 4)
}

func (suite *SettlementServiceTestSuite) TestValidateCheckoutEligibility_DraftWorkflowBlocked() {
	ctx := context.Background()
	folioID := uuid.NewString()
	folio := &domain.Folio{
		FolioID:  folioID,
		Status:   domain.FolioStatusOpen,
		Workflow: domain.WorkflowDraft,
		Balance:  decimal.Zero,
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByFolioID", ctx, folioID).Return([]domain.FolioTransaction{}, nil).Once()

	reasons, err := suite.service.ValidateCheckoutEligibility(ctx, folioID)

	suite.Require().NoError(err)
	suite.Require().Len(reasons, 1)
	suite.Contains(reasons[0], "DRAFT")
}

func (suite *SettlementServiceTestSuite) TestValidateCheckoutEligibility_FinalizedWorkflowBlocked() {
	ctx := context.Background()
	folioID := uuid.NewString()
	folio := &domain.Folio{
		FolioID:  folioID,
		Status:   domain.FolioStatusOpen,
		Workflow: domain.WorkflowFinalized,
		Balance:  decimal.Zero,
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByFolioID", ctx, folioID).Return([]domain.FolioTransaction{}, nil).Once()

	reasons, err := suite.service.ValidateCheckoutEligibility(ctx, folioID)

	suite.Require().NoError(err)
	suite.Require().Len(reasons, 1)
	suite.Contains(reasons[0], "FINALIZED")
}

func (suite *SettlementServiceTestSuite) TestValidateCheckoutEligibility_CancelledReservationBlocked() {
	ctx := context.Background()
	folioID := uuid.NewString()
	reservationID := uuid.NewString()
	folio := &domain.Folio{
		FolioID:       folioID,
		Status:        domain.FolioStatusOpen,
		Workflow:      domain.WorkflowActive,
		Balance:       decimal.Zero,
		ReservationID: &reservationID,
	}
	reservation := &domain.Reservation{ReservationID: reservationID, Status: domain.ReservationCancelled}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()
	suite.mockHotelSvc.On("GetReservation", ctx, reservationID).Return(reservation, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByFolioID", ctx, folioID).Return([]domain.FolioTransaction{}, nil).Once()

	reasons, err := suite.service.ValidateCheckoutEligibility(ctx, folioID)

	suite.Require().NoError(err)
	suite.Require().Len(reasons, 1)
	suite.Contains(reasons[0], "cancelled")
}

func (suite *SettlementServiceTestSuite) TestValidateCheckoutEligibility_CleanFolio() {
	ctx := context.Background()
	folioID := uuid.NewString()
	folio := &domain.Folio{
		FolioID:  folioID,
		Status:   domain.FolioStatusOpen,
		Workflow: domain.WorkflowActive,
		Balance:  decimal.Zero,
	}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByFolioID", ctx, folioID).Return([]domain.FolioTransaction{}, nil).Once()

	reasons, err := suite.service.ValidateCheckoutEligibility(ctx, folioID)

	suite.Require().NoError(err)
	suite.Empty(reasons)
}

func (suite *SettlementServiceTestSuite) TestProcessCheckout_FullSettlementClosesFolio() {
	ctx := context.Background()
	actorID := uuid.NewString()
	folioID := uuid.NewString()
	method := suite.activeMethod()

	open := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(150)}
	settled := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusOpen, Balance: decimal.Zero}
	closed := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusClosed, Balance: decimal.Zero}
	payment := &domain.FolioTransaction{TransactionID: uuid.NewString(), Type: domain.TransactionPayment, Amount: decimal.NewFromInt(150)}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(open, nil).Once()
	suite.mockHotelSvc.On("GetPaymentMethod", ctx, method.PaymentMethodID).Return(method, nil).Once()
	suite.mockLedgerSvc.On("PostTransaction", ctx, folioID, mock.MatchedBy(func(req dto.PostTransactionRequest) bool {
		return req.Type == string(domain.TransactionPayment) && req.Amount.Equal(decimal.NewFromInt(150))
	}), actorID).Return(payment, nil).Once()
	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(settled, nil).Once()
	suite.mockFolioRepo.On("CloseFolio", ctx, folioID, domain.SettlementSettled, actorID, mock.AnythingOfType("time.Time")).Return(closed, nil).Once()

	result, err := suite.service.ProcessCheckout(ctx, folioID, dto.CheckoutRequest{PaymentMethodID: method.PaymentMethodID}, actorID)

	suite.Require().NoError(err)
	suite.True(result.CheckoutCompleted)
	suite.True(result.FolioClosed)
	suite.False(result.RequiresManualReview)
	suite.Require().NotNil(result.PaymentTransaction)
	suite.True(result.OutstandingBalance.IsZero())

	suite.mockFolioRepo.AssertExpectations(suite.T())
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestProcessCheckout_PartialPaymentKeepsFolioOpen() {
	ctx := context.Background()
	actorID := uuid.NewString()
	folioID := uuid.NewString()
	method := suite.activeMethod()
	partial := decimal.NewFromInt(100)

	open := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(150)}
	stillOpen := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(50)}
	payment := &domain.FolioTransaction{TransactionID: uuid.NewString(), Type: domain.TransactionPayment, Amount: partial}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(open, nil).Once()
	suite.mockHotelSvc.On("GetPaymentMethod", ctx, method.PaymentMethodID).Return(method, nil).Once()
	suite.mockLedgerSvc.On("PostTransaction", ctx, folioID, mock.MatchedBy(func(req dto.PostTransactionRequest) bool {
		return req.Amount.Equal(partial)
	}), actorID).Return(payment, nil).Once()
	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(stillOpen, nil).Once()

	result, err := suite.service.ProcessCheckout(ctx, folioID, dto.CheckoutRequest{
		PaymentMethodID: method.PaymentMethodID,
		PaymentAmount:   &partial,
	}, actorID)

	suite.Require().NoError(err)
	suite.False(result.CheckoutCompleted)
	suite.False(result.FolioClosed)
	suite.True(result.OutstandingBalance.Equal(decimal.NewFromInt(50)))
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "CloseFolio", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestProcessCheckout_OverpaymentFlagsCreditDue() {
	ctx := context.Background()
	actorID := uuid.NewString()
	folioID := uuid.NewString()
	method := suite.activeMethod()
	overpaid := decimal.NewFromInt(200)

	open := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(150)}
	credit := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(-50)}
	payment := &domain.FolioTransaction{TransactionID: uuid.NewString(), Type: domain.TransactionPayment, Amount: overpaid}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(open, nil).Once()
	suite.mockHotelSvc.On("GetPaymentMethod", ctx, method.PaymentMethodID).Return(method, nil).Once()
	suite.mockLedgerSvc.On("PostTransaction", ctx, folioID, mock.MatchedBy(func(req dto.PostTransactionRequest) bool {
		return req.Amount.Equal(overpaid)
	}), actorID).Return(payment, nil).Once()
	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(credit, nil).Once()

	result, err := suite.service.ProcessCheckout(ctx, folioID, dto.CheckoutRequest{
		PaymentMethodID: method.PaymentMethodID,
		PaymentAmount:   &overpaid,
	}, actorID)

	suite.Require().NoError(err)
	suite.False(result.CheckoutCompleted)
	suite.False(result.FolioClosed)
	suite.True(result.RequiresManualReview)
	suite.Contains(result.Message, "overpayment")
	suite.True(result.OutstandingBalance.Equal(decimal.NewFromInt(-50)))
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "CloseFolio", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestProcessCheckout_CreditBalanceNeedsReview() {
	ctx := context.Background()
	folioID := uuid.NewString()
	folio := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(-75)}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()

	result, err := suite.service.ProcessCheckout(ctx, folioID, dto.CheckoutRequest{PaymentMethodID: uuid.NewString()}, uuid.NewString())

	suite.Require().NoError(err)
	suite.False(result.CheckoutCompleted)
	suite.False(result.FolioClosed)
	suite.True(result.RequiresManualReview)
	suite.mockHotelSvc.AssertNotCalled(suite.T(), "GetPaymentMethod", mock.Anything, mock.Anything)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestProcessCheckout_AlreadySettledClosesWithoutPayment() {
	ctx := context.Background()
	actorID := uuid.NewString()
	folioID := uuid.NewString()

	settled := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusOpen, Balance: decimal.Zero}
	closed := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusClosed, Balance: decimal.Zero}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(settled, nil).Once()
	suite.mockFolioRepo.On("CloseFolio", ctx, folioID, domain.SettlementSettled, actorID, mock.AnythingOfType("time.Time")).Return(closed, nil).Once()

	result, err := suite.service.ProcessCheckout(ctx, folioID, dto.CheckoutRequest{PaymentMethodID: uuid.NewString()}, actorID)

	suite.Require().NoError(err)
	suite.True(result.FolioClosed)
	suite.Nil(result.PaymentTransaction)
	suite.mockLedgerSvc.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestProcessCheckout_InactiveMethodRejected() {
	ctx := context.Background()
	folioID := uuid.NewString()
	method := suite.activeMethod()
	method.IsActive = false

	folio := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(150)}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()
	suite.mockHotelSvc.On("GetPaymentMethod", ctx, method.PaymentMethodID).Return(method, nil).Once()

	_, err := suite.service.ProcessCheckout(ctx, folioID, dto.CheckoutRequest{PaymentMethodID: method.PaymentMethodID}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaymentMethodInactive)
}

func (suite *SettlementServiceTestSuite) TestProcessCheckout_ClosedFolioRejected() {
	ctx := context.Background()
	folioID := uuid.NewString()
	folio := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusClosed, Balance: decimal.Zero}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()

	_, err := suite.service.ProcessCheckout(ctx, folioID, dto.CheckoutRequest{PaymentMethodID: uuid.NewString()}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFolioNotOpen)
}

func (suite *SettlementServiceTestSuite) TestProcessReservationCheckout_AllFoliosClose() {
	ctx := context.Background()
	actorID := uuid.NewString()
	reservationID := uuid.NewString()
	hotelID := uuid.NewString()

	reservation := &domain.Reservation{ReservationID: reservationID, Status: domain.ReservationInHouse}
	folioA := domain.Folio{FolioID: uuid.NewString(), HotelID: hotelID, Status: domain.FolioStatusOpen, Balance: decimal.Zero}
	folioB := domain.Folio{FolioID: uuid.NewString(), HotelID: hotelID, Status: domain.FolioStatusOpen, Balance: decimal.Zero}

	suite.mockHotelSvc.On("GetReservation", ctx, reservationID).Return(reservation, nil).Once()
	suite.mockFolioRepo.On("ListFoliosByReservation", ctx, reservationID, true).Return([]domain.Folio{folioA, folioB}, nil).Once()

	refreshed := map[string]*domain.Folio{
		folioA.FolioID: {FolioID: folioA.FolioID, Status: domain.FolioStatusClosed, Balance: decimal.Zero},
		folioB.FolioID: {FolioID: folioB.FolioID, Status: domain.FolioStatusClosed, Balance: decimal.Zero},
	}
	var capturedUnit portsrepo.SettlementUnit
	suite.mockTxnRepo.On("SettleFolios", ctx, mock.AnythingOfType("repositories.SettlementUnit")).
		Run(func(args mock.Arguments) {
			capturedUnit = args.Get(1).(portsrepo.SettlementUnit)
		}).
		Return(refreshed, []domain.FolioTransaction{}, nil).
		Once()
	suite.mockHotelSvc.On("MarkReservationCheckedOut", ctx, reservationID, actorID).Return(nil).Once()

	result, err := suite.service.ProcessReservationCheckout(ctx, reservationID, []dto.CheckoutRequest{{PaymentMethodID: uuid.NewString()}}, actorID)

	suite.Require().NoError(err)
	suite.True(result.ReservationCheckedOut)
	suite.Len(result.FolioResults, 2)
	// already settled folios need no settling payment, only the close
	suite.Empty(capturedUnit.Postings)
	suite.Len(capturedUnit.Closes, 2)
	suite.mockHotelSvc.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestProcessReservationCheckout_BlockedFolioLeavesReservationOpen() {
	ctx := context.Background()
	actorID := uuid.NewString()
	reservationID := uuid.NewString()
	hotelID := uuid.NewString()
	method := suite.activeMethod()
	partial := decimal.NewFromInt(10)

	reservation := &domain.Reservation{ReservationID: reservationID, Status: domain.ReservationInHouse}
	folioA := domain.Folio{FolioID: uuid.NewString(), HotelID: hotelID, Status: domain.FolioStatusOpen, Balance: decimal.Zero}
	folioB := domain.Folio{FolioID: uuid.NewString(), HotelID: hotelID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(90)}

	suite.mockHotelSvc.On("GetReservation", ctx, reservationID).Return(reservation, nil).Once()
	suite.mockFolioRepo.On("ListFoliosByReservation", ctx, reservationID, true).Return([]domain.Folio{folioA, folioB}, nil).Once()
	suite.mockHotelSvc.On("GetPaymentMethod", ctx, method.PaymentMethodID).Return(method, nil).Once()
	suite.mockHotelSvc.On("GetCurrentWorkingDate", ctx, hotelID).Return(reservation.CheckInDate, nil).Once()

	storedPayment := domain.FolioTransaction{
		TransactionID:     uuid.NewString(),
		FolioID:           folioB.FolioID,
		Type:              domain.TransactionPayment,
		TransactionNumber: 12,
		Amount:            partial,
	}
	refreshed := map[string]*domain.Folio{
		folioA.FolioID: {FolioID: folioA.FolioID, Status: domain.FolioStatusClosed, Balance: decimal.Zero},
		folioB.FolioID: {FolioID: folioB.FolioID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(80)},
	}
	var capturedUnit portsrepo.SettlementUnit
	suite.mockTxnRepo.On("SettleFolios", ctx, mock.AnythingOfType("repositories.SettlementUnit")).
		Run(func(args mock.Arguments) {
			capturedUnit = args.Get(1).(portsrepo.SettlementUnit)
		}).
		Return(refreshed, []domain.FolioTransaction{storedPayment}, nil).
		Once()

	payments := []dto.CheckoutRequest{
		{PaymentMethodID: method.PaymentMethodID},
		{PaymentMethodID: method.PaymentMethodID, PaymentAmount: &partial},
	}
	result, err := suite.service.ProcessReservationCheckout(ctx, reservationID, payments, actorID)

	suite.Require().NoError(err)
	suite.False(result.ReservationCheckedOut)
	suite.Len(result.FolioResults, 2)
	suite.True(result.FolioResults[0].FolioClosed)
	suite.False(result.FolioResults[1].FolioClosed)
	suite.True(result.FolioResults[1].OutstandingBalance.Equal(decimal.NewFromInt(80)))
	suite.Require().NotNil(result.FolioResults[1].PaymentTransaction)
	suite.Equal(storedPayment.TransactionID, result.FolioResults[1].PaymentTransaction.TransactionID)

	// the partial payment is staged but only the settled folio closes
	suite.Require().Len(capturedUnit.Postings, 1)
	suite.Equal(folioB.FolioID, capturedUnit.Postings[0].FolioID)
	suite.Require().Len(capturedUnit.Closes, 1)
	suite.Equal(folioA.FolioID, capturedUnit.Closes[0].FolioID)
	suite.mockHotelSvc.AssertNotCalled(suite.T(), "MarkReservationCheckedOut", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestProcessReservationCheckout_FailedUnitKeepsEverything() {
	ctx := context.Background()
	actorID := uuid.NewString()
	reservationID := uuid.NewString()
	hotelID := uuid.NewString()
	method := suite.activeMethod()

	reservation := &domain.Reservation{ReservationID: reservationID, Status: domain.ReservationInHouse}
	folioA := domain.Folio{FolioID: uuid.NewString(), HotelID: hotelID, Status: domain.FolioStatusOpen, Balance: decimal.Zero}
	folioB := domain.Folio{FolioID: uuid.NewString(), HotelID: hotelID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(150)}

	suite.mockHotelSvc.On("GetReservation", ctx, reservationID).Return(reservation, nil).Once()
	suite.mockFolioRepo.On("ListFoliosByReservation", ctx, reservationID, true).Return([]domain.Folio{folioA, folioB}, nil).Once()
	suite.mockHotelSvc.On("GetPaymentMethod", ctx, method.PaymentMethodID).Return(method, nil).Once()
	suite.mockHotelSvc.On("GetCurrentWorkingDate", ctx, hotelID).Return(reservation.CheckInDate, nil).Once()
	suite.mockTxnRepo.On("SettleFolios", ctx, mock.AnythingOfType("repositories.SettlementUnit")).
		Return(nil, nil, apperrors.NewAppError(500, "storage failure", nil)).
		Once()

	_, err := suite.service.ProcessReservationCheckout(ctx, reservationID, []dto.CheckoutRequest{{PaymentMethodID: method.PaymentMethodID}}, actorID)

	suite.Require().Error(err)
	// the unit rolled back: no folio is closed separately and the
	// reservation stays in house
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "CloseFolio", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockHotelSvc.AssertNotCalled(suite.T(), "MarkReservationCheckedOut", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestProcessReservationCheckout_InactiveMethodAbortsBeforePosting() {
	ctx := context.Background()
	reservationID := uuid.NewString()
	hotelID := uuid.NewString()
	method := suite.activeMethod()
	method.IsActive = false

	reservation := &domain.Reservation{ReservationID: reservationID, Status: domain.ReservationInHouse}
	folio := domain.Folio{FolioID: uuid.NewString(), HotelID: hotelID, Status: domain.FolioStatusOpen, Balance: decimal.NewFromInt(60)}

	suite.mockHotelSvc.On("GetReservation", ctx, reservationID).Return(reservation, nil).Once()
	suite.mockFolioRepo.On("ListFoliosByReservation", ctx, reservationID, true).Return([]domain.Folio{folio}, nil).Once()
	suite.mockHotelSvc.On("GetPaymentMethod", ctx, method.PaymentMethodID).Return(method, nil).Once()

	_, err := suite.service.ProcessReservationCheckout(ctx, reservationID, []dto.CheckoutRequest{{PaymentMethodID: method.PaymentMethodID}}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPaymentMethodInactive)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SettleFolios", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestProcessReservationCheckout_NotInHouseRejected() {
	ctx := context.Background()
	reservationID := uuid.NewString()
	reservation := &domain.Reservation{ReservationID: reservationID, Status: domain.ReservationCheckedOut}

	suite.mockHotelSvc.On("GetReservation", ctx, reservationID).Return(reservation, nil).Once()

	_, err := suite.service.ProcessReservationCheckout(ctx, reservationID, []dto.CheckoutRequest{{PaymentMethodID: uuid.NewString()}}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReservationNotInHouse)
}

func (suite *SettlementServiceTestSuite) TestProcessReservationCheckout_NoPaymentsRejected() {
	ctx := context.Background()
	reservationID := uuid.NewString()
	reservation := &domain.Reservation{ReservationID: reservationID, Status: domain.ReservationInHouse}

	suite.mockHotelSvc.On("GetReservation", ctx, reservationID).Return(reservation, nil).Once()

	_, err := suite.service.ProcessReservationCheckout(ctx, reservationID, nil, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestProcessReservationCheckout_NoOpenFoliosRejected() {
	ctx := context.Background()
	reservationID := uuid.NewString()
	reservation := &domain.Reservation{ReservationID: reservationID, Status: domain.ReservationInHouse}

	suite.mockHotelSvc.On("GetReservation", ctx, reservationID).Return(reservation, nil).Once()
	suite.mockFolioRepo.On("ListFoliosByReservation", ctx, reservationID, true).Return([]domain.Folio{}, nil).Once()

	_, err := suite.service.ProcessReservationCheckout(ctx, reservationID, []dto.CheckoutRequest{{PaymentMethodID: uuid.NewString()}}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoOpenFolios)
}

func (suite *SettlementServiceTestSuite) TestForceCloseFolio_WritesOffBalance() {
	ctx := context.Background()
	authorizedBy := uuid.NewString()
	folioID := uuid.NewString()

	folio := &domain.Folio{
		FolioID:       folioID,
		Status:        domain.FolioStatusOpen,
		Balance:       decimal.NewFromInt(75),
		TotalPayments: decimal.NewFromInt(200),
	}
	closed := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusClosed, Balance: decimal.Zero}
	writeOff := &domain.FolioTransaction{TransactionID: uuid.NewString(), Type: domain.TransactionAdjustment, Amount: decimal.NewFromInt(-75)}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()
	suite.mockLedgerSvc.On("PostTransaction", ctx, folioID, mock.MatchedBy(func(req dto.PostTransactionRequest) bool {
		return req.Type == string(domain.TransactionAdjustment) &&
			req.Category == string(domain.CategoryWriteOff) &&
			req.Amount.Equal(decimal.NewFromInt(-75))
	}), authorizedBy).Return(writeOff, nil).Once()
	suite.mockFolioRepo.On("CloseFolio", ctx, folioID, domain.SettlementSettled, authorizedBy, mock.AnythingOfType("time.Time")).Return(closed, nil).Once()

	result, err := suite.service.ForceCloseFolio(ctx, folioID, "guest disputes minibar", authorizedBy)

	suite.Require().NoError(err)
	suite.True(result.FolioClosed)
	suite.True(result.RequiresManualReview)
	suite.Contains(result.Message, "written off")
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestForceCloseFolio_CreditClearedByCorrection() {
	ctx := context.Background()
	authorizedBy := uuid.NewString()
	folioID := uuid.NewString()

	folio := &domain.Folio{
		FolioID:       folioID,
		Status:        domain.FolioStatusOpen,
		Balance:       decimal.NewFromInt(-25),
		TotalPayments: decimal.NewFromInt(100),
	}
	closed := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusClosed, Balance: decimal.Zero}
	correction := &domain.FolioTransaction{TransactionID: uuid.NewString(), Type: domain.TransactionCorrection, Amount: decimal.NewFromInt(25)}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()
	suite.mockLedgerSvc.On("PostTransaction", ctx, folioID, mock.MatchedBy(func(req dto.PostTransactionRequest) bool {
		return req.Type == string(domain.TransactionCorrection) &&
			req.Amount.Equal(decimal.NewFromInt(25))
	}), authorizedBy).Return(correction, nil).Once()
	suite.mockFolioRepo.On("CloseFolio", ctx, folioID, domain.SettlementSettled, authorizedBy, mock.AnythingOfType("time.Time")).Return(closed, nil).Once()

	result, err := suite.service.ForceCloseFolio(ctx, folioID, "duplicate deposit", authorizedBy)

	suite.Require().NoError(err)
	suite.True(result.FolioClosed)
	suite.Contains(result.Message, "correction")
	suite.mockLedgerSvc.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestForceCloseFolio_NoPaymentsStaysUnsettled() {
	ctx := context.Background()
	authorizedBy := uuid.NewString()
	folioID := uuid.NewString()

	folio := &domain.Folio{
		FolioID:       folioID,
		Status:        domain.FolioStatusOpen,
		Balance:       decimal.NewFromInt(40),
		TotalPayments: decimal.Zero,
	}
	closed := &domain.Folio{FolioID: folioID, Status: domain.FolioStatusClosed, Balance: decimal.Zero}
	writeOff := &domain.FolioTransaction{TransactionID: uuid.NewString(), Type: domain.TransactionAdjustment}

	suite.mockFolioRepo.On("FindFolioByID", ctx, folioID).Return(folio, nil).Once()
	suite.mockLedgerSvc.On("PostTransaction", ctx, folioID, mock.AnythingOfType("dto.PostTransactionRequest"), authorizedBy).Return(writeOff, nil).Once()
	suite.mockFolioRepo.On("CloseFolio", ctx, folioID, domain.SettlementUnsettled, authorizedBy, mock.AnythingOfType("time.Time")).Return(closed, nil).Once()

	result, err := suite.service.ForceCloseFolio(ctx, folioID, "skip without payment", authorizedBy)

	suite.Require().NoError(err)
	suite.True(result.FolioClosed)
}

func (suite *SettlementServiceTestSuite) TestForceCloseFolio_ReasonRequired() {
	ctx := context.Background()

	_, err := suite.service.ForceCloseFolio(ctx, uuid.NewString(), "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrForceCloseReason)
	suite.mockFolioRepo.AssertNotCalled(suite.T(), "FindFolioByID", mock.Anything, mock.Anything)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
