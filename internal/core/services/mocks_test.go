package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	"github.com/stayfolio/pms_backend/internal/dto"
)

// Shared mocks for the service test suites. Several services depend on the
// same repository facades, so the mocks live here instead of per test file.

// MockFolioRepository is a mock type for the FolioRepositoryFacade interface
type MockFolioRepository struct {
	mock.Mock
}

func (m *MockFolioRepository) SaveFolio(ctx context.Context, folio domain.Folio) error {
	args := m.Called(ctx, folio)
	return args.Error(0)
}

func (m *MockFolioRepository) FindFolioByID(ctx context.Context, folioID string) (*domain.Folio, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) ListFoliosByReservation(ctx context.Context, reservationID string, openOnly bool) ([]domain.Folio, error) {
	args := m.Called(ctx, reservationID, openOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) CloseFolio(ctx context.Context, folioID string, settlement domain.SettlementStatus, closedBy string, closedAt time.Time) (*domain.Folio, error) {
	args := m.Called(ctx, folioID, settlement, closedBy, closedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Folio), args.Error(1)
}

func (m *MockFolioRepository) UpdateWorkflowStatus(ctx context.Context, folioID string, workflow domain.WorkflowStatus, actorID string, at time.Time) error {
	args := m.Called(ctx, folioID, workflow, actorID, at)
	return args.Error(0)
}

func (m *MockFolioRepository) DeleteFolio(ctx context.Context, folioID string) error {
	args := m.Called(ctx, folioID)
	return args.Error(0)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) PostToFolio(ctx context.Context, folioID string, txns []domain.FolioTransaction) (*domain.Folio, []domain.FolioTransaction, error) {
	args := m.Called(ctx, folioID, txns)
	var folio *domain.Folio
	if args.Get(0) != nil {
		folio = args.Get(0).(*domain.Folio)
	}
	var stored []domain.FolioTransaction
	if args.Get(1) != nil {
		stored = args.Get(1).([]domain.FolioTransaction)
	}
	return folio, stored, args.Error(2)
}

func (m *MockTransactionRepository) PostAcrossFolios(ctx context.Context, postings []portsrepo.FolioPosting) (map[string]*domain.Folio, error) {
	args := m.Called(ctx, postings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.Folio), args.Error(1)
}

func (m *MockTransactionRepository) SettleFolios(ctx context.Context, unit portsrepo.SettlementUnit) (map[string]*domain.Folio, []domain.FolioTransaction, error) {
	args := m.Called(ctx, unit)
	var folios map[string]*domain.Folio
	if args.Get(0) != nil {
		folios = args.Get(0).(map[string]*domain.Folio)
	}
	var stored []domain.FolioTransaction
	if args.Get(1) != nil {
		stored = args.Get(1).([]domain.FolioTransaction)
	}
	return folios, stored, args.Error(2)
}

func (m *MockTransactionRepository) VoidTransaction(ctx context.Context, transactionID string, reason string, actorID string, at time.Time) (*domain.FolioTransaction, *domain.Folio, error) {
	args := m.Called(ctx, transactionID, reason, actorID, at)
	var txn *domain.FolioTransaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.FolioTransaction)
	}
	var folio *domain.Folio
	if args.Get(1) != nil {
		folio = args.Get(1).(*domain.Folio)
	}
	return txn, folio, args.Error(2)
}

func (m *MockTransactionRepository) UpdateAssignment(ctx context.Context, transactionID string, assigned, unassigned decimal.Decimal, entry domain.AssignmentEntry, actorID string, at time.Time) (*domain.FolioTransaction, error) {
	args := m.Called(ctx, transactionID, assigned, unassigned, entry, actorID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioTransaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateAssignments(ctx context.Context, updates []portsrepo.AssignmentUpdate, actorID string, at time.Time) ([]domain.FolioTransaction, error) {
	args := m.Called(ctx, updates, actorID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FolioTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FolioTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByFolioID(ctx context.Context, folioID string) ([]domain.FolioTransaction, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FolioTransaction), args.Error(1)
}

func (m *MockTransactionRepository) SumUnassignedByCompany(ctx context.Context, hotelID, companyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, hotelID, companyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockRollupRepository is a mock type for the RollupRepositoryFacade interface
type MockRollupRepository struct {
	mock.Mock
}

func (m *MockRollupRepository) LedgerMovements(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, hotelID, businessDate, kind)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockRollupRepository) LedgerBalanceBefore(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (decimal.Decimal, error) {
	args := m.Called(ctx, hotelID, businessDate, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockSnapshotRepository is a mock type for the SnapshotRepositoryFacade interface
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.DailyLedgerSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) FindSnapshot(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (*domain.DailyLedgerSnapshot, error) {
	args := m.Called(ctx, hotelID, businessDate, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyLedgerSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) ListSnapshots(ctx context.Context, hotelID string, kind domain.LedgerKind, from, to time.Time) ([]domain.DailyLedgerSnapshot, error) {
	args := m.Called(ctx, hotelID, kind, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyLedgerSnapshot), args.Error(1)
}

// MockHotelService is a mock type for the HotelSvcFacade interface
type MockHotelService struct {
	mock.Mock
}

func (m *MockHotelService) GetCurrentWorkingDate(ctx context.Context, hotelID string) (time.Time, error) {
	args := m.Called(ctx, hotelID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockHotelService) GetHotel(ctx context.Context, hotelID string) (*domain.Hotel, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelService) AdvanceWorkingDate(ctx context.Context, hotelID string, actorID string) (time.Time, error) {
	args := m.Called(ctx, hotelID, actorID)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockHotelService) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockHotelService) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockHotelService) MarkReservationCheckedOut(ctx context.Context, reservationID string, actorID string) error {
	args := m.Called(ctx, reservationID, actorID)
	return args.Error(0)
}

// MockLedgerService is a mock type for the LedgerSvcFacade interface
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) PostTransaction(ctx context.Context, folioID string, req dto.PostTransactionRequest, actorID string) (*domain.FolioTransaction, error) {
	args := m.Called(ctx, folioID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioTransaction), args.Error(1)
}

func (m *MockLedgerService) VoidTransaction(ctx context.Context, transactionID string, reason string, actorID string) (*domain.FolioTransaction, error) {
	args := m.Called(ctx, transactionID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioTransaction), args.Error(1)
}

func (m *MockLedgerService) PostRefund(ctx context.Context, originalTransactionID string, amount decimal.Decimal, reason string, actorID string) (*domain.FolioTransaction, error) {
	args := m.Called(ctx, originalTransactionID, amount, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioTransaction), args.Error(1)
}

func (m *MockLedgerService) PostCorrection(ctx context.Context, originalTransactionID string, correctedAmount decimal.Decimal, reason string, actorID string) (*domain.FolioTransaction, error) {
	args := m.Called(ctx, originalTransactionID, correctedAmount, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioTransaction), args.Error(1)
}

func (m *MockLedgerService) TransferAmount(ctx context.Context, sourceFolioID, targetFolioID string, amount decimal.Decimal, notes string, actorID string) ([]domain.FolioTransaction, error) {
	args := m.Called(ctx, sourceFolioID, targetFolioID, amount, notes, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FolioTransaction), args.Error(1)
}

func (m *MockLedgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.FolioTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FolioTransaction), args.Error(1)
}

func (m *MockLedgerService) ListFolioTransactions(ctx context.Context, folioID string) ([]domain.FolioTransaction, error) {
	args := m.Called(ctx, folioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FolioTransaction), args.Error(1)
}
