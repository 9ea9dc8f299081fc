package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/dto"
	"github.com/stayfolio/pms_backend/internal/middleware"
	"github.com/stayfolio/pms_backend/internal/utils/accounting"
)

var (
	ErrOwnerMissing  = errors.New("folio owner reference missing for folio type")
	ErrAlreadyFinal  = errors.New("folio is already finalized")
	ErrFolioNotEmpty = errors.New("folio with transactions cannot be deleted")
)

// folioService manages folio lifecycle and the balance-aggregator reads.
type folioService struct {
	folioRepo portsrepo.FolioRepositoryFacade
	txnRepo   portsrepo.TransactionRepositoryFacade
	hotelSvc  portssvc.HotelSvcFacade
}

// NewFolioService creates a new FolioService.
func NewFolioService(folioRepo portsrepo.FolioRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, hotelSvc portssvc.HotelSvcFacade) portssvc.FolioSvcFacade {
	return &folioService{
		folioRepo: folioRepo,
		txnRepo:   txnRepo,
		hotelSvc:  hotelSvc,
	}
}

var _ portssvc.FolioSvcFacade = (*folioService)(nil)

// validateOwner ensures the folio type carries the owner reference it needs.
func validateOwner(folioType domain.FolioType, req dto.CreateFolioRequest) error {
	switch folioType {
	case domain.FolioTypeGuest:
		if req.GuestID == nil || *req.GuestID == "" {
			return fmt.Errorf("%w: GUEST folio requires guestID", ErrOwnerMissing)
		}
	case domain.FolioTypeCompany:
		if req.CompanyID == nil || *req.CompanyID == "" {
			return fmt.Errorf("%w: COMPANY folio requires companyID", ErrOwnerMissing)
		}
	case domain.FolioTypeGroup, domain.FolioTypeMaster:
		if req.GroupID == nil || *req.GroupID == "" {
			return fmt.Errorf("%w: %s folio requires groupID", ErrOwnerMissing, folioType)
		}
	}
	return nil
}

// CreateFolio opens a new folio with zeroed aggregates.
func (s *folioService) CreateFolio(ctx context.Context, req dto.CreateFolioRequest, actorID string) (*domain.Folio, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	folioType := domain.FolioType(req.FolioType)
	if err := validateOwner(folioType, req); err != nil {
		return nil, err
	}
	if req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit must not be negative", apperrors.ErrValidation)
	}

	// The hotel must exist; its lookup also proves the property is onboarded.
	if _, err := s.hotelSvc.GetHotel(ctx, req.HotelID); err != nil {
		logger.Warn("Hotel not found for folio creation", slog.String("hotel_id", req.HotelID))
		return nil, err
	}

	now := time.Now().UTC()
	folioID := uuid.NewString()
	folio := domain.Folio{
		FolioID:       folioID,
		HotelID:       req.HotelID,
		FolioNumber:   generateFolioNumber(folioID),
		FolioType:     folioType,
		Status:        domain.FolioStatusOpen,
		Settlement:    domain.SettlementUnsettled,
		Workflow:      domain.WorkflowActive,
		GuestID:       req.GuestID,
		CompanyID:     req.CompanyID,
		GroupID:       req.GroupID,
		ReservationID: req.ReservationID,

		TotalCharges:        decimal.Zero,
		TotalPayments:       decimal.Zero,
		TotalAdjustments:    decimal.Zero,
		TotalTaxes:          decimal.Zero,
		TotalServiceCharges: decimal.Zero,
		TotalDiscounts:      decimal.Zero,
		Balance:             decimal.Zero,

		CreditLimit:  req.CreditLimit,
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		OpenedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.folioRepo.SaveFolio(ctx, folio); err != nil {
		logger.Error("Failed to save folio", slog.String("folio_id", folio.FolioID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Folio created",
		slog.String("folio_id", folio.FolioID),
		slog.String("folio_number", folio.FolioNumber),
		slog.String("folio_type", string(folio.FolioType)),
		slog.String("hotel_id", folio.HotelID))
	return &folio, nil
}

// generateFolioNumber derives a short human-readable folio number from the ID.
func generateFolioNumber(folioID string) string {
	return "F-" + strings.ToUpper(strings.ReplaceAll(folioID, "-", "")[:10])
}

// GetFolioByID fetches a folio, optionally hydrating its transaction list.
func (s *folioService) GetFolioByID(ctx context.Context, folioID string, includeTransactions bool) (*domain.Folio, error) {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, err
	}
	if includeTransactions {
		txns, err := s.txnRepo.FindTransactionsByFolioID(ctx, folioID)
		if err != nil {
			return nil, err
		}
		folio.Transactions = txns
	}
	return folio, nil
}

// GetSettlementSummary reads the folio's aggregate projection and answers
// whether it can close.
func (s *folioService) GetSettlementSummary(ctx context.Context, folioID string) (*domain.SettlementSummary, error) {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, err
	}
	return &domain.SettlementSummary{
		FolioID:            folio.FolioID,
		TotalCharges:       folio.TotalCharges,
		TotalPayments:      folio.TotalPayments,
		TotalAdjustments:   folio.TotalAdjustments,
		OutstandingBalance: folio.Balance,
		IsFullySettled:     accounting.IsSettled(folio.Balance),
		RequiresPayment:    accounting.RequiresPayment(folio.Balance),
	}, nil
}

// FinalizeFolio locks a folio against further postings without closing it.
func (s *folioService) FinalizeFolio(ctx context.Context, folioID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return err
	}
	if folio.Workflow == domain.WorkflowFinalized {
		return fmt.Errorf("%w: folio %s", ErrAlreadyFinal, folioID)
	}
	if folio.Status != domain.FolioStatusOpen {
		return fmt.Errorf("%w: folio %s has status %s", apperrors.ErrFolioNotModifiable, folioID, folio.Status)
	}

	if err := s.folioRepo.UpdateWorkflowStatus(ctx, folioID, domain.WorkflowFinalized, actorID, time.Now().UTC()); err != nil {
		logger.Error("Failed to finalize folio", slog.String("folio_id", folioID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Folio finalized", slog.String("folio_id", folioID), slog.String("finalized_by", actorID))
	return nil
}

// DeleteFolio removes an empty folio. Folios with any ledger history are
// never physically deleted.
func (s *folioService) DeleteFolio(ctx context.Context, folioID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.txnRepo.FindTransactionsByFolioID(ctx, folioID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if len(txns) > 0 {
		return fmt.Errorf("%w: folio %s has %d transactions", ErrFolioNotEmpty, folioID, len(txns))
	}

	if err := s.folioRepo.DeleteFolio(ctx, folioID); err != nil {
		logger.Error("Failed to delete folio", slog.String("folio_id", folioID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Folio deleted", slog.String("folio_id", folioID))
	return nil
}
