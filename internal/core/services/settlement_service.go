package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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
	ErrFolioNotOpen          = errors.New("folio is not open")
	ErrReservationNotInHouse = errors.New("reservation is not in house")
	ErrNoOpenFolios          = errors.New("reservation has no open folios")
	ErrPaymentMethodInactive = errors.New("payment method is inactive")
	ErrForceCloseReason      = errors.New("force close requires a reason")
)

// settlementService drives checkout settlement: it validates eligibility,
// collects the settling payment through the ledger, and closes folios whose
// balance reaches zero within tolerance.
type settlementService struct {
	folioRepo portsrepo.FolioRepositoryFacade
	txnRepo   portsrepo.TransactionRepositoryFacade
	ledgerSvc portssvc.LedgerSvcFacade
	hotelSvc  portssvc.HotelSvcFacade
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(folioRepo portsrepo.FolioRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, ledgerSvc portssvc.LedgerSvcFacade, hotelSvc portssvc.HotelSvcFacade) portssvc.SettlementSvcFacade {
	return &settlementService{
		folioRepo: folioRepo,
		txnRepo:   txnRepo,
		ledgerSvc: ledgerSvc,
		hotelSvc:  hotelSvc,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// ValidateCheckoutEligibility returns every reason blocking checkout instead
// of failing on the first, so the front desk can resolve them in one pass.
func (s *settlementService) ValidateCheckoutEligibility(ctx context.Context, folioID string) ([]string, error) {
	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, err
	}

	var reasons []string
	if folio.Status != domain.FolioStatusOpen {
		reasons = append(reasons, fmt.Sprintf("folio status is %s, expected OPEN", folio.Status))
	}
	switch folio.Workflow {
	case domain.WorkflowDraft:
		reasons = append(reasons, "folio workflow is DRAFT; activate it before checkout")
	case domain.WorkflowFinalized:
		reasons = append(reasons, "folio workflow is FINALIZED; settlement postings are locked")
	}
	if accounting.RequiresPayment(folio.Balance) {
		reasons = append(reasons, fmt.Sprintf("outstanding balance of %s %s requires payment", folio.Balance.String(), folio.CurrencyCode))
	}
	if folio.Balance.LessThan(domain.BalanceEpsilon.Neg()) {
		reasons = append(reasons, fmt.Sprintf("credit balance of %s %s requires a refund before closing", folio.Balance.Abs().String(), folio.CurrencyCode))
	}

	if folio.ReservationID != nil {
		reservation, err := s.hotelSvc.GetReservation(ctx, *folio.ReservationID)
		if err != nil {
			return nil, err
		}
		if reservation.Status == domain.ReservationCancelled {
			reasons = append(reasons, fmt.Sprintf("reservation %s is cancelled", reservation.ReservationID))
		}
	}

	txns, err := s.txnRepo.FindTransactionsByFolioID(ctx, folioID)
	if err != nil {
		return nil, err
	}
	for i := range txns {
		txn := &txns[i]
		if txn.IsVoided {
			continue
		}
		switch txn.Status {
		case domain.TxnStatusPending:
			reasons = append(reasons, fmt.Sprintf("transaction %d is still pending", txn.TransactionNumber))
		case domain.TxnStatusDisputed:
			reasons = append(reasons, fmt.Sprintf("transaction %d is disputed", txn.TransactionNumber))
		}
	}
	return reasons, nil
}

// ProcessCheckout settles one folio. When the balance requires payment it
// posts the settling payment (defaulting to the full outstanding amount) and
// closes the folio if the balance lands within tolerance. Partial payments
// leave the folio open; overpayments leave it open with a credit flagged for
// manual review.
func (s *settlementService) ProcessCheckout(ctx context.Context, folioID string, req dto.CheckoutRequest, actorID string) (*domain.CheckoutResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, err
	}
	if folio.Status != domain.FolioStatusOpen {
		return nil, fmt.Errorf("%w: folio %s has status %s", ErrFolioNotOpen, folioID, folio.Status)
	}

	outstanding := folio.Balance

	// Credit balances are never closed silently; money is owed back.
	if outstanding.LessThan(domain.BalanceEpsilon.Neg()) {
		return &domain.CheckoutResult{
			FolioID:              folioID,
			CheckoutCompleted:    false,
			FolioClosed:          false,
			Message:              fmt.Sprintf("folio carries a credit balance of %s; refund before closing", outstanding.Abs().String()),
			OutstandingBalance:   outstanding,
			RequiresManualReview: true,
		}, nil
	}

	var payment *domain.FolioTransaction
	if accounting.RequiresPayment(outstanding) {
		method, err := s.hotelSvc.GetPaymentMethod(ctx, req.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if !method.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrPaymentMethodInactive, method.PaymentMethodID)
		}

		amount := outstanding
		if req.PaymentAmount != nil {
			amount = *req.PaymentAmount
		}

		payment, err = s.ledgerSvc.PostTransaction(ctx, folioID, dto.PostTransactionRequest{
			Type:            string(domain.TransactionPayment),
			Category:        string(domain.CategoryPayment),
			Amount:          amount,
			Description:     "Checkout settlement",
			PaymentMethodID: &method.PaymentMethodID,
			ReservationID:   folio.ReservationID,
			GuestID:         folio.GuestID,
		}, actorID)
		if err != nil {
			logger.Error("Failed to post settlement payment", slog.String("folio_id", folioID), slog.String("error", err.Error()))
			return nil, err
		}

		folio, err = s.folioRepo.FindFolioByID(ctx, folioID)
		if err != nil {
			return nil, err
		}
	}

	if folio.Balance.LessThan(domain.BalanceEpsilon.Neg()) {
		logger.Info("Overpayment recorded, folio stays open",
			slog.String("folio_id", folioID),
			slog.String("credit_balance", folio.Balance.String()))
		return &domain.CheckoutResult{
			FolioID:              folioID,
			CheckoutCompleted:    false,
			FolioClosed:          false,
			Message:              fmt.Sprintf("overpayment recorded; credit of %s due", folio.Balance.Abs().String()),
			OutstandingBalance:   folio.Balance,
			PaymentTransaction:   payment,
			RequiresManualReview: true,
		}, nil
	}

	if !folio.IsFullySettled() {
		logger.Info("Partial settlement, folio stays open",
			slog.String("folio_id", folioID),
			slog.String("remaining_balance", folio.Balance.String()))
		return &domain.CheckoutResult{
			FolioID:            folioID,
			CheckoutCompleted:  false,
			FolioClosed:        false,
			Message:            fmt.Sprintf("partial payment recorded; %s still outstanding", folio.Balance.String()),
			OutstandingBalance: folio.Balance,
			PaymentTransaction: payment,
		}, nil
	}

	closed, err := s.folioRepo.CloseFolio(ctx, folioID, domain.SettlementSettled, actorID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to close folio", slog.String("folio_id", folioID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Folio settled and closed",
		slog.String("folio_id", folioID),
		slog.String("closed_by", actorID))
	return &domain.CheckoutResult{
		FolioID:            folioID,
		CheckoutCompleted:  true,
		FolioClosed:        true,
		Message:            "folio settled and closed",
		OutstandingBalance: closed.Balance,
		PaymentTransaction: payment,
	}, nil
}

// buildSettlementPayment assembles the payment entry that settles a folio at
// checkout. The entry starts fully unassigned, like every payment.
func (s *settlementService) buildSettlementPayment(folio *domain.Folio, paymentMethodID string, amount decimal.Decimal, workingDate time.Time, actorID string, now time.Time) domain.FolioTransaction {
	methodID := paymentMethodID
	return domain.FolioTransaction{
		TransactionID:    uuid.NewString(),
		FolioID:          folio.FolioID,
		HotelID:          folio.HotelID,
		Type:             domain.TransactionPayment,
		Category:         domain.CategoryPayment,
		Status:           domain.TxnStatusPosted,
		Amount:           amount,
		NetAmount:        amount.Abs(),
		GrossAmount:      amount.Abs(),
		CurrencyCode:     folio.CurrencyCode,
		AssignedAmount:   decimal.Zero,
		UnassignedAmount: amount.Abs(),
		TransactionDate:  now,
		PostingDate:      now,
		WorkingDate:      workingDate,
		PaymentMethodID:  &methodID,
		ReservationID:    folio.ReservationID,
		GuestID:          folio.GuestID,
		Description:      "Checkout settlement",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
}

// ProcessReservationCheckout settles every open folio of a reservation as one
// unit of work. Payments pair with folios by index; the first payment is
// reused when the list is shorter than the folio count. All settlement
// postings and folio closes are staged first and committed together: if any
// folio's settlement fails, no folio shows a new transaction or state change.
// The reservation is marked checked out only when every folio closed.
func (s *settlementService) ProcessReservationCheckout(ctx context.Context, reservationID string, payments []dto.CheckoutRequest, actorID string) (*domain.ReservationCheckoutResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reservation, err := s.hotelSvc.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != domain.ReservationInHouse {
		return nil, fmt.Errorf("%w: reservation %s has status %s", ErrReservationNotInHouse, reservationID, reservation.Status)
	}
	if len(payments) == 0 {
		return nil, fmt.Errorf("%w: at least one payment instruction is required", apperrors.ErrValidation)
	}

	folios, err := s.folioRepo.ListFoliosByReservation(ctx, reservationID, true)
	if err != nil {
		return nil, err
	}
	if len(folios) == 0 {
		return nil, fmt.Errorf("%w: reservation %s", ErrNoOpenFolios, reservationID)
	}

	now := time.Now().UTC()
	var unit portsrepo.SettlementUnit
	results := make([]domain.CheckoutResult, len(folios))
	workingDates := make(map[string]time.Time)

	for i := range folios {
		folio := &folios[i]
		payment := payments[0]
		if i < len(payments) {
			payment = payments[i]
		}

		if folio.Status != domain.FolioStatusOpen {
			return nil, fmt.Errorf("%w: folio %s has status %s", ErrFolioNotOpen, folio.FolioID, folio.Status)
		}

		outstanding := folio.Balance
		results[i] = domain.CheckoutResult{FolioID: folio.FolioID, OutstandingBalance: outstanding}

		// Credit balances are never closed silently; money is owed back.
		if outstanding.LessThan(domain.BalanceEpsilon.Neg()) {
			results[i].Message = fmt.Sprintf("folio carries a credit balance of %s; refund before closing", outstanding.Abs().String())
			results[i].RequiresManualReview = true
			continue
		}

		if !accounting.RequiresPayment(outstanding) {
			unit.Closes = append(unit.Closes, portsrepo.FolioCloseInstruction{
				FolioID:    folio.FolioID,
				Settlement: domain.SettlementSettled,
				ClosedBy:   actorID,
				ClosedAt:   now,
			})
			results[i].CheckoutCompleted = true
			results[i].FolioClosed = true
			results[i].Message = "folio settled and closed"
			continue
		}

		method, err := s.hotelSvc.GetPaymentMethod(ctx, payment.PaymentMethodID)
		if err != nil {
			return nil, err
		}
		if !method.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrPaymentMethodInactive, method.PaymentMethodID)
		}

		amount := outstanding
		if payment.PaymentAmount != nil {
			amount = *payment.PaymentAmount
		}
		if amount.IsZero() || amount.IsNegative() {
			return nil, fmt.Errorf("%w: settlement payment of %s for folio %s", ErrNegativeAmount, amount.String(), folio.FolioID)
		}

		workingDate, ok := workingDates[folio.HotelID]
		if !ok {
			workingDate, err = s.hotelSvc.GetCurrentWorkingDate(ctx, folio.HotelID)
			if err != nil {
				return nil, err
			}
			workingDates[folio.HotelID] = workingDate
		}

		unit.Postings = append(unit.Postings, portsrepo.FolioPosting{
			FolioID:      folio.FolioID,
			Transactions: []domain.FolioTransaction{s.buildSettlementPayment(folio, method.PaymentMethodID, amount, workingDate, actorID, now)},
		})

		projected := outstanding.Sub(amount)
		results[i].OutstandingBalance = projected
		switch {
		case accounting.IsSettled(projected):
			unit.Closes = append(unit.Closes, portsrepo.FolioCloseInstruction{
				FolioID:    folio.FolioID,
				Settlement: domain.SettlementSettled,
				ClosedBy:   actorID,
				ClosedAt:   now,
			})
			results[i].CheckoutCompleted = true
			results[i].FolioClosed = true
			results[i].Message = "folio settled and closed"
		case projected.LessThan(domain.BalanceEpsilon.Neg()):
			results[i].Message = fmt.Sprintf("overpayment recorded; credit of %s due", projected.Abs().String())
			results[i].RequiresManualReview = true
		default:
			results[i].Message = fmt.Sprintf("partial payment recorded; %s still outstanding", projected.String())
		}
	}

	if len(unit.Postings) > 0 || len(unit.Closes) > 0 {
		refreshed, stored, err := s.txnRepo.SettleFolios(ctx, unit)
		if err != nil {
			logger.Error("Reservation checkout rolled back",
				slog.String("reservation_id", reservationID),
				slog.String("error", err.Error()))
			return nil, err
		}
		for i := range results {
			if folio, ok := refreshed[results[i].FolioID]; ok {
				results[i].OutstandingBalance = folio.Balance
			}
		}
		for j := range stored {
			for i := range results {
				if results[i].FolioID == stored[j].FolioID {
					results[i].PaymentTransaction = &stored[j]
				}
			}
		}
	}

	result := &domain.ReservationCheckoutResult{ReservationID: reservationID, FolioResults: results}
	allClosed := true
	for i := range results {
		if !results[i].FolioClosed {
			allClosed = false
			break
		}
	}

	if allClosed {
		if err := s.hotelSvc.MarkReservationCheckedOut(ctx, reservationID, actorID); err != nil {
			logger.Error("Failed to mark reservation checked out", slog.String("reservation_id", reservationID), slog.String("error", err.Error()))
			return nil, err
		}
		result.ReservationCheckedOut = true
		logger.Info("Reservation checked out",
			slog.String("reservation_id", reservationID),
			slog.Int("folios_closed", len(result.FolioResults)))
	}
	return result, nil
}

// ForceCloseFolio closes a folio regardless of balance. An outstanding
// remainder is written off; a credit remainder is cleared with a correction.
// Either way the offsetting entry carries the authorizing actor's name, so
// the balance invariant still holds on the closed folio.
func (s *settlementService) ForceCloseFolio(ctx context.Context, folioID string, reason string, authorizedBy string) (*domain.CheckoutResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return nil, ErrForceCloseReason
	}

	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		return nil, err
	}
	if folio.Status != domain.FolioStatusOpen {
		return nil, fmt.Errorf("%w: folio %s has status %s", ErrFolioNotOpen, folioID, folio.Status)
	}

	message := "folio force-closed"
	var offset *domain.FolioTransaction
	if folio.HasBalance() {
		req := dto.PostTransactionRequest{
			Amount: folio.Balance.Neg(),
		}
		if folio.Balance.IsPositive() {
			req.Type = string(domain.TransactionAdjustment)
			req.Category = string(domain.CategoryWriteOff)
			req.Description = fmt.Sprintf("Force close write-off: %s", reason)
			message = fmt.Sprintf("folio force-closed; %s written off", folio.Balance.String())
		} else {
			req.Type = string(domain.TransactionCorrection)
			req.Category = string(domain.CategoryOther)
			req.Description = fmt.Sprintf("Force close credit correction: %s", reason)
			message = fmt.Sprintf("folio force-closed; credit of %s cleared by correction", folio.Balance.Abs().String())
		}
		offset, err = s.ledgerSvc.PostTransaction(ctx, folioID, req, authorizedBy)
		if err != nil {
			logger.Error("Failed to post force-close offset", slog.String("folio_id", folioID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	settlement := domain.SettlementSettled
	if folio.TotalPayments.Equal(decimal.Zero) {
		settlement = domain.SettlementUnsettled
	}
	closed, err := s.folioRepo.CloseFolio(ctx, folioID, settlement, authorizedBy, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	logger.Warn("Folio force-closed",
		slog.String("folio_id", folioID),
		slog.String("offset_amount", folio.Balance.String()),
		slog.String("authorized_by", authorizedBy),
		slog.String("reason", reason))
	return &domain.CheckoutResult{
		FolioID:              folioID,
		CheckoutCompleted:    true,
		FolioClosed:          true,
		Message:              message,
		OutstandingBalance:   closed.Balance,
		PaymentTransaction:   offset,
		RequiresManualReview: true,
	}, nil
}
