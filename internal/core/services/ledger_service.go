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
	ErrZeroAmount          = errors.New("transaction amount must not be zero")
	ErrNegativeAmount      = errors.New("transaction amount must be positive for this type")
	ErrCreditLimitExceeded = errors.New("posting would exceed the folio credit limit")
	ErrNotVoidable         = errors.New("transaction cannot be voided")
	ErrNotAPayment         = errors.New("transaction is not a payment")
	ErrRefundExceedsAmount = errors.New("refund exceeds the refundable amount of the original payment")
	ErrSelfTransfer        = errors.New("source and target folio must differ")
	ErrCurrencyMismatch    = errors.New("folio currencies do not match")
	ErrVoidReasonMissing   = errors.New("void reason is required")
)

// ledgerService is the transaction ledger: the single entry point through
// which monetary movements reach a folio. Atomicity (folio lock, number
// allocation, aggregate refresh) lives in the transaction repository; this
// service owns validation and entry construction.
type ledgerService struct {
	txnRepo   portsrepo.TransactionRepositoryFacade
	folioRepo portsrepo.FolioRepositoryFacade
	hotelSvc  portssvc.HotelSvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(txnRepo portsrepo.TransactionRepositoryFacade, folioRepo portsrepo.FolioRepositoryFacade, hotelSvc portssvc.HotelSvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		txnRepo:   txnRepo,
		folioRepo: folioRepo,
		hotelSvc:  hotelSvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// resolveWorkingDate returns the explicit working date when given, otherwise
// the hotel's current business date. Never the wall clock: hotel days span
// midnight.
func (s *ledgerService) resolveWorkingDate(ctx context.Context, hotelID string, explicit *time.Time) (time.Time, error) {
	if explicit != nil {
		return explicit.UTC().Truncate(24 * time.Hour), nil
	}
	return s.hotelSvc.GetCurrentWorkingDate(ctx, hotelID)
}

func (s *ledgerService) validateAmount(txnType domain.TransactionType, amount decimal.Decimal) error {
	if amount.IsZero() {
		return ErrZeroAmount
	}
	switch txnType {
	case domain.TransactionCharge, domain.TransactionTax, domain.TransactionPayment, domain.TransactionRefund:
		if amount.IsNegative() {
			return fmt.Errorf("%w: %s of %s", ErrNegativeAmount, txnType, amount.String())
		}
	}
	// Adjustments and corrections are signed by nature.
	return nil
}

// PostTransaction appends one entry to a folio's ledger.
func (s *ledgerService) PostTransaction(ctx context.Context, folioID string, req dto.PostTransactionRequest, actorID string) (*domain.FolioTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txnType := domain.TransactionType(req.Type)
	if err := s.validateAmount(txnType, req.Amount); err != nil {
		return nil, err
	}

	folio, err := s.folioRepo.FindFolioByID(ctx, folioID)
	if err != nil {
		logger.Warn("Folio not found for posting", slog.String("folio_id", folioID), slog.String("error", err.Error()))
		return nil, err
	}

	workingDate, err := s.resolveWorkingDate(ctx, folio.HotelID, req.WorkingDate)
	if err != nil {
		return nil, err
	}

	txn := s.buildTransaction(folio, txnType, req, workingDate, actorID)

	if txn.IsChargeLike() && folio.CreditLimit.IsPositive() {
		projected := folio.Balance.Add(txn.GrossAmount)
		if projected.GreaterThan(folio.CreditLimit) {
			logger.Warn("Credit limit exceeded",
				slog.String("folio_id", folioID),
				slog.String("projected_balance", projected.String()),
				slog.String("credit_limit", folio.CreditLimit.String()))
			return nil, fmt.Errorf("%w: projected balance %s over limit %s", ErrCreditLimitExceeded, projected.String(), folio.CreditLimit.String())
		}
	}

	_, stored, err := s.txnRepo.PostToFolio(ctx, folioID, []domain.FolioTransaction{txn})
	if err != nil {
		logger.Error("Failed to post transaction", slog.String("folio_id", folioID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", stored[0].TransactionID),
		slog.String("folio_id", folioID),
		slog.String("type", string(stored[0].Type)),
		slog.Int64("transaction_number", stored[0].TransactionNumber),
		slog.String("amount", stored[0].Amount.String()))
	return &stored[0], nil
}

// buildTransaction assembles a posted entry from the request. Payments carry
// their full absolute amount as unassigned until the assignment engine splits
// them.
func (s *ledgerService) buildTransaction(folio *domain.Folio, txnType domain.TransactionType, req dto.PostTransactionRequest, workingDate time.Time, actorID string) domain.FolioTransaction {
	now := time.Now().UTC()
	transactionDate := now
	if req.TransactionDate != nil {
		transactionDate = req.TransactionDate.UTC()
	}

	txn := domain.FolioTransaction{
		TransactionID:       uuid.NewString(),
		FolioID:             folio.FolioID,
		HotelID:             folio.HotelID,
		Type:                txnType,
		Category:            domain.TransactionCategory(req.Category),
		Status:              domain.TxnStatusPosted,
		Amount:              req.Amount,
		TaxAmount:           req.TaxAmount,
		ServiceChargeAmount: req.ServiceChargeAmount,
		DiscountAmount:      req.DiscountAmount,
		CurrencyCode:        folio.CurrencyCode,
		TransactionDate:     transactionDate,
		PostingDate:         now,
		WorkingDate:         workingDate,
		PaymentMethodID:     req.PaymentMethodID,
		ReservationID:       req.ReservationID,
		GuestID:             req.GuestID,
		RoomID:              req.RoomID,
		Description:         req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	switch {
	case txn.IsChargeLike():
		txn.NetAmount, txn.GrossAmount = accounting.ChargeBreakdown(req.Amount, req.TaxAmount, req.ServiceChargeAmount, req.DiscountAmount)
	default:
		txn.NetAmount = req.Amount.Abs()
		txn.GrossAmount = req.Amount.Abs()
	}

	if txnType == domain.TransactionPayment {
		txn.AssignedAmount = decimal.Zero
		txn.UnassignedAmount = req.Amount.Abs()
	}
	if txnType == domain.TransactionRefund {
		txn.IsRefund = true
	}
	return txn
}

// VoidTransaction logically deletes a posted entry. The row survives with its
// void metadata; voiding twice is rejected.
func (s *ledgerService) VoidTransaction(ctx context.Context, transactionID string, reason string, actorID string) (*domain.FolioTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return nil, ErrVoidReasonMissing
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.CanBeVoided() {
		logger.Warn("Void rejected", slog.String("transaction_id", transactionID), slog.Bool("already_voided", txn.IsVoided))
		return nil, fmt.Errorf("%w: transaction %s (status %s, voided=%t)", ErrNotVoidable, transactionID, txn.Status, txn.IsVoided)
	}

	voided, folio, err := s.txnRepo.VoidTransaction(ctx, transactionID, reason, actorID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to void transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction voided",
		slog.String("transaction_id", transactionID),
		slog.String("folio_id", voided.FolioID),
		slog.String("new_balance", folio.Balance.String()),
		slog.String("voided_by", actorID))
	return voided, nil
}

// PostRefund posts a refund entry against an earlier payment. The original
// row is untouched; the refund is a new entry referencing it.
func (s *ledgerService) PostRefund(ctx context.Context, originalTransactionID string, amount decimal.Decimal, reason string, actorID string) (*domain.FolioTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.IsZero() || amount.IsNegative() {
		return nil, fmt.Errorf("%w: refund of %s", ErrNegativeAmount, amount.String())
	}

	original, err := s.txnRepo.FindTransactionByID(ctx, originalTransactionID)
	if err != nil {
		return nil, err
	}
	if original.Type != domain.TransactionPayment {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotAPayment, originalTransactionID, original.Type)
	}
	if original.IsVoided {
		return nil, fmt.Errorf("%w: original payment %s is voided", ErrNotVoidable, originalTransactionID)
	}
	if amount.GreaterThan(original.Amount.Abs()) {
		return nil, fmt.Errorf("%w: %s against payment of %s", ErrRefundExceedsAmount, amount.String(), original.Amount.Abs().String())
	}

	folio, err := s.folioRepo.FindFolioByID(ctx, original.FolioID)
	if err != nil {
		return nil, err
	}
	workingDate, err := s.resolveWorkingDate(ctx, folio.HotelID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	refund := domain.FolioTransaction{
		TransactionID:   uuid.NewString(),
		FolioID:         original.FolioID,
		HotelID:         original.HotelID,
		Type:            domain.TransactionRefund,
		Category:        domain.CategoryPayment,
		Status:          domain.TxnStatusPosted,
		Amount:          amount,
		NetAmount:       amount,
		GrossAmount:     amount,
		CurrencyCode:    original.CurrencyCode,
		IsRefund:        true,
		CorrectionOf:    &original.TransactionID,
		TransactionDate: now,
		PostingDate:     now,
		WorkingDate:     workingDate,
		PaymentMethodID: original.PaymentMethodID,
		ReservationID:   original.ReservationID,
		GuestID:         original.GuestID,
		Description:     reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	_, stored, err := s.txnRepo.PostToFolio(ctx, original.FolioID, []domain.FolioTransaction{refund})
	if err != nil {
		logger.Error("Failed to post refund", slog.String("original_transaction_id", originalTransactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Refund posted",
		slog.String("transaction_id", stored[0].TransactionID),
		slog.String("original_transaction_id", originalTransactionID),
		slog.String("amount", amount.String()))
	return &stored[0], nil
}

// PostCorrection posts a correction entry carrying the signed difference
// between the corrected amount and the original. The original stays in the
// ledger untouched; the pair nets out to the corrected figure.
func (s *ledgerService) PostCorrection(ctx context.Context, originalTransactionID string, correctedAmount decimal.Decimal, reason string, actorID string) (*domain.FolioTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.txnRepo.FindTransactionByID(ctx, originalTransactionID)
	if err != nil {
		return nil, err
	}
	if original.IsVoided {
		return nil, fmt.Errorf("%w: original transaction %s is voided", ErrNotVoidable, originalTransactionID)
	}

	delta := correctedAmount.Sub(original.Amount)
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: corrected amount equals the original", ErrZeroAmount)
	}

	folio, err := s.folioRepo.FindFolioByID(ctx, original.FolioID)
	if err != nil {
		return nil, err
	}
	workingDate, err := s.resolveWorkingDate(ctx, folio.HotelID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	correction := domain.FolioTransaction{
		TransactionID:   uuid.NewString(),
		FolioID:         original.FolioID,
		HotelID:         original.HotelID,
		Type:            domain.TransactionCorrection,
		Category:        original.Category,
		Status:          domain.TxnStatusPosted,
		Amount:          delta,
		NetAmount:       delta.Abs(),
		GrossAmount:     delta.Abs(),
		CurrencyCode:    original.CurrencyCode,
		CorrectionOf:    &original.TransactionID,
		TransactionDate: now,
		PostingDate:     now,
		WorkingDate:     workingDate,
		ReservationID:   original.ReservationID,
		GuestID:         original.GuestID,
		RoomID:          original.RoomID,
		Description:     reason,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	_, stored, err := s.txnRepo.PostToFolio(ctx, original.FolioID, []domain.FolioTransaction{correction})
	if err != nil {
		logger.Error("Failed to post correction", slog.String("original_transaction_id", originalTransactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Correction posted",
		slog.String("transaction_id", stored[0].TransactionID),
		slog.String("original_transaction_id", originalTransactionID),
		slog.String("delta", delta.String()))
	return &stored[0], nil
}

// TransferAmount moves an amount between folios as a signed transfer pair:
// negative on the source, positive on the target, posted in one unit of work.
func (s *ledgerService) TransferAmount(ctx context.Context, sourceFolioID, targetFolioID string, amount decimal.Decimal, notes string, actorID string) ([]domain.FolioTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.IsZero() || amount.IsNegative() {
		return nil, fmt.Errorf("%w: transfer of %s", ErrNegativeAmount, amount.String())
	}
	if sourceFolioID == targetFolioID {
		return nil, ErrSelfTransfer
	}

	source, err := s.folioRepo.FindFolioByID(ctx, sourceFolioID)
	if err != nil {
		return nil, err
	}
	target, err := s.folioRepo.FindFolioByID(ctx, targetFolioID)
	if err != nil {
		return nil, err
	}
	if source.CurrencyCode != target.CurrencyCode {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, source.CurrencyCode, target.CurrencyCode)
	}
	if amount.GreaterThan(source.Balance) {
		return nil, fmt.Errorf("%w: transfer of %s exceeds source folio balance of %s",
			apperrors.ErrInsufficientBalance, amount.String(), source.Balance.String())
	}

	workingDate, err := s.resolveWorkingDate(ctx, source.HotelID, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	outTxn := domain.FolioTransaction{
		TransactionID:   uuid.NewString(),
		FolioID:         sourceFolioID,
		HotelID:         source.HotelID,
		Type:            domain.TransactionTransfer,
		Category:        domain.CategoryOther,
		Status:          domain.TxnStatusPosted,
		Amount:          amount.Neg(),
		NetAmount:       amount,
		GrossAmount:     amount,
		CurrencyCode:    source.CurrencyCode,
		TransferFolioID: &targetFolioID,
		TransactionDate: now,
		PostingDate:     now,
		WorkingDate:     workingDate,
		Description:     notes,
		AuditFields:     audit,
	}
	inTxn := domain.FolioTransaction{
		TransactionID:   uuid.NewString(),
		FolioID:         targetFolioID,
		HotelID:         target.HotelID,
		Type:            domain.TransactionTransfer,
		Category:        domain.CategoryOther,
		Status:          domain.TxnStatusPosted,
		Amount:          amount,
		NetAmount:       amount,
		GrossAmount:     amount,
		CurrencyCode:    target.CurrencyCode,
		TransferFolioID: &sourceFolioID,
		TransactionDate: now,
		PostingDate:     now,
		WorkingDate:     workingDate,
		Description:     notes,
		AuditFields:     audit,
	}

	postings := []portsrepo.FolioPosting{
		{FolioID: sourceFolioID, Transactions: []domain.FolioTransaction{outTxn}},
		{FolioID: targetFolioID, Transactions: []domain.FolioTransaction{inTxn}},
	}
	if _, err := s.txnRepo.PostAcrossFolios(ctx, postings); err != nil {
		logger.Error("Failed to post transfer pair",
			slog.String("source_folio_id", sourceFolioID),
			slog.String("target_folio_id", targetFolioID),
			slog.String("error", err.Error()))
		return nil, err
	}

	// Re-read to pick up the allocated transaction numbers.
	storedOut, err := s.txnRepo.FindTransactionByID(ctx, outTxn.TransactionID)
	if err != nil {
		return nil, err
	}
	storedIn, err := s.txnRepo.FindTransactionByID(ctx, inTxn.TransactionID)
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer posted",
		slog.String("source_folio_id", sourceFolioID),
		slog.String("target_folio_id", targetFolioID),
		slog.String("amount", amount.String()))
	return []domain.FolioTransaction{*storedOut, *storedIn}, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*domain.FolioTransaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

func (s *ledgerService) ListFolioTransactions(ctx context.Context, folioID string) ([]domain.FolioTransaction, error) {
	if _, err := s.folioRepo.FindFolioByID(ctx, folioID); err != nil {
		return nil, err
	}
	return s.txnRepo.FindTransactionsByFolioID(ctx, folioID)
}
