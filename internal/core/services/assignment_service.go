package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/dto"
	"github.com/stayfolio/pms_backend/internal/middleware"
)

var (
	ErrAssignmentNegative = errors.New("assigned amount must not be negative")
	ErrAssignmentExceeds  = errors.New("assigned amount exceeds the payment amount")
	ErrPaymentVoided      = errors.New("voided payments cannot be assigned")
)

// assignmentService splits company payments across outstanding charges and
// keeps the append-only assignment audit trail. The invariant at every step:
// assigned + unassigned equals the payment's absolute amount.
type assignmentService struct {
	txnRepo portsrepo.TransactionRepositoryFacade
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.AssignmentSvcFacade {
	return &assignmentService{txnRepo: txnRepo}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

// validateAssignmentChange checks one payment against a requested assigned
// amount. Shared by the single and bulk paths so both reject the same way.
func validateAssignmentChange(txn *domain.FolioTransaction, newAssignedAmount decimal.Decimal) error {
	if newAssignedAmount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrAssignmentNegative, newAssignedAmount.String())
	}
	if txn.Type != domain.TransactionPayment {
		return fmt.Errorf("%w: %s is a %s", ErrNotAPayment, txn.TransactionID, txn.Type)
	}
	if txn.IsVoided {
		return fmt.Errorf("%w: %s", ErrPaymentVoided, txn.TransactionID)
	}
	if newAssignedAmount.GreaterThan(txn.Amount.Abs()) {
		return fmt.Errorf("%w: %s against payment of %s", ErrAssignmentExceeds, newAssignedAmount.String(), txn.Amount.Abs().String())
	}
	return nil
}

// AssignPayment sets a payment's assigned amount. The unassigned remainder is
// derived, never stored independently, so the invariant cannot drift.
func (s *assignmentService) AssignPayment(ctx context.Context, transactionID string, newAssignedAmount decimal.Decimal, notes string, actorID string) (*domain.FolioTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if newAssignedAmount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrAssignmentNegative, newAssignedAmount.String())
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := validateAssignmentChange(txn, newAssignedAmount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.AssignmentEntry{
		Timestamp:      now,
		ActorID:        actorID,
		PreviousAmount: txn.AssignedAmount,
		NewAmount:      newAssignedAmount,
		Notes:          notes,
	}
	unassigned := txn.Amount.Abs().Sub(newAssignedAmount)

	updated, err := s.txnRepo.UpdateAssignment(ctx, transactionID, newAssignedAmount, unassigned, entry, actorID, now)
	if err != nil {
		logger.Error("Failed to update assignment", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment assignment updated",
		slog.String("transaction_id", transactionID),
		slog.String("previous_assigned", entry.PreviousAmount.String()),
		slog.String("new_assigned", newAssignedAmount.String()),
		slog.String("actor_id", actorID))
	return updated, nil
}

// BulkAssign applies several assignment changes as one unit of work, the way
// one company remittance is reconciled against multiple invoices. Every
// mapping is validated before anything is written; the repository then
// commits all updates together, so a failing mapping leaves no assignment
// changed.
func (s *assignmentService) BulkAssign(ctx context.Context, mappings []dto.AssignmentMapping, actorID string) ([]domain.FolioTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(mappings) == 0 {
		return nil, fmt.Errorf("%w: no assignment mappings", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	updates := make([]portsrepo.AssignmentUpdate, 0, len(mappings))
	for i := range mappings {
		m := &mappings[i]
		txn, err := s.txnRepo.FindTransactionByID(ctx, m.TransactionID)
		if err == nil {
			err = validateAssignmentChange(txn, m.AssignedAmount)
		}
		if err != nil {
			logger.Warn("Bulk assignment rejected, nothing applied",
				slog.String("failed_transaction_id", m.TransactionID),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("assignment %d of %d rejected for transaction %s: %w", i+1, len(mappings), m.TransactionID, err)
		}
		updates = append(updates, portsrepo.AssignmentUpdate{
			TransactionID: m.TransactionID,
			Assigned:      m.AssignedAmount,
			Unassigned:    txn.Amount.Abs().Sub(m.AssignedAmount),
			Entry: domain.AssignmentEntry{
				Timestamp:      now,
				ActorID:        actorID,
				PreviousAmount: txn.AssignedAmount,
				NewAmount:      m.AssignedAmount,
				Notes:          m.Notes,
			},
		})
	}

	applied, err := s.txnRepo.UpdateAssignments(ctx, updates, actorID, now)
	if err != nil {
		logger.Error("Bulk assignment rolled back", slog.Int("count", len(updates)), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Bulk assignment applied", slog.Int("count", len(applied)))
	return applied, nil
}

// GetUnassignedPaymentAmount totals a company's unapplied city-ledger
// payments. Voided payments are excluded by the repository query.
func (s *assignmentService) GetUnassignedPaymentAmount(ctx context.Context, companyID, hotelID string) (decimal.Decimal, error) {
	return s.txnRepo.SumUnassignedByCompany(ctx, hotelID, companyID)
}
