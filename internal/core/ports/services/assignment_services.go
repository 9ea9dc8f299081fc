package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/dto"
)

// AssignmentSvcFacade splits company payments across outstanding charges and
// keeps the assignment audit trail.
type AssignmentSvcFacade interface {
	AssignPayment(ctx context.Context, transactionID string, newAssignedAmount decimal.Decimal, notes string, actorID string) (*domain.FolioTransaction, error)
	BulkAssign(ctx context.Context, mappings []dto.AssignmentMapping, actorID string) ([]domain.FolioTransaction, error)
	GetUnassignedPaymentAmount(ctx context.Context, companyID, hotelID string) (decimal.Decimal, error)
}
