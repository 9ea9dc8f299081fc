package services

import (
	"context"

	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/dto"
)

// SettlementSvcFacade drives checkout settlement and folio closing.
type SettlementSvcFacade interface {
	ProcessCheckout(ctx context.Context, folioID string, req dto.CheckoutRequest, actorID string) (*domain.CheckoutResult, error)
	ProcessReservationCheckout(ctx context.Context, reservationID string, payments []dto.CheckoutRequest, actorID string) (*domain.ReservationCheckoutResult, error)
	ForceCloseFolio(ctx context.Context, folioID string, reason string, authorizedBy string) (*domain.CheckoutResult, error)
	// ValidateCheckoutEligibility returns all blocking reasons at once instead
	// of failing on the first.
	ValidateCheckoutEligibility(ctx context.Context, folioID string) ([]string, error)
}
