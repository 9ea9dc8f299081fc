package services

import (
	"context"
	"time"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// HotelSvcFacade exposes the external collaborator surfaces the ledger
// depends on: the business-date provider, the payment method registry, and
// the reservation context.
type HotelSvcFacade interface {
	GetCurrentWorkingDate(ctx context.Context, hotelID string) (time.Time, error)
	GetHotel(ctx context.Context, hotelID string) (*domain.Hotel, error)
	AdvanceWorkingDate(ctx context.Context, hotelID string, actorID string) (time.Time, error)
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)
	GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error)
	MarkReservationCheckedOut(ctx context.Context, reservationID string, actorID string) error
}
