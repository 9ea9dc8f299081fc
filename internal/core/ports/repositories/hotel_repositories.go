package repositories

import (
	"context"
	"time"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// HotelRepositoryFacade defines persistence for hotel-level ledger state.
type HotelRepositoryFacade interface {
	SaveHotel(ctx context.Context, hotel domain.Hotel) error
	FindHotelByID(ctx context.Context, hotelID string) (*domain.Hotel, error)
	// AdvanceWorkingDate moves the hotel's business date forward; the night
	// audit calls this after the day-close rollup succeeds.
	AdvanceWorkingDate(ctx context.Context, hotelID string, newDate time.Time, actorID string, at time.Time) error
}

// PaymentMethodRepositoryFacade defines persistence for the payment method registry.
type PaymentMethodRepositoryFacade interface {
	SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error
	FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)
	ListPaymentMethodsByHotel(ctx context.Context, hotelID string) ([]domain.PaymentMethod, error)
}

// ReservationRepositoryFacade defines persistence for the stay context the
// ledger consumes.
type ReservationRepositoryFacade interface {
	SaveReservation(ctx context.Context, reservation domain.Reservation) error
	FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)
	MarkCheckedOut(ctx context.Context, reservationID string, actorID string, at time.Time) error
}
