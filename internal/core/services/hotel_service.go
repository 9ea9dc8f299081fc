package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/middleware"
)

// hotelService exposes the hotel-level context the ledger engine consumes:
// business dates, payment methods, and reservations.
type hotelService struct {
	hotelRepo         portsrepo.HotelRepositoryFacade
	paymentMethodRepo portsrepo.PaymentMethodRepositoryFacade
	reservationRepo   portsrepo.ReservationRepositoryFacade
}

// NewHotelService creates a new HotelService.
func NewHotelService(hotelRepo portsrepo.HotelRepositoryFacade, paymentMethodRepo portsrepo.PaymentMethodRepositoryFacade, reservationRepo portsrepo.ReservationRepositoryFacade) portssvc.HotelSvcFacade {
	return &hotelService{
		hotelRepo:         hotelRepo,
		paymentMethodRepo: paymentMethodRepo,
		reservationRepo:   reservationRepo,
	}
}

var _ portssvc.HotelSvcFacade = (*hotelService)(nil)

// GetCurrentWorkingDate returns the hotel's business date. Postings default
// their working date to this value, never to the wall clock.
func (s *hotelService) GetCurrentWorkingDate(ctx context.Context, hotelID string) (time.Time, error) {
	hotel, err := s.hotelRepo.FindHotelByID(ctx, hotelID)
	if err != nil {
		return time.Time{}, err
	}
	return hotel.CurrentWorkingDate, nil
}

func (s *hotelService) GetHotel(ctx context.Context, hotelID string) (*domain.Hotel, error) {
	return s.hotelRepo.FindHotelByID(ctx, hotelID)
}

// AdvanceWorkingDate rolls the business date to the next calendar day. The
// night audit calls this after the day-close snapshots are written.
func (s *hotelService) AdvanceWorkingDate(ctx context.Context, hotelID string, actorID string) (time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hotel, err := s.hotelRepo.FindHotelByID(ctx, hotelID)
	if err != nil {
		return time.Time{}, err
	}

	newDate := hotel.CurrentWorkingDate.AddDate(0, 0, 1)
	now := time.Now().UTC()
	if err := s.hotelRepo.AdvanceWorkingDate(ctx, hotelID, newDate, actorID, now); err != nil {
		logger.Error("Failed to advance working date", slog.String("hotel_id", hotelID), slog.String("error", err.Error()))
		return time.Time{}, err
	}

	logger.Info("Working date advanced",
		slog.String("hotel_id", hotelID),
		slog.Time("new_working_date", newDate),
		slog.String("advanced_by", actorID))
	return newDate, nil
}

func (s *hotelService) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	return s.paymentMethodRepo.FindPaymentMethodByID(ctx, paymentMethodID)
}

func (s *hotelService) GetReservation(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	return s.reservationRepo.FindReservationByID(ctx, reservationID)
}

func (s *hotelService) MarkReservationCheckedOut(ctx context.Context, reservationID string, actorID string) error {
	return s.reservationRepo.MarkCheckedOut(ctx, reservationID, actorID, time.Now().UTC())
}
