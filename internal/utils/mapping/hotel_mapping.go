package mapping

import (
	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/models"
)

// ToModelHotel converts a domain Hotel to its row shape.
func ToModelHotel(d domain.Hotel) models.Hotel {
	return models.Hotel{
		HotelID:            d.HotelID,
		Name:               d.Name,
		CurrencyCode:       d.CurrencyCode,
		CurrentWorkingDate: d.CurrentWorkingDate,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHotel converts a database row to a domain Hotel.
func ToDomainHotel(m models.Hotel) domain.Hotel {
	return domain.Hotel{
		HotelID:            m.HotelID,
		Name:               m.Name,
		CurrencyCode:       m.CurrencyCode,
		CurrentWorkingDate: m.CurrentWorkingDate,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPaymentMethod converts a domain PaymentMethod to its row shape.
func ToModelPaymentMethod(d domain.PaymentMethod) models.PaymentMethod {
	return models.PaymentMethod{
		PaymentMethodID: d.PaymentMethodID,
		HotelID:         d.HotelID,
		Name:            d.Name,
		Kind:            string(d.Kind),
		CompanyID:       d.CompanyID,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentMethod converts a database row to a domain PaymentMethod.
func ToDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		PaymentMethodID: m.PaymentMethodID,
		HotelID:         m.HotelID,
		Name:            m.Name,
		Kind:            domain.PaymentMethodKind(m.Kind),
		CompanyID:       m.CompanyID,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReservation converts a domain Reservation to its row shape.
func ToModelReservation(d domain.Reservation) models.Reservation {
	return models.Reservation{
		ReservationID: d.ReservationID,
		HotelID:       d.HotelID,
		GuestID:       d.GuestID,
		RoomID:        d.RoomID,
		RoomType:      d.RoomType,
		CheckInDate:   d.CheckInDate,
		CheckOutDate:  d.CheckOutDate,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReservation converts a database row to a domain Reservation.
func ToDomainReservation(m models.Reservation) domain.Reservation {
	return domain.Reservation{
		ReservationID: m.ReservationID,
		HotelID:       m.HotelID,
		GuestID:       m.GuestID,
		RoomID:        m.RoomID,
		RoomType:      m.RoomType,
		CheckInDate:   m.CheckInDate,
		CheckOutDate:  m.CheckOutDate,
		Status:        domain.ReservationStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
