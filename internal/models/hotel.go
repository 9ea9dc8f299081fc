package models

import "time"

// Hotel is the database row shape for a hotel's ledger-relevant state.
type Hotel struct {
	HotelID            string    `json:"hotelID"`
	Name               string    `json:"name"`
	CurrencyCode       string    `json:"currencyCode"`
	CurrentWorkingDate time.Time `json:"currentWorkingDate"`
	IsActive           bool      `json:"isActive"`
	AuditFields
}

// PaymentMethod is the database row shape for a payment method.
type PaymentMethod struct {
	PaymentMethodID string  `json:"paymentMethodID"`
	HotelID         string  `json:"hotelID"`
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	CompanyID       *string `json:"companyID"`
	IsActive        bool    `json:"isActive"`
	AuditFields
}

// Reservation is the database row shape for the stay context the ledger reads.
type Reservation struct {
	ReservationID string    `json:"reservationID"`
	HotelID       string    `json:"hotelID"`
	GuestID       string    `json:"guestID"`
	RoomID        *string   `json:"roomID"`
	RoomType      string    `json:"roomType"`
	CheckInDate   time.Time `json:"checkInDate"`
	CheckOutDate  time.Time `json:"checkOutDate"`
	Status        string    `json:"status"`
	AuditFields
}
