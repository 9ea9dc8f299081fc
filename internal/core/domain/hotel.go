package domain

import "time"

// Hotel carries the property-wide state the ledger engine depends on, most
// importantly the current business date. The business date is advanced by the
// night-audit process, not by the wall clock.
type Hotel struct {
	HotelID            string    `json:"hotelID"`
	Name               string    `json:"name"`
	CurrencyCode       string    `json:"currencyCode"`
	CurrentWorkingDate time.Time `json:"currentWorkingDate"`
	IsActive           bool      `json:"isActive"`
	AuditFields
}

// PaymentMethodKind classifies how a payment settles.
type PaymentMethodKind string

const (
	PaymentMethodCash         PaymentMethodKind = "CASH"
	PaymentMethodCard         PaymentMethodKind = "CARD"
	PaymentMethodBankTransfer PaymentMethodKind = "BANK_TRANSFER"
	PaymentMethodCityLedger   PaymentMethodKind = "CITY_LEDGER"
)

// PaymentMethod is registry metadata used to classify payments for the City
// Ledger rollup and company payment assignment.
type PaymentMethod struct {
	PaymentMethodID string            `json:"paymentMethodID"`
	HotelID         string            `json:"hotelID"`
	Name            string            `json:"name"`
	Kind            PaymentMethodKind `json:"kind"`
	CompanyID       *string           `json:"companyID,omitempty"` // set for city-ledger methods
	IsActive        bool              `json:"isActive"`
	AuditFields
}

// IsCityLedger reports whether payments via this method move debt to the
// accounts-receivable ledger instead of settling in cash.
func (m *PaymentMethod) IsCityLedger() bool {
	return m.Kind == PaymentMethodCityLedger
}

// ReservationStatus is the stay lifecycle as seen by the ledger engine.
type ReservationStatus string

const (
	ReservationReserved   ReservationStatus = "RESERVED"
	ReservationInHouse    ReservationStatus = "IN_HOUSE"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationCancelled  ReservationStatus = "CANCELLED"
)

// Reservation is the slice of stay context the ledger needs: check-in/out
// dates for the advance-deposit ledger, and status for checkout eligibility.
type Reservation struct {
	ReservationID string            `json:"reservationID"`
	HotelID       string            `json:"hotelID"`
	GuestID       string            `json:"guestID"`
	RoomID        *string           `json:"roomID,omitempty"`
	RoomType      string            `json:"roomType"`
	CheckInDate   time.Time         `json:"checkInDate"`
	CheckOutDate  time.Time         `json:"checkOutDate"`
	Status        ReservationStatus `json:"status"`
	AuditFields
}

// PaymasterRoomType marks virtual rooms used for group billing; deposits on
// paymaster reservations stay out of the advance-deposit ledger.
const PaymasterRoomType = "PAYMASTER"
