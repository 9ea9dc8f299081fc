package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignmentEntry is the stored form of one assignment-history record; the
// history column is a JSONB array that is only ever appended to.
type AssignmentEntry struct {
	Timestamp      time.Time       `json:"timestamp"`
	ActorID        string          `json:"actorID"`
	PreviousAmount decimal.Decimal `json:"previousAmount"`
	NewAmount      decimal.Decimal `json:"newAmount"`
	Notes          string          `json:"notes,omitempty"`
}

// FolioTransaction is the database row shape for a ledger entry.
type FolioTransaction struct {
	TransactionID     string `json:"transactionID"`
	FolioID           string `json:"folioID"`
	HotelID           string `json:"hotelID"`
	TransactionNumber int64  `json:"transactionNumber"`
	Type              string `json:"type"`
	Category          string `json:"category"`
	Status            string `json:"status"`

	Amount              decimal.Decimal `json:"amount"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	ServiceChargeAmount decimal.Decimal `json:"serviceChargeAmount"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	NetAmount           decimal.Decimal `json:"netAmount"`
	GrossAmount         decimal.Decimal `json:"grossAmount"`
	CurrencyCode        string          `json:"currencyCode"`

	IsVoided   bool       `json:"isVoided"`
	VoidedAt   *time.Time `json:"voidedAt"`
	VoidedBy   *string    `json:"voidedBy"`
	VoidReason string     `json:"voidReason"`

	IsRefund        bool    `json:"isRefund"`
	CorrectionOf    *string `json:"correctionOf"`
	TransferFolioID *string `json:"transferFolioID"`

	AssignedAmount    decimal.Decimal   `json:"assignedAmount"`
	UnassignedAmount  decimal.Decimal   `json:"unassignedAmount"`
	AssignmentHistory []AssignmentEntry `json:"assignmentHistory"`

	TransactionDate time.Time `json:"transactionDate"`
	PostingDate     time.Time `json:"postingDate"`
	WorkingDate     time.Time `json:"workingDate"`

	PaymentMethodID *string `json:"paymentMethodID"`
	ReservationID   *string `json:"reservationID"`
	GuestID         *string `json:"guestID"`
	RoomID          *string `json:"roomID"`
	Description     string  `json:"description"`
	AuditFields
}
