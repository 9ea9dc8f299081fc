package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Folio is the database row shape for a folio.
type Folio struct {
	FolioID       string  `json:"folioID"`
	HotelID       string  `json:"hotelID"`
	FolioNumber   string  `json:"folioNumber"`
	FolioType     string  `json:"folioType"`
	Status        string  `json:"status"`
	Settlement    string  `json:"settlementStatus"`
	Workflow      string  `json:"workflowStatus"`
	GuestID       *string `json:"guestID"`
	CompanyID     *string `json:"companyID"`
	GroupID       *string `json:"groupID"`
	ReservationID *string `json:"reservationID"`

	TotalCharges        decimal.Decimal `json:"totalCharges"`
	TotalPayments       decimal.Decimal `json:"totalPayments"`
	TotalAdjustments    decimal.Decimal `json:"totalAdjustments"`
	TotalTaxes          decimal.Decimal `json:"totalTaxes"`
	TotalServiceCharges decimal.Decimal `json:"totalServiceCharges"`
	TotalDiscounts      decimal.Decimal `json:"totalDiscounts"`
	Balance             decimal.Decimal `json:"balance"`

	CreditLimit  decimal.Decimal `json:"creditLimit"`
	CurrencyCode string          `json:"currencyCode"`

	OpenedAt time.Time  `json:"openedAt"`
	ClosedAt *time.Time `json:"closedAt"`
	ClosedBy *string    `json:"closedBy"`
	AuditFields
}
