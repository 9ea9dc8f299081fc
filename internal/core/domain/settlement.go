package domain

import "github.com/shopspring/decimal"

// SettlementSummary is the aggregator's answer to "can this folio close".
type SettlementSummary struct {
	FolioID            string          `json:"folioID"`
	TotalCharges       decimal.Decimal `json:"totalCharges"`
	TotalPayments      decimal.Decimal `json:"totalPayments"`
	TotalAdjustments   decimal.Decimal `json:"totalAdjustments"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	IsFullySettled     bool            `json:"isFullySettled"`
	RequiresPayment    bool            `json:"requiresPayment"`
}

// CheckoutResult reports what a checkout attempt did to one folio.
type CheckoutResult struct {
	FolioID              string            `json:"folioID"`
	CheckoutCompleted    bool              `json:"checkoutCompleted"`
	FolioClosed          bool              `json:"folioClosed"`
	Message              string            `json:"message"`
	OutstandingBalance   decimal.Decimal   `json:"outstandingBalance"`
	PaymentTransaction   *FolioTransaction `json:"paymentTransaction,omitempty"`
	RequiresManualReview bool              `json:"requiresManualReview"`
}

// ReservationCheckoutResult aggregates per-folio results for a reservation
// level checkout.
type ReservationCheckoutResult struct {
	ReservationID        string           `json:"reservationID"`
	ReservationCheckedOut bool            `json:"reservationCheckedOut"`
	FolioResults         []CheckoutResult `json:"folioResults"`
}
