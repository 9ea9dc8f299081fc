package dto

import (
	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// CheckoutRequest settles one folio at checkout. PaymentAmount may be omitted
// when the folio is already settled (or carries a credit).
type CheckoutRequest struct {
	PaymentMethodID string           `json:"paymentMethodID" binding:"required"`
	PaymentAmount   *decimal.Decimal `json:"paymentAmount,omitempty"`
}

// ReservationCheckoutRequest settles every open folio of a reservation.
// Payments pair with folios by index; the first entry is reused when the list
// is shorter than the folio count.
type ReservationCheckoutRequest struct {
	Payments []CheckoutRequest `json:"payments" binding:"required,min=1,dive"`
}

// ForceCloseRequest closes a folio regardless of balance, writing the
// difference off under the authorizing actor's name.
type ForceCloseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CheckoutResultResponse reports the outcome for one folio.
type CheckoutResultResponse struct {
	FolioID              string               `json:"folioID"`
	CheckoutCompleted    bool                 `json:"checkoutCompleted"`
	FolioClosed          bool                 `json:"folioClosed"`
	Message              string               `json:"message"`
	OutstandingBalance   decimal.Decimal      `json:"outstandingBalance"`
	Payment              *TransactionResponse `json:"payment,omitempty"`
	RequiresManualReview bool                 `json:"requiresManualReview"`
}

// ToCheckoutResultResponse converts a domain checkout result to its DTO.
func ToCheckoutResultResponse(r *domain.CheckoutResult) CheckoutResultResponse {
	resp := CheckoutResultResponse{
		FolioID:              r.FolioID,
		CheckoutCompleted:    r.CheckoutCompleted,
		FolioClosed:          r.FolioClosed,
		Message:              r.Message,
		OutstandingBalance:   r.OutstandingBalance,
		RequiresManualReview: r.RequiresManualReview,
	}
	if r.PaymentTransaction != nil {
		p := ToTransactionResponse(r.PaymentTransaction)
		resp.Payment = &p
	}
	return resp
}

// ReservationCheckoutResponse aggregates folio outcomes for a reservation.
type ReservationCheckoutResponse struct {
	ReservationID         string                   `json:"reservationID"`
	ReservationCheckedOut bool                     `json:"reservationCheckedOut"`
	FolioResults          []CheckoutResultResponse `json:"folioResults"`
}

// EligibilityResponse lists every reason blocking a folio's checkout, so the
// caller can surface all of them at once.
type EligibilityResponse struct {
	FolioID  string   `json:"folioID"`
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}
