package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of monetary movement kinds a folio records.
type TransactionType string

const (
	TransactionCharge     TransactionType = "CHARGE"
	TransactionPayment    TransactionType = "PAYMENT"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
	TransactionTax        TransactionType = "TAX"
	TransactionRefund     TransactionType = "REFUND"
	TransactionTransfer   TransactionType = "TRANSFER"
	TransactionVoid       TransactionType = "VOID"
	TransactionCorrection TransactionType = "CORRECTION"
)

// TransactionCategory attributes a movement to a revenue or payment bucket.
type TransactionCategory string

const (
	CategoryRoom         TransactionCategory = "ROOM"
	CategoryFoodBeverage TransactionCategory = "FOOD_BEVERAGE"
	CategorySpa          TransactionCategory = "SPA"
	CategoryMinibar      TransactionCategory = "MINIBAR"
	CategoryLaundry      TransactionCategory = "LAUNDRY"
	CategoryPayment      TransactionCategory = "PAYMENT"
	CategoryCommission   TransactionCategory = "COMMISSION"
	CategoryWriteOff     TransactionCategory = "WRITE_OFF"
	CategoryOther        TransactionCategory = "OTHER"
)

// TransactionStatus is the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	TxnStatusPending     TransactionStatus = "PENDING"
	TxnStatusPosted      TransactionStatus = "POSTED"
	TxnStatusVoided      TransactionStatus = "VOIDED"
	TxnStatusTransferred TransactionStatus = "TRANSFERRED"
	TxnStatusDisputed    TransactionStatus = "DISPUTED"
	TxnStatusRefunded    TransactionStatus = "REFUNDED"
	TxnStatusWriteOff    TransactionStatus = "WRITE_OFF"
)

// AssignmentEntry is one change to a payment's assigned amount. The history is
// append-only; it is the audit trail used when a company disputes an invoice.
type AssignmentEntry struct {
	Timestamp      time.Time       `json:"timestamp"`
	ActorID        string          `json:"actorID"`
	PreviousAmount decimal.Decimal `json:"previousAmount"`
	NewAmount      decimal.Decimal `json:"newAmount"`
	Notes          string          `json:"notes,omitempty"`
}

// FolioTransaction is a single ledger entry owned by exactly one folio.
// Once posted, amount and type are immutable: corrections and refunds are new
// entries referencing the original, and voiding is a logical flag, never a
// physical delete.
type FolioTransaction struct {
	TransactionID     string              `json:"transactionID"` // Primary Key (UUID)
	FolioID           string              `json:"folioID"`
	HotelID           string              `json:"hotelID"`
	TransactionNumber int64               `json:"transactionNumber"` // monotonic per hotel, never reused
	Type              TransactionType     `json:"type"`
	Category          TransactionCategory `json:"category"`
	Status            TransactionStatus   `json:"status"`

	// Amount is signed in the folio's currency: charges positive, transfer-out
	// negative, payments stored positive and subtracted by the aggregator.
	Amount              decimal.Decimal `json:"amount"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	ServiceChargeAmount decimal.Decimal `json:"serviceChargeAmount"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	NetAmount           decimal.Decimal `json:"netAmount"`
	GrossAmount         decimal.Decimal `json:"grossAmount"`
	CurrencyCode        string          `json:"currencyCode"`

	IsVoided   bool       `json:"isVoided"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"`
	VoidedBy   *string    `json:"voidedBy,omitempty"`
	VoidReason string     `json:"voidReason,omitempty"`

	IsRefund        bool    `json:"isRefund"`
	CorrectionOf    *string `json:"correctionOf,omitempty"`    // original transaction superseded by this one
	TransferFolioID *string `json:"transferFolioID,omitempty"` // counterpart folio of a transfer pair

	// Payment assignment fields; invariant: assigned + unassigned == abs(amount).
	AssignedAmount    decimal.Decimal   `json:"assignedAmount"`
	UnassignedAmount  decimal.Decimal   `json:"unassignedAmount"`
	AssignmentHistory []AssignmentEntry `json:"assignmentHistory,omitempty"`

	TransactionDate time.Time `json:"transactionDate"`
	PostingDate     time.Time `json:"postingDate"`
	// WorkingDate is the hotel's business date at creation time. Hotel days can
	// span midnight, so this is distinct from the wall-clock posting date.
	WorkingDate time.Time `json:"workingDate"`

	PaymentMethodID *string `json:"paymentMethodID,omitempty"`
	ReservationID   *string `json:"reservationID,omitempty"`
	GuestID         *string `json:"guestID,omitempty"`
	RoomID          *string `json:"roomID,omitempty"`
	Description     string  `json:"description,omitempty"`
	AuditFields
}

// IsChargeLike reports whether the entry contributes to totalCharges.
// Standalone tax postings and transfers count as charges so the balance
// invariant (charges - payments + adjustments) holds without extra terms.
func (t *FolioTransaction) IsChargeLike() bool {
	switch t.Type {
	case TransactionCharge, TransactionTax, TransactionTransfer:
		return true
	}
	return false
}

// IsPaymentLike reports whether the entry contributes to totalPayments.
// Refunds count negatively: money returned to the payer.
func (t *FolioTransaction) IsPaymentLike() bool {
	return t.Type == TransactionPayment || t.Type == TransactionRefund
}

// IsAdjustmentLike reports whether the entry contributes to totalAdjustments.
func (t *FolioTransaction) IsAdjustmentLike() bool {
	return t.Type == TransactionAdjustment || t.Type == TransactionCorrection
}

// CanBeVoided reports whether the void operation is allowed for this entry.
func (t *FolioTransaction) CanBeVoided() bool {
	return t.Status == TxnStatusPosted && !t.IsVoided && t.Type != TransactionVoid
}

// EffectiveAmount is the entry's contribution sign-normalized for balance
// computation: positive debit for charge-likes, positive credit (to be
// subtracted) for payment-likes, signed for adjustments. Voided entries
// contribute zero regardless of their stored amount.
func (t *FolioTransaction) EffectiveAmount() decimal.Decimal {
	if t.IsVoided {
		return decimal.Zero
	}
	switch {
	case t.IsChargeLike():
		return t.Amount
	case t.Type == TransactionPayment:
		return t.Amount.Abs()
	case t.Type == TransactionRefund:
		return t.Amount.Abs().Neg()
	case t.IsAdjustmentLike():
		return t.Amount
	}
	return decimal.Zero
}
