package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// PostTransactionRequest is one ledger posting submitted by a workflow.
type PostTransactionRequest struct {
	Type                string          `json:"type" binding:"required,oneof=CHARGE PAYMENT ADJUSTMENT TAX REFUND"`
	Category            string          `json:"category" binding:"required"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	ServiceChargeAmount decimal.Decimal `json:"serviceChargeAmount"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	Description         string          `json:"description"`
	PaymentMethodID     *string         `json:"paymentMethodID,omitempty"`
	ReservationID       *string         `json:"reservationID,omitempty"`
	GuestID             *string         `json:"guestID,omitempty"`
	RoomID              *string         `json:"roomID,omitempty"`
	// TransactionDate defaults to now; WorkingDate defaults to the hotel's
	// current business date when omitted.
	TransactionDate *time.Time `json:"transactionDate,omitempty"`
	WorkingDate     *time.Time `json:"workingDate,omitempty"`
}

// VoidTransactionRequest logically deletes a posted entry.
type VoidTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RefundRequest posts a refund against an existing payment.
type RefundRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

// CorrectionRequest posts an offsetting pair superseding an entry.
type CorrectionRequest struct {
	CorrectedAmount decimal.Decimal `json:"correctedAmount" binding:"required"`
	Reason          string          `json:"reason" binding:"required"`
}

// TransferRequest moves an amount between two folios.
type TransferRequest struct {
	TargetFolioID string          `json:"targetFolioID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Notes         string          `json:"notes"`
}

// TransactionResponse is the external view of a ledger entry.
type TransactionResponse struct {
	TransactionID     string          `json:"transactionID"`
	FolioID           string          `json:"folioID"`
	TransactionNumber int64           `json:"transactionNumber"`
	Type              string          `json:"type"`
	Category          string          `json:"category"`
	Status            string          `json:"status"`
	Amount            decimal.Decimal `json:"amount"`
	NetAmount         decimal.Decimal `json:"netAmount"`
	GrossAmount       decimal.Decimal `json:"grossAmount"`
	CurrencyCode      string          `json:"currencyCode"`
	IsVoided          bool            `json:"isVoided"`
	AssignedAmount    decimal.Decimal `json:"assignedAmount"`
	UnassignedAmount  decimal.Decimal `json:"unassignedAmount"`
	WorkingDate       time.Time       `json:"workingDate"`
	PostingDate       time.Time       `json:"postingDate"`
	Description       string          `json:"description,omitempty"`
	CreatedBy         string          `json:"createdBy"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(t *domain.FolioTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		FolioID:           t.FolioID,
		TransactionNumber: t.TransactionNumber,
		Type:              string(t.Type),
		Category:          string(t.Category),
		Status:            string(t.Status),
		Amount:            t.Amount,
		NetAmount:         t.NetAmount,
		GrossAmount:       t.GrossAmount,
		CurrencyCode:      t.CurrencyCode,
		IsVoided:          t.IsVoided,
		AssignedAmount:    t.AssignedAmount,
		UnassignedAmount:  t.UnassignedAmount,
		WorkingDate:       t.WorkingDate,
		PostingDate:       t.PostingDate,
		Description:       t.Description,
		CreatedBy:         t.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.FolioTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
