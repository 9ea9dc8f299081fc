package dto

import "github.com/shopspring/decimal"

// AssignPaymentRequest sets the assigned amount of one payment transaction.
type AssignPaymentRequest struct {
	AssignedAmount decimal.Decimal `json:"assignedAmount" binding:"required"`
	Notes          string          `json:"notes"`
}

// AssignmentMapping is one entry of a bulk assignment.
type AssignmentMapping struct {
	TransactionID  string          `json:"transactionID" binding:"required"`
	AssignedAmount decimal.Decimal `json:"assignedAmount" binding:"required"`
	Notes          string          `json:"notes"`
}

// BulkAssignRequest applies several assignment changes in one call, the way a
// company payment is reconciled against multiple invoices.
type BulkAssignRequest struct {
	Mappings []AssignmentMapping `json:"mappings" binding:"required,min=1,dive"`
}

// UnassignedAmountResponse reports a company's total unapplied payments.
type UnassignedAmountResponse struct {
	CompanyID        string          `json:"companyID"`
	HotelID          string          `json:"hotelID"`
	UnassignedAmount decimal.Decimal `json:"unassignedAmount"`
}
