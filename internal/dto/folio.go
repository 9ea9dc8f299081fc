package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// CreateFolioRequest opens a new folio for a stay or company relationship.
type CreateFolioRequest struct {
	HotelID       string          `json:"hotelID" binding:"required"`
	FolioType     string          `json:"folioType" binding:"required,oneof=GUEST MASTER GROUP COMPANY HOUSE"`
	GuestID       *string         `json:"guestID,omitempty"`
	CompanyID     *string         `json:"companyID,omitempty"`
	GroupID       *string         `json:"groupID,omitempty"`
	ReservationID *string         `json:"reservationID,omitempty"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	CreditLimit   decimal.Decimal `json:"creditLimit"`
}

// FolioResponse is the external view of a folio.
type FolioResponse struct {
	FolioID          string          `json:"folioID"`
	HotelID          string          `json:"hotelID"`
	FolioNumber      string          `json:"folioNumber"`
	FolioType        string          `json:"folioType"`
	Status           string          `json:"status"`
	SettlementStatus string          `json:"settlementStatus"`
	WorkflowStatus   string          `json:"workflowStatus"`
	TotalCharges     decimal.Decimal `json:"totalCharges"`
	TotalPayments    decimal.Decimal `json:"totalPayments"`
	TotalAdjustments decimal.Decimal `json:"totalAdjustments"`
	TotalTaxes       decimal.Decimal `json:"totalTaxes"`
	Balance          decimal.Decimal `json:"balance"`
	CurrencyCode     string          `json:"currencyCode"`
	OpenedAt         time.Time       `json:"openedAt"`
	ClosedAt         *time.Time      `json:"closedAt,omitempty"`
}

// ToFolioResponse converts a domain folio to its response DTO.
func ToFolioResponse(f *domain.Folio) FolioResponse {
	return FolioResponse{
		FolioID:          f.FolioID,
		HotelID:          f.HotelID,
		FolioNumber:      f.FolioNumber,
		FolioType:        string(f.FolioType),
		Status:           string(f.Status),
		SettlementStatus: string(f.Settlement),
		WorkflowStatus:   string(f.Workflow),
		TotalCharges:     f.TotalCharges,
		TotalPayments:    f.TotalPayments,
		TotalAdjustments: f.TotalAdjustments,
		TotalTaxes:       f.TotalTaxes,
		Balance:          f.Balance,
		CurrencyCode:     f.CurrencyCode,
		OpenedAt:         f.OpenedAt,
		ClosedAt:         f.ClosedAt,
	}
}

// SettlementSummaryResponse is the aggregator's settlement view of a folio.
type SettlementSummaryResponse struct {
	FolioID            string          `json:"folioID"`
	TotalCharges       decimal.Decimal `json:"totalCharges"`
	TotalPayments      decimal.Decimal `json:"totalPayments"`
	TotalAdjustments   decimal.Decimal `json:"totalAdjustments"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	IsFullySettled     bool            `json:"isFullySettled"`
	RequiresPayment    bool            `json:"requiresPayment"`
}

// ToSettlementSummaryResponse converts the domain summary to its DTO.
func ToSettlementSummaryResponse(s *domain.SettlementSummary) SettlementSummaryResponse {
	return SettlementSummaryResponse{
		FolioID:            s.FolioID,
		TotalCharges:       s.TotalCharges,
		TotalPayments:      s.TotalPayments,
		TotalAdjustments:   s.TotalAdjustments,
		OutstandingBalance: s.OutstandingBalance,
		IsFullySettled:     s.IsFullySettled,
		RequiresPayment:    s.RequiresPayment,
	}
}
