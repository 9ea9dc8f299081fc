package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FolioType classifies who accumulates the charges on a folio.
type FolioType string

const (
	FolioTypeGuest   FolioType = "GUEST"
	FolioTypeMaster  FolioType = "MASTER"
	FolioTypeGroup   FolioType = "GROUP"
	FolioTypeCompany FolioType = "COMPANY" // city-ledger / accounts-receivable account
	FolioTypeHouse   FolioType = "HOUSE"
)

// FolioStatus is the lifecycle state of a folio.
type FolioStatus string

const (
	FolioStatusOpen     FolioStatus = "OPEN"
	FolioStatusClosed   FolioStatus = "CLOSED"
	FolioStatusVoided   FolioStatus = "VOIDED"
	FolioStatusDisputed FolioStatus = "DISPUTED"
)

// SettlementStatus tracks how much of the folio's balance has been paid.
type SettlementStatus string

const (
	SettlementUnsettled SettlementStatus = "UNSETTLED"
	SettlementPartial   SettlementStatus = "PARTIAL"
	SettlementSettled   SettlementStatus = "SETTLED"
)

// WorkflowStatus tracks the editorial state of a folio, independent of settlement.
type WorkflowStatus string

const (
	WorkflowDraft     WorkflowStatus = "DRAFT"
	WorkflowActive    WorkflowStatus = "ACTIVE"
	WorkflowFinalized WorkflowStatus = "FINALIZED"
)

// BalanceEpsilon is the tolerance used when comparing monetary balances.
// Amounts are decimal so arithmetic itself is exact; the epsilon exists so a
// folio off by a sub-cent rounding remainder still counts as settled.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// Folio is an account that accumulates charges and payments for a guest,
// company, or group. All monetary aggregates are a projection of the folio's
// non-voided transactions and are recomputed inside the same database
// transaction as any posting that changes them.
type Folio struct {
	FolioID       string           `json:"folioID"` // Primary Key (UUID)
	HotelID       string           `json:"hotelID"`
	FolioNumber   string           `json:"folioNumber"`
	FolioType     FolioType        `json:"folioType"`
	Status        FolioStatus      `json:"status"`
	Settlement    SettlementStatus `json:"settlementStatus"`
	Workflow      WorkflowStatus   `json:"workflowStatus"`
	GuestID       *string          `json:"guestID,omitempty"`
	CompanyID     *string          `json:"companyID,omitempty"`
	GroupID       *string          `json:"groupID,omitempty"`
	ReservationID *string          `json:"reservationID,omitempty"`

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
	ClosedAt *time.Time `json:"closedAt,omitempty"`
	ClosedBy *string    `json:"closedBy,omitempty"`
	AuditFields

	// Transactions is populated on demand; it is not part of the stored row.
	Transactions []FolioTransaction `json:"transactions,omitempty"`
}

// CanBeModified reports whether new transactions may be posted to the folio.
func (f *Folio) CanBeModified() bool {
	return f.Workflow != WorkflowFinalized && f.Status == FolioStatusOpen
}

// HasBalance reports whether the folio carries an outstanding balance beyond
// the settlement tolerance.
func (f *Folio) HasBalance() bool {
	return f.Balance.Abs().GreaterThan(BalanceEpsilon)
}

// IsFullySettled reports whether the balance is zero within tolerance.
func (f *Folio) IsFullySettled() bool {
	return !f.HasBalance()
}
