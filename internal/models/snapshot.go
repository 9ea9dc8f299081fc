package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyLedgerSnapshot is the database row shape for a day-close snapshot,
// keyed by (hotel_id, business_date, ledger_kind).
type DailyLedgerSnapshot struct {
	SnapshotID     string          `json:"snapshotID"`
	HotelID        string          `json:"hotelID"`
	BusinessDate   time.Time       `json:"businessDate"`
	LedgerKind     string          `json:"ledgerKind"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalInflow    decimal.Decimal `json:"totalInflow"`
	TotalOutflow   decimal.Decimal `json:"totalOutflow"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	AuditFields
}
