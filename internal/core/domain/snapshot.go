package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerKind identifies one of the three parallel daily ledgers.
type LedgerKind string

const (
	LedgerGuest          LedgerKind = "GUEST"
	LedgerCity           LedgerKind = "CITY"
	LedgerAdvanceDeposit LedgerKind = "ADVANCE_DEPOSIT"
)

// DailyLedgerSnapshot is the per-hotel, per-business-day closing position of
// one ledger. It is written once at day-close and immutable thereafter; the
// next day's rollup reads it as the fast-path opening balance.
type DailyLedgerSnapshot struct {
	SnapshotID     string          `json:"snapshotID"`
	HotelID        string          `json:"hotelID"`
	BusinessDate   time.Time       `json:"businessDate"`
	LedgerKind     LedgerKind      `json:"ledgerKind"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalInflow    decimal.Decimal `json:"totalInflow"`
	TotalOutflow   decimal.Decimal `json:"totalOutflow"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	AuditFields
}

// LedgerRollup is the computed daily movement for one hotel/day/ledger before
// it is persisted as a snapshot.
type LedgerRollup struct {
	HotelID        string          `json:"hotelID"`
	BusinessDate   time.Time       `json:"businessDate"`
	LedgerKind     LedgerKind      `json:"ledgerKind"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalInflow    decimal.Decimal `json:"totalInflow"`
	TotalOutflow   decimal.Decimal `json:"totalOutflow"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	// OpeningFromSnapshot records whether the opening balance came from the
	// prior day's snapshot (fast path) or a full recomputation.
	OpeningFromSnapshot bool `json:"openingFromSnapshot"`
}
