package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// RollupResponse is one computed daily ledger position.
type RollupResponse struct {
	HotelID             string          `json:"hotelID"`
	BusinessDate        time.Time       `json:"businessDate"`
	LedgerKind          string          `json:"ledgerKind"`
	OpeningBalance      decimal.Decimal `json:"openingBalance"`
	TotalInflow         decimal.Decimal `json:"totalInflow"`
	TotalOutflow        decimal.Decimal `json:"totalOutflow"`
	ClosingBalance      decimal.Decimal `json:"closingBalance"`
	OpeningFromSnapshot bool            `json:"openingFromSnapshot"`
}

// ToRollupResponse converts a domain rollup to its DTO.
func ToRollupResponse(r *domain.LedgerRollup) RollupResponse {
	return RollupResponse{
		HotelID:             r.HotelID,
		BusinessDate:        r.BusinessDate,
		LedgerKind:          string(r.LedgerKind),
		OpeningBalance:      r.OpeningBalance,
		TotalInflow:         r.TotalInflow,
		TotalOutflow:        r.TotalOutflow,
		ClosingBalance:      r.ClosingBalance,
		OpeningFromSnapshot: r.OpeningFromSnapshot,
	}
}

// DayCloseResponse reports the snapshots written by a day close.
type DayCloseResponse struct {
	HotelID      string           `json:"hotelID"`
	BusinessDate time.Time        `json:"businessDate"`
	Rollups      []RollupResponse `json:"rollups"`
}
