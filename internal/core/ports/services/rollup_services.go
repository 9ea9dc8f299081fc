package services

import (
	"context"
	"time"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// RollupSvcFacade computes the daily Guest / City / Advance-Deposit ledger
// positions and persists day-close snapshots.
type RollupSvcFacade interface {
	// ComputeRollup builds one day's position, seeding the opening balance
	// from the prior day's snapshot when present.
	ComputeRollup(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (*domain.LedgerRollup, error)
	// RecomputeFromScratch ignores snapshots and sums the full transaction
	// history; it must agree with ComputeRollup for uncorrupted data.
	RecomputeFromScratch(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (*domain.LedgerRollup, error)
	// RunDayClose computes and persists all three ledgers for the day.
	RunDayClose(ctx context.Context, hotelID string, businessDate time.Time, actorID string) ([]domain.LedgerRollup, error)
	GetSnapshot(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (*domain.DailyLedgerSnapshot, error)
}
