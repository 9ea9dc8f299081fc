package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// RollupRepositoryFacade provides the aggregate queries behind the daily
// ledger close. Movement queries are restricted to transactions whose working
// date equals the target day; balance-before queries sum everything strictly
// earlier, which is the expensive fallback when no prior snapshot exists.
type RollupRepositoryFacade interface {
	LedgerMovements(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (inflow, outflow decimal.Decimal, err error)
	LedgerBalanceBefore(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (decimal.Decimal, error)
}

// SnapshotRepositoryFacade persists day-close snapshots. Snapshots are
// insert-once: saving a second snapshot for the same (hotel, date, kind)
// returns ErrDuplicate.
type SnapshotRepositoryFacade interface {
	SaveSnapshot(ctx context.Context, snapshot domain.DailyLedgerSnapshot) error
	FindSnapshot(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (*domain.DailyLedgerSnapshot, error)
	ListSnapshots(ctx context.Context, hotelID string, kind domain.LedgerKind, from, to time.Time) ([]domain.DailyLedgerSnapshot, error)
}
