package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/middleware"
)

var (
	ErrDayAlreadyClosed = errors.New("day close already ran for this business date")
	ErrWrongBusinessDay = errors.New("business date does not match the hotel's working date")
)

// ledgerKinds is the fixed set of parallel daily ledgers a day close covers.
var ledgerKinds = []domain.LedgerKind{domain.LedgerGuest, domain.LedgerCity, domain.LedgerAdvanceDeposit}

// rollupService computes daily ledger positions and persists day-close
// snapshots. Opening balances come from the prior day's snapshot when one
// exists; the full-history sum is the fallback and the audit cross-check.
type rollupService struct {
	rollupRepo   portsrepo.RollupRepositoryFacade
	snapshotRepo portsrepo.SnapshotRepositoryFacade
	hotelSvc     portssvc.HotelSvcFacade
}

// NewRollupService creates a new RollupService.
func NewRollupService(rollupRepo portsrepo.RollupRepositoryFacade, snapshotRepo portsrepo.SnapshotRepositoryFacade, hotelSvc portssvc.HotelSvcFacade) portssvc.RollupSvcFacade {
	return &rollupService{
		rollupRepo:   rollupRepo,
		snapshotRepo: snapshotRepo,
		hotelSvc:     hotelSvc,
	}
}

var _ portssvc.RollupSvcFacade = (*rollupService)(nil)

// truncateToDay normalizes a business date to midnight UTC so snapshot keys
// and movement queries agree regardless of how the caller built the time.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeRollup builds one day's ledger position. The opening balance is the
// prior day's snapshot closing balance when a snapshot exists, otherwise the
// sum of all movements strictly before the day.
func (s *rollupService) ComputeRollup(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (*domain.LedgerRollup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	businessDate = truncateToDay(businessDate)

	rollup := &domain.LedgerRollup{
		HotelID:      hotelID,
		BusinessDate: businessDate,
		LedgerKind:   kind,
	}

	prevDate := businessDate.AddDate(0, 0, -1)
	prevSnapshot, err := s.snapshotRepo.FindSnapshot(ctx, hotelID, prevDate, kind)
	switch {
	case err == nil:
		rollup.OpeningBalance = prevSnapshot.ClosingBalance
		rollup.OpeningFromSnapshot = true
	case errors.Is(err, apperrors.ErrNotFound):
		opening, berr := s.rollupRepo.LedgerBalanceBefore(ctx, hotelID, businessDate, kind)
		if berr != nil {
			return nil, berr
		}
		rollup.OpeningBalance = opening
		logger.Debug("No prior snapshot, opening balance recomputed",
			slog.String("hotel_id", hotelID),
			slog.Time("business_date", businessDate),
			slog.String("ledger_kind", string(kind)))
	default:
		return nil, err
	}

	inflow, outflow, err := s.rollupRepo.LedgerMovements(ctx, hotelID, businessDate, kind)
	if err != nil {
		return nil, err
	}
	rollup.TotalInflow = inflow
	rollup.TotalOutflow = outflow
	rollup.ClosingBalance = rollup.OpeningBalance.Add(inflow).Sub(outflow)
	return rollup, nil
}

// RecomputeFromScratch ignores snapshots entirely and derives the opening
// balance from the full transaction history. For uncorrupted data it must
// agree with ComputeRollup; a disagreement means a snapshot was written from
// bad state and is worth a consistency alarm.
func (s *rollupService) RecomputeFromScratch(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (*domain.LedgerRollup, error) {
	businessDate = truncateToDay(businessDate)

	opening, err := s.rollupRepo.LedgerBalanceBefore(ctx, hotelID, businessDate, kind)
	if err != nil {
		return nil, err
	}
	inflow, outflow, err := s.rollupRepo.LedgerMovements(ctx, hotelID, businessDate, kind)
	if err != nil {
		return nil, err
	}

	return &domain.LedgerRollup{
		HotelID:             hotelID,
		BusinessDate:        businessDate,
		LedgerKind:          kind,
		OpeningBalance:      opening,
		TotalInflow:         inflow,
		TotalOutflow:        outflow,
		ClosingBalance:      opening.Add(inflow).Sub(outflow),
		OpeningFromSnapshot: false,
	}, nil
}

// RunDayClose computes and persists all three ledger snapshots for the
// hotel's current business date, then advances the working date. Snapshots
// are insert-once, so a second run for the same day fails cleanly.
func (s *rollupService) RunDayClose(ctx context.Context, hotelID string, businessDate time.Time, actorID string) ([]domain.LedgerRollup, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	businessDate = truncateToDay(businessDate)

	workingDate, err := s.hotelSvc.GetCurrentWorkingDate(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if !truncateToDay(workingDate).Equal(businessDate) {
		return nil, fmt.Errorf("%w: requested %s, hotel is on %s",
			ErrWrongBusinessDay, businessDate.Format("2006-01-02"), truncateToDay(workingDate).Format("2006-01-02"))
	}

	now := time.Now().UTC()
	rollups := make([]domain.LedgerRollup, 0, len(ledgerKinds))
	for _, kind := range ledgerKinds {
		rollup, err := s.ComputeRollup(ctx, hotelID, businessDate, kind)
		if err != nil {
			return nil, err
		}

		snapshot := domain.DailyLedgerSnapshot{
			SnapshotID:     uuid.NewString(),
			HotelID:        hotelID,
			BusinessDate:   businessDate,
			LedgerKind:     kind,
			OpeningBalance: rollup.OpeningBalance,
			TotalInflow:    rollup.TotalInflow,
			TotalOutflow:   rollup.TotalOutflow,
			ClosingBalance: rollup.ClosingBalance,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				logger.Warn("Day close already ran",
					slog.String("hotel_id", hotelID),
					slog.Time("business_date", businessDate),
					slog.String("ledger_kind", string(kind)))
				return nil, fmt.Errorf("%w: %s %s", ErrDayAlreadyClosed, businessDate.Format("2006-01-02"), kind)
			}
			return nil, err
		}
		rollups = append(rollups, *rollup)
	}

	if _, err := s.hotelSvc.AdvanceWorkingDate(ctx, hotelID, actorID); err != nil {
		logger.Error("Snapshots written but working date advance failed",
			slog.String("hotel_id", hotelID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Day close completed",
		slog.String("hotel_id", hotelID),
		slog.Time("business_date", businessDate),
		slog.Int("snapshots", len(rollups)),
		slog.String("closed_by", actorID))
	return rollups, nil
}

func (s *rollupService) GetSnapshot(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (*domain.DailyLedgerSnapshot, error) {
	return s.snapshotRepo.FindSnapshot(ctx, hotelID, truncateToDay(businessDate), kind)
}
