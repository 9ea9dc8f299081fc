package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
)

// Ledger membership and direction rules, expressed once as SQL fragments so
// the daily movement query and the balance-before query cannot drift apart.
//
// Guest ledger: everything on non-company folios, except advance deposits
// (payments taken before the reservation's check-in, paymaster rooms
// excluded). Inflow is the charge side, outflow the settlement side; refunds
// reduce outflow.
//
// City ledger: debt moved in by city-ledger payment methods on guest folios,
// plus charges accruing on company folios; outflow is payments received on
// company folios plus commissions credited to the account holder. Commission
// entries reduce the debt, so they count as outflow and never as inflow.
//
// Advance-deposit ledger: deposits taken pre-arrival (inflow) and transfer
// consumption on or after the check-in day (outflow).
const (
	advanceDepositPredicate = `
		t.type = 'PAYMENT'
		AND t.reservation_id IS NOT NULL
		AND EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.reservation_id = t.reservation_id
			  AND t.working_date < r.check_in_date
			  AND r.room_type <> 'PAYMASTER'
		)`

	guestLedgerFilter = `f.folio_type <> 'COMPANY' AND NOT (` + advanceDepositPredicate + `)`

	guestInflowExpr = `
		CASE
			WHEN t.type IN ('CHARGE', 'TAX') THEN t.amount
			WHEN t.type = 'TRANSFER' AND t.amount > 0 THEN t.amount
			WHEN t.type IN ('ADJUSTMENT', 'CORRECTION') AND t.amount > 0 THEN t.amount
			ELSE 0
		END`

	guestOutflowExpr = `
		CASE
			WHEN t.type = 'PAYMENT' THEN ABS(t.amount)
			WHEN t.type = 'REFUND' THEN -ABS(t.amount)
			WHEN t.type = 'TRANSFER' AND t.amount < 0 THEN -t.amount
			WHEN t.type IN ('ADJUSTMENT', 'CORRECTION') AND t.amount < 0 THEN -t.amount
			ELSE 0
		END`

	cityLedgerFilter = `(
		f.folio_type = 'COMPANY'
		OR (t.type = 'PAYMENT' AND EXISTS (
			SELECT 1 FROM payment_methods pm
			WHERE pm.payment_method_id = t.payment_method_id AND pm.kind = 'CITY_LEDGER'
		))
	)`

	cityInflowExpr = `
		CASE
			WHEN t.category = 'COMMISSION' THEN 0
			WHEN f.folio_type <> 'COMPANY' AND t.type = 'PAYMENT' THEN ABS(t.amount)
			WHEN f.folio_type = 'COMPANY' AND t.type IN ('CHARGE', 'TAX') THEN t.amount
			WHEN f.folio_type = 'COMPANY' AND t.type = 'TRANSFER' AND t.amount > 0 THEN t.amount
			WHEN f.folio_type = 'COMPANY' AND t.type IN ('ADJUSTMENT', 'CORRECTION') AND t.amount > 0 THEN t.amount
			ELSE 0
		END`

	cityOutflowExpr = `
		CASE
			WHEN f.folio_type = 'COMPANY' AND t.category = 'COMMISSION' THEN ABS(t.amount)
			WHEN f.folio_type = 'COMPANY' AND t.type = 'PAYMENT' THEN ABS(t.amount)
			WHEN f.folio_type = 'COMPANY' AND t.type = 'REFUND' THEN -ABS(t.amount)
			WHEN f.folio_type = 'COMPANY' AND t.type = 'TRANSFER' AND t.amount < 0 THEN -t.amount
			WHEN f.folio_type = 'COMPANY' AND t.type IN ('ADJUSTMENT', 'CORRECTION') AND t.amount < 0 THEN -t.amount
			ELSE 0
		END`

	advanceLedgerFilter = `(
		(` + advanceDepositPredicate + `)
		OR (
			t.type = 'TRANSFER' AND t.amount < 0 AND t.reservation_id IS NOT NULL
			AND EXISTS (
				SELECT 1 FROM reservations r
				WHERE r.reservation_id = t.reservation_id
				  AND t.working_date >= r.check_in_date
				  AND r.room_type <> 'PAYMASTER'
			)
		)
	)`

	advanceInflowExpr = `
		CASE WHEN t.type = 'PAYMENT' THEN ABS(t.amount) ELSE 0 END`

	advanceOutflowExpr = `
		CASE WHEN t.type = 'TRANSFER' AND t.amount < 0 THEN -t.amount ELSE 0 END`
)

type PgxRollupRepository struct {
	BaseRepository
}

// newPgxRollupRepository creates a new repository for the daily ledger
// aggregate queries.
func newPgxRollupRepository(pool *pgxpool.Pool) portsrepo.RollupRepositoryFacade {
	return &PgxRollupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RollupRepositoryFacade = (*PgxRollupRepository)(nil)

func ledgerExpressions(kind domain.LedgerKind) (filter, inflow, outflow string, err error) {
	switch kind {
	case domain.LedgerGuest:
		return guestLedgerFilter, guestInflowExpr, guestOutflowExpr, nil
	case domain.LedgerCity:
		return cityLedgerFilter, cityInflowExpr, cityOutflowExpr, nil
	case domain.LedgerAdvanceDeposit:
		return advanceLedgerFilter, advanceInflowExpr, advanceOutflowExpr, nil
	}
	return "", "", "", fmt.Errorf("%w: unknown ledger kind %q", apperrors.ErrValidation, kind)
}

// LedgerMovements sums one business day's inflow and outflow for a ledger.
func (r *PgxRollupRepository) LedgerMovements(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (decimal.Decimal, decimal.Decimal, error) {
	filter, inflowExpr, outflowExpr, err := ledgerExpressions(kind)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	query := `
		SELECT COALESCE(SUM(` + inflowExpr + `), 0), COALESCE(SUM(` + outflowExpr + `), 0)
		FROM folio_transactions t
		JOIN folios f ON f.folio_id = t.folio_id
		WHERE t.hotel_id = $1
		  AND t.working_date = $2
		  AND t.is_voided = FALSE
		  AND ` + filter + `;
	`
	var inflow, outflow decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, hotelID, businessDate).Scan(&inflow, &outflow); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum "+string(kind)+" ledger movements", err)
	}
	return inflow, outflow, nil
}

// LedgerBalanceBefore sums all movements strictly earlier than the business
// date. This is the full-history fallback used when no prior snapshot exists
// and the cross-check used by from-scratch recomputation.
func (r *PgxRollupRepository) LedgerBalanceBefore(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (decimal.Decimal, error) {
	filter, inflowExpr, outflowExpr, err := ledgerExpressions(kind)
	if err != nil {
		return decimal.Zero, err
	}

	query := `
		SELECT COALESCE(SUM((` + inflowExpr + `) - (` + outflowExpr + `)), 0)
		FROM folio_transactions t
		JOIN folios f ON f.folio_id = t.folio_id
		WHERE t.hotel_id = $1
		  AND t.working_date < $2
		  AND t.is_voided = FALSE
		  AND ` + filter + `;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, hotelID, businessDate).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum "+string(kind)+" ledger balance", err)
	}
	return balance, nil
}
