package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	"github.com/stayfolio/pms_backend/internal/models"
	"github.com/stayfolio/pms_backend/internal/utils/mapping"
)

const snapshotColumns = `
	snapshot_id, hotel_id, business_date, ledger_kind,
	opening_balance, total_inflow, total_outflow, closing_balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates a new repository for day-close snapshots.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

func scanSnapshot(row pgx.Row) (*models.DailyLedgerSnapshot, error) {
	var m models.DailyLedgerSnapshot
	err := row.Scan(
		&m.SnapshotID, &m.HotelID, &m.BusinessDate, &m.LedgerKind,
		&m.OpeningBalance, &m.TotalInflow, &m.TotalOutflow, &m.ClosingBalance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveSnapshot inserts a day-close snapshot. Snapshots are insert-once: the
// unique key on (hotel_id, business_date, ledger_kind) turns a rerun into
// ErrDuplicate, never an overwrite.
func (r *PgxSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.DailyLedgerSnapshot) error {
	m := mapping.ToModelSnapshot(snapshot)
	query := `
		INSERT INTO daily_ledger_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SnapshotID, m.HotelID, m.BusinessDate, m.LedgerKind,
		m.OpeningBalance, m.TotalInflow, m.TotalOutflow, m.ClosingBalance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409,
				"snapshot already exists for hotel "+m.HotelID+" on "+m.BusinessDate.Format("2006-01-02")+" ("+m.LedgerKind+")",
				apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert snapshot "+m.SnapshotID, err)
	}
	return nil
}

// FindSnapshot fetches one snapshot by its natural key.
func (r *PgxSnapshotRepository) FindSnapshot(ctx context.Context, hotelID string, businessDate time.Time, kind domain.LedgerKind) (*domain.DailyLedgerSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM daily_ledger_snapshots WHERE hotel_id = $1 AND business_date = $2 AND ledger_kind = $3;`
	m, err := scanSnapshot(r.Pool.QueryRow(ctx, query, hotelID, businessDate, string(kind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no " + string(kind) + " snapshot for hotel " + hotelID + " on " + businessDate.Format("2006-01-02"))
		}
		return nil, apperrors.NewAppError(500, "failed to find snapshot", err)
	}
	snapshot := mapping.ToDomainSnapshot(*m)
	return &snapshot, nil
}

// ListSnapshots returns a date range of one ledger's snapshots in day order.
func (r *PgxSnapshotRepository) ListSnapshots(ctx context.Context, hotelID string, kind domain.LedgerKind, from, to time.Time) ([]domain.DailyLedgerSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM daily_ledger_snapshots
		WHERE hotel_id = $1 AND ledger_kind = $2 AND business_date BETWEEN $3 AND $4
		ORDER BY business_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, hotelID, string(kind), from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list snapshots for hotel "+hotelID, err)
	}
	defer rows.Close()

	var snapshots []domain.DailyLedgerSnapshot
	for rows.Next() {
		m, err := scanSnapshot(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan snapshot row", err)
		}
		snapshots = append(snapshots, mapping.ToDomainSnapshot(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating snapshot rows", err)
	}
	return snapshots, nil
}
