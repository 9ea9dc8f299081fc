package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	"github.com/stayfolio/pms_backend/internal/models"
	"github.com/stayfolio/pms_backend/internal/utils/mapping"
)

const folioColumns = `
	folio_id, hotel_id, folio_number, folio_type, status, settlement_status, workflow_status,
	guest_id, company_id, group_id, reservation_id,
	total_charges, total_payments, total_adjustments, total_taxes, total_service_charges, total_discounts, balance,
	credit_limit, currency_code, opened_at, closed_at, closed_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxFolioRepository struct {
	BaseRepository
}

// newPgxFolioRepository creates a new repository for folio data.
func newPgxFolioRepository(pool *pgxpool.Pool) portsrepo.FolioRepositoryFacade {
	return &PgxFolioRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FolioRepositoryFacade = (*PgxFolioRepository)(nil)

func scanFolio(row pgx.Row) (*models.Folio, error) {
	var m models.Folio
	err := row.Scan(
		&m.FolioID, &m.HotelID, &m.FolioNumber, &m.FolioType, &m.Status, &m.Settlement, &m.Workflow,
		&m.GuestID, &m.CompanyID, &m.GroupID, &m.ReservationID,
		&m.TotalCharges, &m.TotalPayments, &m.TotalAdjustments, &m.TotalTaxes, &m.TotalServiceCharges, &m.TotalDiscounts, &m.Balance,
		&m.CreditLimit, &m.CurrencyCode, &m.OpenedAt, &m.ClosedAt, &m.ClosedBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveFolio inserts a new folio row.
func (r *PgxFolioRepository) SaveFolio(ctx context.Context, folio domain.Folio) error {
	m := mapping.ToModelFolio(folio)
	query := `
		INSERT INTO folios (` + folioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FolioID, m.HotelID, m.FolioNumber, m.FolioType, m.Status, m.Settlement, m.Workflow,
		m.GuestID, m.CompanyID, m.GroupID, m.ReservationID,
		m.TotalCharges, m.TotalPayments, m.TotalAdjustments, m.TotalTaxes, m.TotalServiceCharges, m.TotalDiscounts, m.Balance,
		m.CreditLimit, m.CurrencyCode, m.OpenedAt, m.ClosedAt, m.ClosedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "folio "+m.FolioID+" already exists", apperrors.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewAppError(400, "folio "+m.FolioID+" references a missing hotel or reservation", apperrors.ErrValidation)
		}
		return apperrors.NewAppError(500, "failed to insert folio "+m.FolioID, err)
	}
	return nil
}

// FindFolioByID fetches one folio by primary key.
func (r *PgxFolioRepository) FindFolioByID(ctx context.Context, folioID string) (*domain.Folio, error) {
	query := `SELECT ` + folioColumns + ` FROM folios WHERE folio_id = $1;`
	m, err := scanFolio(r.Pool.QueryRow(ctx, query, folioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("folio " + folioID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find folio "+folioID, err)
	}
	folio := mapping.ToDomainFolio(*m)
	return &folio, nil
}

// ListFoliosByReservation returns a reservation's folios in opening order.
func (r *PgxFolioRepository) ListFoliosByReservation(ctx context.Context, reservationID string, openOnly bool) ([]domain.Folio, error) {
	query := `SELECT ` + folioColumns + ` FROM folios WHERE reservation_id = $1`
	if openOnly {
		query += ` AND status = 'OPEN'`
	}
	query += ` ORDER BY opened_at ASC;`

	rows, err := r.Pool.Query(ctx, query, reservationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list folios for reservation "+reservationID, err)
	}
	defer rows.Close()

	var folios []domain.Folio
	for rows.Next() {
		m, err := scanFolio(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan folio row", err)
		}
		folios = append(folios, mapping.ToDomainFolio(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating folio rows", err)
	}
	return folios, nil
}

// CloseFolio stamps the closing fields under the folio row lock. The lock
// keeps a concurrent posting from slipping in between the balance check the
// caller made and the status flip.
func (r *PgxFolioRepository) CloseFolio(ctx context.Context, folioID string, settlement domain.SettlementStatus, closedBy string, closedAt time.Time) (*domain.Folio, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + folioColumns + ` FROM folios WHERE folio_id = $1 FOR UPDATE;`
	m, err := scanFolio(tx.QueryRow(ctx, lockQuery, folioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("folio " + folioID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock folio "+folioID, err)
	}
	if m.Status != string(domain.FolioStatusOpen) {
		return nil, fmt.Errorf("%w: folio %s has status %s", apperrors.ErrFolioNotModifiable, folioID, m.Status)
	}

	updateQuery := `
		UPDATE folios
		SET status = $2, settlement_status = $3, closed_at = $4, closed_by = $5,
		    last_updated_at = $4, last_updated_by = $5
		WHERE folio_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, folioID, string(domain.FolioStatusClosed), string(settlement), closedAt, closedBy); err != nil {
		return nil, apperrors.NewAppError(500, "failed to close folio "+folioID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = string(domain.FolioStatusClosed)
	m.Settlement = string(settlement)
	m.ClosedAt = &closedAt
	m.ClosedBy = &closedBy
	m.LastUpdatedAt = closedAt
	m.LastUpdatedBy = closedBy
	folio := mapping.ToDomainFolio(*m)
	return &folio, nil
}

// UpdateWorkflowStatus moves a folio between draft/active/finalized.
func (r *PgxFolioRepository) UpdateWorkflowStatus(ctx context.Context, folioID string, workflow domain.WorkflowStatus, actorID string, at time.Time) error {
	query := `
		UPDATE folios
		SET workflow_status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE folio_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, folioID, string(workflow), at, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update workflow status for folio "+folioID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("folio " + folioID + " not found")
	}
	return nil
}

// DeleteFolio removes a folio that has no ledger history. The transaction
// count check and the delete share one database transaction so a concurrent
// posting cannot race the delete.
func (r *PgxFolioRepository) DeleteFolio(ctx context.Context, folioID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := scanFolio(tx.QueryRow(ctx, `SELECT `+folioColumns+` FROM folios WHERE folio_id = $1 FOR UPDATE;`, folioID)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("folio " + folioID + " not found")
		}
		return apperrors.NewAppError(500, "failed to lock folio "+folioID, err)
	}

	var txnCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM folio_transactions WHERE folio_id = $1;`, folioID).Scan(&txnCount); err != nil {
		return apperrors.NewAppError(500, "failed to count transactions for folio "+folioID, err)
	}
	if txnCount > 0 {
		return fmt.Errorf("%w: folio %s has %d transactions and cannot be deleted", apperrors.ErrValidation, folioID, txnCount)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM folios WHERE folio_id = $1;`, folioID); err != nil {
		return apperrors.NewAppError(500, "failed to delete folio "+folioID, err)
	}
	return r.Commit(ctx, tx)
}
