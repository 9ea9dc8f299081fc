package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	"github.com/stayfolio/pms_backend/internal/models"
	"github.com/stayfolio/pms_backend/internal/utils/accounting"
	"github.com/stayfolio/pms_backend/internal/utils/mapping"
)

const transactionColumns = `
	transaction_id, folio_id, hotel_id, transaction_number, type, category, status,
	amount, tax_amount, service_charge_amount, discount_amount, net_amount, gross_amount, currency_code,
	is_voided, voided_at, voided_by, void_reason,
	is_refund, correction_of, transfer_folio_id,
	assigned_amount, unassigned_amount, assignment_history,
	transaction_date, posting_date, working_date,
	payment_method_id, reservation_id, guest_id, room_id, description,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.FolioTransaction, error) {
	var m models.FolioTransaction
	var history []byte
	err := row.Scan(
		&m.TransactionID, &m.FolioID, &m.HotelID, &m.TransactionNumber, &m.Type, &m.Category, &m.Status,
		&m.Amount, &m.TaxAmount, &m.ServiceChargeAmount, &m.DiscountAmount, &m.NetAmount, &m.GrossAmount, &m.CurrencyCode,
		&m.IsVoided, &m.VoidedAt, &m.VoidedBy, &m.VoidReason,
		&m.IsRefund, &m.CorrectionOf, &m.TransferFolioID,
		&m.AssignedAmount, &m.UnassignedAmount, &history,
		&m.TransactionDate, &m.PostingDate, &m.WorkingDate,
		&m.PaymentMethodID, &m.ReservationID, &m.GuestID, &m.RoomID, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &m.AssignmentHistory); err != nil {
			return nil, fmt.Errorf("failed to decode assignment history for transaction %s: %w", m.TransactionID, err)
		}
	}
	return &m, nil
}

// lockFolioTx loads and row-locks a folio inside the given transaction. The
// folio row is the serialization point for all ledger mutations.
func lockFolioTx(ctx context.Context, tx pgx.Tx, folioID string) (*models.Folio, error) {
	m, err := scanFolio(tx.QueryRow(ctx, `SELECT `+folioColumns+` FROM folios WHERE folio_id = $1 FOR UPDATE;`, folioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("folio " + folioID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock folio "+folioID, err)
	}
	return m, nil
}

// nextTransactionNumbers reserves count sequential numbers from the hotel's
// counter row and returns the first. The upsert keeps the counter row locked
// for the rest of the transaction. An aborted outer transaction leaves a gap
// in the sequence, which is acceptable: the guarantee is monotonic and
// unique, not gap-free.
func nextTransactionNumbers(ctx context.Context, tx pgx.Tx, hotelID string, count int64) (int64, error) {
	var last int64
	query := `
		INSERT INTO transaction_counters (hotel_id, last_number)
		VALUES ($1, $2)
		ON CONFLICT (hotel_id) DO UPDATE SET last_number = transaction_counters.last_number + $2
		RETURNING last_number;
	`
	if err := tx.QueryRow(ctx, query, hotelID, count).Scan(&last); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate transaction numbers for hotel "+hotelID, err)
	}
	return last - count + 1, nil
}

func insertTransactionTx(ctx context.Context, tx pgx.Tx, m models.FolioTransaction) error {
	history, err := json.Marshal(m.AssignmentHistory)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode assignment history for transaction "+m.TransactionID, err)
	}
	query := `
		INSERT INTO folio_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		        $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID, m.FolioID, m.HotelID, m.TransactionNumber, m.Type, m.Category, m.Status,
		m.Amount, m.TaxAmount, m.ServiceChargeAmount, m.DiscountAmount, m.NetAmount, m.GrossAmount, m.CurrencyCode,
		m.IsVoided, m.VoidedAt, m.VoidedBy, m.VoidReason,
		m.IsRefund, m.CorrectionOf, m.TransferFolioID,
		m.AssignedAmount, m.UnassignedAmount, history,
		m.TransactionDate, m.PostingDate, m.WorkingDate,
		m.PaymentMethodID, m.ReservationID, m.GuestID, m.RoomID, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "transaction "+m.TransactionID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

// refreshFolioAggregatesTx recomputes the folio's aggregate projection from
// its surviving non-voided entries and writes it back, all inside the caller's
// transaction. This keeps the balance invariant true at every commit point.
func refreshFolioAggregatesTx(ctx context.Context, tx pgx.Tx, folio *models.Folio, actorID string, at time.Time) (*domain.Folio, error) {
	rows, err := tx.Query(ctx, `SELECT `+transactionColumns+` FROM folio_transactions WHERE folio_id = $1 ORDER BY transaction_number ASC;`, folio.FolioID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load transactions for folio "+folio.FolioID, err)
	}
	defer rows.Close()

	var txns []domain.FolioTransaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating transaction rows", err)
	}

	agg := accounting.ComputeAggregates(txns)

	settlement := domain.SettlementUnsettled
	switch {
	case agg.TotalPayments.IsZero():
		settlement = domain.SettlementUnsettled
	case accounting.IsSettled(agg.Balance):
		settlement = domain.SettlementSettled
	default:
		settlement = domain.SettlementPartial
	}

	updateQuery := `
		UPDATE folios
		SET total_charges = $2, total_payments = $3, total_adjustments = $4, total_taxes = $5,
		    total_service_charges = $6, total_discounts = $7, balance = $8, settlement_status = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE folio_id = $1;
	`
	_, err = tx.Exec(ctx, updateQuery, folio.FolioID,
		agg.TotalCharges, agg.TotalPayments, agg.TotalAdjustments, agg.TotalTaxes,
		agg.TotalServiceCharges, agg.TotalDiscounts, agg.Balance, string(settlement),
		at, actorID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to refresh aggregates for folio "+folio.FolioID, err)
	}

	folio.TotalCharges = agg.TotalCharges
	folio.TotalPayments = agg.TotalPayments
	folio.TotalAdjustments = agg.TotalAdjustments
	folio.TotalTaxes = agg.TotalTaxes
	folio.TotalServiceCharges = agg.TotalServiceCharges
	folio.TotalDiscounts = agg.TotalDiscounts
	folio.Balance = agg.Balance
	folio.Settlement = string(settlement)
	folio.LastUpdatedAt = at
	folio.LastUpdatedBy = actorID

	refreshed := mapping.ToDomainFolio(*folio)
	return &refreshed, nil
}

// postToFolioTx appends entries to one locked folio: allocates numbers,
// inserts the rows, and refreshes the aggregates.
func postToFolioTx(ctx context.Context, tx pgx.Tx, folio *models.Folio, txns []domain.FolioTransaction) (*domain.Folio, []domain.FolioTransaction, error) {
	if folio.Status != string(domain.FolioStatusOpen) || folio.Workflow == string(domain.WorkflowFinalized) {
		return nil, nil, fmt.Errorf("%w: folio %s (status %s, workflow %s)",
			apperrors.ErrFolioNotModifiable, folio.FolioID, folio.Status, folio.Workflow)
	}

	first, err := nextTransactionNumbers(ctx, tx, folio.HotelID, int64(len(txns)))
	if err != nil {
		return nil, nil, err
	}

	stored := make([]domain.FolioTransaction, len(txns))
	actorID := ""
	at := time.Now().UTC()
	for i := range txns {
		txns[i].TransactionNumber = first + int64(i)
		if err := insertTransactionTx(ctx, tx, mapping.ToModelTransaction(txns[i])); err != nil {
			return nil, nil, err
		}
		stored[i] = txns[i]
		actorID = txns[i].CreatedBy
		at = txns[i].CreatedAt
	}

	refreshed, err := refreshFolioAggregatesTx(ctx, tx, folio, actorID, at)
	if err != nil {
		return nil, nil, err
	}
	return refreshed, stored, nil
}

// PostToFolio appends entries to a single folio in one atomic unit.
func (r *PgxTransactionRepository) PostToFolio(ctx context.Context, folioID string, txns []domain.FolioTransaction) (*domain.Folio, []domain.FolioTransaction, error) {
	if len(txns) == 0 {
		return nil, nil, fmt.Errorf("%w: no transactions to post", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	folio, err := lockFolioTx(ctx, tx, folioID)
	if err != nil {
		return nil, nil, err
	}

	refreshed, stored, err := postToFolioTx(ctx, tx, folio, txns)
	if err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return refreshed, stored, nil
}

// PostAcrossFolios appends entries to several folios in one unit of work.
// Folios are locked in sorted ID order so concurrent multi-folio postings
// cannot deadlock each other.
func (r *PgxTransactionRepository) PostAcrossFolios(ctx context.Context, postings []portsrepo.FolioPosting) (map[string]*domain.Folio, error) {
	if len(postings) == 0 {
		return nil, fmt.Errorf("%w: no postings", apperrors.ErrValidation)
	}

	sorted := make([]portsrepo.FolioPosting, len(postings))
	copy(sorted, postings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FolioID < sorted[j].FolioID })

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	result := make(map[string]*domain.Folio, len(sorted))
	for _, posting := range sorted {
		folio, err := lockFolioTx(ctx, tx, posting.FolioID)
		if err != nil {
			return nil, err
		}
		refreshed, _, err := postToFolioTx(ctx, tx, folio, posting.Transactions)
		if err != nil {
			return nil, err
		}
		result[posting.FolioID] = refreshed
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}

// SettleFolios posts the unit's payments and closes the listed folios in one
// unit of work. Folios are locked in sorted ID order. Each close re-checks
// the refreshed balance under the lock: a concurrent posting that lands
// between the caller's read and this commit fails the whole unit instead of
// closing a folio that is no longer settled.
func (r *PgxTransactionRepository) SettleFolios(ctx context.Context, unit portsrepo.SettlementUnit) (map[string]*domain.Folio, []domain.FolioTransaction, error) {
	if len(unit.Postings) == 0 && len(unit.Closes) == 0 {
		return nil, nil, fmt.Errorf("%w: empty settlement unit", apperrors.ErrValidation)
	}

	postingsByFolio := make(map[string][]domain.FolioTransaction, len(unit.Postings))
	for _, posting := range unit.Postings {
		postingsByFolio[posting.FolioID] = append(postingsByFolio[posting.FolioID], posting.Transactions...)
	}

	ids := make([]string, 0, len(postingsByFolio)+len(unit.Closes))
	seen := make(map[string]bool, len(postingsByFolio)+len(unit.Closes))
	for id := range postingsByFolio {
		seen[id] = true
		ids = append(ids, id)
	}
	for _, instr := range unit.Closes {
		if !seen[instr.FolioID] {
			seen[instr.FolioID] = true
			ids = append(ids, instr.FolioID)
		}
	}
	sort.Strings(ids)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	result := make(map[string]*domain.Folio, len(ids))
	var stored []domain.FolioTransaction
	for _, id := range ids {
		folio, err := lockFolioTx(ctx, tx, id)
		if err != nil {
			return nil, nil, err
		}
		if txns := postingsByFolio[id]; len(txns) > 0 {
			refreshed, entries, err := postToFolioTx(ctx, tx, folio, txns)
			if err != nil {
				return nil, nil, err
			}
			result[id] = refreshed
			stored = append(stored, entries...)
		} else {
			d := mapping.ToDomainFolio(*folio)
			result[id] = &d
		}
	}

	for _, instr := range unit.Closes {
		folio := result[instr.FolioID]
		if folio == nil {
			return nil, nil, fmt.Errorf("%w: close for folio %s without a locked row", apperrors.ErrValidation, instr.FolioID)
		}
		if folio.Status != domain.FolioStatusOpen {
			return nil, nil, fmt.Errorf("%w: folio %s has status %s", apperrors.ErrFolioNotModifiable, instr.FolioID, folio.Status)
		}
		if !accounting.IsSettled(folio.Balance) {
			return nil, nil, fmt.Errorf("%w: folio %s balance %s is not settled at close",
				apperrors.ErrConsistency, instr.FolioID, folio.Balance.String())
		}

		closeQuery := `
			UPDATE folios
			SET status = $2, settlement_status = $3, closed_at = $4, closed_by = $5,
			    last_updated_at = $4, last_updated_by = $5
			WHERE folio_id = $1;
		`
		if _, err := tx.Exec(ctx, closeQuery, instr.FolioID,
			string(domain.FolioStatusClosed), string(instr.Settlement), instr.ClosedAt, instr.ClosedBy); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to close folio "+instr.FolioID, err)
		}

		closedAt := instr.ClosedAt
		closedBy := instr.ClosedBy
		folio.Status = domain.FolioStatusClosed
		folio.Settlement = instr.Settlement
		folio.ClosedAt = &closedAt
		folio.ClosedBy = &closedBy
		folio.LastUpdatedAt = closedAt
		folio.LastUpdatedBy = closedBy
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return result, stored, nil
}

// VoidTransaction flags an entry voided and refreshes the owning folio's
// aggregates in the same unit. The void check runs again under the folio lock
// so two concurrent voids cannot both succeed.
func (r *PgxTransactionRepository) VoidTransaction(ctx context.Context, transactionID string, reason string, actorID string, at time.Time) (*domain.FolioTransaction, *domain.Folio, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	var folioID string
	if err := tx.QueryRow(ctx, `SELECT folio_id FROM folio_transactions WHERE transaction_id = $1;`, transactionID).Scan(&folioID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	folio, err := lockFolioTx(ctx, tx, folioID)
	if err != nil {
		return nil, nil, err
	}

	m, err := scanTransaction(tx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM folio_transactions WHERE transaction_id = $1;`, transactionID))
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to reload transaction "+transactionID, err)
	}
	current := mapping.ToDomainTransaction(*m)
	if !current.CanBeVoided() {
		return nil, nil, fmt.Errorf("%w: transaction %s cannot be voided (status %s, voided=%t)",
			apperrors.ErrValidation, transactionID, current.Status, current.IsVoided)
	}

	updateQuery := `
		UPDATE folio_transactions
		SET is_voided = TRUE, status = $2, voided_at = $3, voided_by = $4, void_reason = $5,
		    last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, transactionID, string(domain.TxnStatusVoided), at, actorID, reason); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to void transaction "+transactionID, err)
	}

	refreshed, err := refreshFolioAggregatesTx(ctx, tx, folio, actorID, at)
	if err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	current.IsVoided = true
	current.Status = domain.TxnStatusVoided
	current.VoidedAt = &at
	current.VoidedBy = &actorID
	current.VoidReason = reason
	current.LastUpdatedAt = at
	current.LastUpdatedBy = actorID
	return &current, refreshed, nil
}

// applyAssignmentTx sets assigned/unassigned and appends the history entry
// for one payment inside the caller's transaction. The history column is
// append-only: the update concatenates, it never rewrites prior entries.
func applyAssignmentTx(ctx context.Context, tx pgx.Tx, update portsrepo.AssignmentUpdate, actorID string, at time.Time) (*domain.FolioTransaction, error) {
	var folioID string
	if err := tx.QueryRow(ctx, `SELECT folio_id FROM folio_transactions WHERE transaction_id = $1;`, update.TransactionID).Scan(&folioID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + update.TransactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+update.TransactionID, err)
	}
	if _, err := lockFolioTx(ctx, tx, folioID); err != nil {
		return nil, err
	}

	entryJSON, err := json.Marshal([]models.AssignmentEntry{{
		Timestamp:      update.Entry.Timestamp,
		ActorID:        update.Entry.ActorID,
		PreviousAmount: update.Entry.PreviousAmount,
		NewAmount:      update.Entry.NewAmount,
		Notes:          update.Entry.Notes,
	}})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode assignment entry", err)
	}

	updateQuery := `
		UPDATE folio_transactions
		SET assigned_amount = $2, unassigned_amount = $3,
		    assignment_history = COALESCE(assignment_history, '[]'::jsonb) || $4::jsonb,
		    last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, update.TransactionID, update.Assigned, update.Unassigned, entryJSON, at, actorID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update assignment for transaction "+update.TransactionID, err)
	}

	m, err := scanTransaction(tx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM folio_transactions WHERE transaction_id = $1;`, update.TransactionID))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to reload transaction "+update.TransactionID, err)
	}

	updated := mapping.ToDomainTransaction(*m)
	if err := accounting.ValidateAssignment(&updated); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConsistency, err)
	}
	return &updated, nil
}

// UpdateAssignment applies one assignment change in its own unit of work.
func (r *PgxTransactionRepository) UpdateAssignment(ctx context.Context, transactionID string, assigned, unassigned decimal.Decimal, entry domain.AssignmentEntry, actorID string, at time.Time) (*domain.FolioTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	updated, err := applyAssignmentTx(ctx, tx, portsrepo.AssignmentUpdate{
		TransactionID: transactionID,
		Assigned:      assigned,
		Unassigned:    unassigned,
		Entry:         entry,
	}, actorID, at)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateAssignments applies several assignment changes in one unit of work.
// Updates are processed in transaction ID order so two concurrent bulks
// touching the same payments cannot deadlock; on any failure the whole unit
// rolls back and none of the changes are kept.
func (r *PgxTransactionRepository) UpdateAssignments(ctx context.Context, updates []portsrepo.AssignmentUpdate, actorID string, at time.Time) ([]domain.FolioTransaction, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no assignment updates", apperrors.ErrValidation)
	}

	sorted := make([]portsrepo.AssignmentUpdate, len(updates))
	copy(sorted, updates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TransactionID < sorted[j].TransactionID })

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	applied := make([]domain.FolioTransaction, 0, len(sorted))
	for _, update := range sorted {
		updated, err := applyAssignmentTx(ctx, tx, update, actorID, at)
		if err != nil {
			return nil, err
		}
		applied = append(applied, *updated)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return applied, nil
}

// FindTransactionByID fetches one ledger entry.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FolioTransaction, error) {
	m, err := scanTransaction(r.Pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM folio_transactions WHERE transaction_id = $1;`, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// FindTransactionsByFolioID returns a folio's full ledger in posting order,
// voided entries included: the ledger is append-only and shows everything.
func (r *PgxTransactionRepository) FindTransactionsByFolioID(ctx context.Context, folioID string) ([]domain.FolioTransaction, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+transactionColumns+` FROM folio_transactions WHERE folio_id = $1 ORDER BY transaction_number ASC;`, folioID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions for folio "+folioID, err)
	}
	defer rows.Close()

	var txns []domain.FolioTransaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating transaction rows", err)
	}
	return txns, nil
}

// SumUnassignedByCompany totals unassigned amounts across a company's
// non-voided payments. Voided payments never count toward the unapplied sum.
func (r *PgxTransactionRepository) SumUnassignedByCompany(ctx context.Context, hotelID, companyID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(t.unassigned_amount), 0)
		FROM folio_transactions t
		JOIN folios f ON f.folio_id = t.folio_id
		WHERE t.hotel_id = $1
		  AND f.company_id = $2
		  AND t.type = 'PAYMENT'
		  AND t.is_voided = FALSE;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, hotelID, companyID).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum unassigned payments for company "+companyID, err)
	}
	return total, nil
}
