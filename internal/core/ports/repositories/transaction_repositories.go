package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// FolioPosting groups transactions destined for one folio inside a
// multi-folio atomic unit (transfers, reservation checkout).
type FolioPosting struct {
	FolioID      string
	Transactions []domain.FolioTransaction
}

// FolioCloseInstruction marks one folio to be closed inside a settlement
// unit. The close only succeeds if the folio's refreshed balance is settled
// within tolerance at commit time.
type FolioCloseInstruction struct {
	FolioID    string
	Settlement domain.SettlementStatus
	ClosedBy   string
	ClosedAt   time.Time
}

// SettlementUnit stages a reservation-level checkout: the settling payments
// to post and the folios to close afterwards. The whole unit commits
// together or not at all.
type SettlementUnit struct {
	Postings []FolioPosting
	Closes   []FolioCloseInstruction
}

// AssignmentUpdate stages one payment's new assignment split inside a bulk
// assignment unit.
type AssignmentUpdate struct {
	TransactionID string
	Assigned      decimal.Decimal
	Unassigned    decimal.Decimal
	Entry         domain.AssignmentEntry
}

// TransactionRepositoryFacade owns the atomic units of the ledger: every
// method that writes begins a database transaction, locks the affected folio
// row(s) FOR UPDATE, allocates transaction numbers from the per-hotel counter,
// refreshes the folio aggregates from the surviving non-voided entries, and
// commits — or rolls the whole unit back.
type TransactionRepositoryFacade interface {
	// PostToFolio appends entries to one folio. Returns the stored entries
	// (with allocated transaction numbers) and the refreshed folio.
	PostToFolio(ctx context.Context, folioID string, txns []domain.FolioTransaction) (*domain.Folio, []domain.FolioTransaction, error)
	// PostAcrossFolios appends entries to several folios in one unit of work.
	// Folios are locked in sorted ID order to avoid lock cycles. If any folio
	// rejects its postings, nothing is kept.
	PostAcrossFolios(ctx context.Context, postings []FolioPosting) (map[string]*domain.Folio, error)
	// SettleFolios posts the unit's payments and closes the listed folios in
	// one unit of work. If any posting or close fails, no folio shows any new
	// transaction or state change. Returns the refreshed folios and the stored
	// entries with allocated transaction numbers.
	SettleFolios(ctx context.Context, unit SettlementUnit) (map[string]*domain.Folio, []domain.FolioTransaction, error)
	// VoidTransaction flags the entry voided and refreshes the owning folio's
	// aggregates in the same unit.
	VoidTransaction(ctx context.Context, transactionID string, reason string, actorID string, at time.Time) (*domain.FolioTransaction, *domain.Folio, error)
	// UpdateAssignment sets assigned/unassigned and appends the history entry.
	// The history column is append-only; prior entries are never rewritten.
	UpdateAssignment(ctx context.Context, transactionID string, assigned, unassigned decimal.Decimal, entry domain.AssignmentEntry, actorID string, at time.Time) (*domain.FolioTransaction, error)
	// UpdateAssignments applies several assignment changes in one unit of
	// work; on any failure none of them are kept. Updates are processed in
	// transaction ID order to avoid lock cycles between concurrent bulks.
	UpdateAssignments(ctx context.Context, updates []AssignmentUpdate, actorID string, at time.Time) ([]domain.FolioTransaction, error)

	FindTransactionByID(ctx context.Context, transactionID string) (*domain.FolioTransaction, error)
	FindTransactionsByFolioID(ctx context.Context, folioID string) ([]domain.FolioTransaction, error)
	// SumUnassignedByCompany totals unassignedAmount across the company's
	// non-voided city-ledger payment transactions.
	SumUnassignedByCompany(ctx context.Context, hotelID, companyID string) (decimal.Decimal, error)
}
