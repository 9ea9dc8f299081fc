package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full set of pgx-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		FolioRepo:         newPgxFolioRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		RollupRepo:        newPgxRollupRepository(dbPool),
		SnapshotRepo:      newPgxSnapshotRepository(dbPool),
		HotelRepo:         newPgxHotelRepository(dbPool),
		PaymentMethodRepo: newPgxPaymentMethodRepository(dbPool),
		ReservationRepo:   newPgxReservationRepository(dbPool),
	}
}
