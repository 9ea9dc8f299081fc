package services

import (
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
)

// NewServiceContainer wires the service graph from the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	hotelSvc := NewHotelService(repos.HotelRepo, repos.PaymentMethodRepo, repos.ReservationRepo)
	ledgerSvc := NewLedgerService(repos.TransactionRepo, repos.FolioRepo, hotelSvc)
	folioSvc := NewFolioService(repos.FolioRepo, repos.TransactionRepo, hotelSvc)
	settlementSvc := NewSettlementService(repos.FolioRepo, repos.TransactionRepo, ledgerSvc, hotelSvc)
	assignmentSvc := NewAssignmentService(repos.TransactionRepo)
	rollupSvc := NewRollupService(repos.RollupRepo, repos.SnapshotRepo, hotelSvc)

	return &portssvc.ServiceContainer{
		Folio:      folioSvc,
		Ledger:     ledgerSvc,
		Settlement: settlementSvc,
		Assignment: assignmentSvc,
		Rollup:     rollupSvc,
		Hotel:      hotelSvc,
	}
}
