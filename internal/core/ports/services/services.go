package services

// ServiceContainer bundles the service facades for route registration.
type ServiceContainer struct {
	Folio      FolioSvcFacade
	Ledger     LedgerSvcFacade
	Settlement SettlementSvcFacade
	Assignment AssignmentSvcFacade
	Rollup     RollupSvcFacade
	Hotel      HotelSvcFacade
}
