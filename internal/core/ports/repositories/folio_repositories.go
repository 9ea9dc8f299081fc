package repositories

import (
	"context"
	"time"

	"github.com/stayfolio/pms_backend/internal/core/domain"
)

// FolioRepositoryFacade defines persistence operations for folios.
// Aggregate columns are never written directly through this interface; they
// are refreshed by the transaction repository inside its atomic units.
type FolioRepositoryFacade interface {
	SaveFolio(ctx context.Context, folio domain.Folio) error
	FindFolioByID(ctx context.Context, folioID string) (*domain.Folio, error)
	ListFoliosByReservation(ctx context.Context, reservationID string, openOnly bool) ([]domain.Folio, error)
	// CloseFolio stamps status/settlement/closed fields. Callers are expected
	// to have verified settlement first.
	CloseFolio(ctx context.Context, folioID string, settlement domain.SettlementStatus, closedBy string, closedAt time.Time) (*domain.Folio, error)
	UpdateWorkflowStatus(ctx context.Context, folioID string, workflow domain.WorkflowStatus, actorID string, at time.Time) error
	// DeleteFolio removes a folio only if it has no transactions; otherwise it
	// returns ErrValidation. Folios with history are never physically deleted.
	DeleteFolio(ctx context.Context, folioID string) error
}
