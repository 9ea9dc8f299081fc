package services

import (
	"context"

	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/dto"
)

// FolioSvcFacade manages folio lifecycle and the balance-aggregator reads.
type FolioSvcFacade interface {
	CreateFolio(ctx context.Context, req dto.CreateFolioRequest, actorID string) (*domain.Folio, error)
	GetFolioByID(ctx context.Context, folioID string, includeTransactions bool) (*domain.Folio, error)
	GetSettlementSummary(ctx context.Context, folioID string) (*domain.SettlementSummary, error)
	FinalizeFolio(ctx context.Context, folioID string, actorID string) error
	// DeleteFolio is blocked once the folio has any transactions.
	DeleteFolio(ctx context.Context, folioID string) error
}
