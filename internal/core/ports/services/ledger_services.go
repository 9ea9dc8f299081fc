package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stayfolio/pms_backend/internal/core/domain"
	"github.com/stayfolio/pms_backend/internal/dto"
)

// LedgerSvcFacade is the transaction ledger: the only way monetary movements
// enter a folio. Every mutation requires an actor ID for the audit trail.
type LedgerSvcFacade interface {
	PostTransaction(ctx context.Context, folioID string, req dto.PostTransactionRequest, actorID string) (*domain.FolioTransaction, error)
	VoidTransaction(ctx context.Context, transactionID string, reason string, actorID string) (*domain.FolioTransaction, error)
	PostRefund(ctx context.Context, originalTransactionID string, amount decimal.Decimal, reason string, actorID string) (*domain.FolioTransaction, error)
	PostCorrection(ctx context.Context, originalTransactionID string, correctedAmount decimal.Decimal, reason string, actorID string) (*domain.FolioTransaction, error)
	TransferAmount(ctx context.Context, sourceFolioID, targetFolioID string, amount decimal.Decimal, notes string, actorID string) ([]domain.FolioTransaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*domain.FolioTransaction, error)
	ListFolioTransactions(ctx context.Context, folioID string) ([]domain.FolioTransaction, error)
}
