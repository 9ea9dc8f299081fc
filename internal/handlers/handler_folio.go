package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/dto"
	"github.com/stayfolio/pms_backend/internal/middleware"
)

// folioHandler handles HTTP requests for folio lifecycle and balance reads.
type folioHandler struct {
	folioService portssvc.FolioSvcFacade
}

func newFolioHandler(folioService portssvc.FolioSvcFacade) *folioHandler {
	return &folioHandler{folioService: folioService}
}

func registerFolioRoutes(rg *gin.RouterGroup, folioSvc portssvc.FolioSvcFacade) {
	h := newFolioHandler(folioSvc)
	folios := rg.Group("/folios")
	folios.POST("", h.createFolio)
	folios.GET("/:folioID", h.getFolio)
	folios.GET("/:folioID/settlement-summary", h.getSettlementSummary)
	folios.POST("/:folioID/finalize", h.finalizeFolio)
	folios.DELETE("/:folioID", h.deleteFolio)
}

func (h *folioHandler) createFolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFolio", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	folio, err := h.folioService.CreateFolio(c.Request.Context(), req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToFolioResponse(folio))
}

func (h *folioHandler) getFolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")
	includeTxns := c.Query("includeTransactions") == "true"

	folio, err := h.folioService.GetFolioByID(c.Request.Context(), folioID, includeTxns)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	resp := gin.H{"folio": dto.ToFolioResponse(folio)}
	if includeTxns {
		resp["transactions"] = dto.ToTransactionResponses(folio.Transactions)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *folioHandler) getSettlementSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	summary, err := h.folioService.GetSettlementSummary(c.Request.Context(), folioID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementSummaryResponse(summary))
}

func (h *folioHandler) finalizeFolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.folioService.FinalizeFolio(c.Request.Context(), folioID, actorID); err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"folioID": folioID, "workflowStatus": "FINALIZED"})
}

func (h *folioHandler) deleteFolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	if err := h.folioService.DeleteFolio(c.Request.Context(), folioID); err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
