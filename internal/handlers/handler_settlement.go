package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/dto"
	"github.com/stayfolio/pms_backend/internal/middleware"
)

// settlementHandler handles HTTP requests for checkout and folio closing.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

func newSettlementHandler(settlementService portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: settlementService}
}

func registerSettlementRoutes(rg *gin.RouterGroup, settlementSvc portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementSvc)

	folios := rg.Group("/folios")
	folios.GET("/:folioID/checkout/eligibility", h.checkEligibility)
	folios.POST("/:folioID/checkout", h.checkout)
	folios.POST("/:folioID/force-close", h.forceClose)

	reservations := rg.Group("/reservations")
	reservations.POST("/:reservationID/checkout", h.reservationCheckout)
}

func (h *settlementHandler) checkEligibility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	reasons, err := h.settlementService.ValidateCheckoutEligibility(c.Request.Context(), folioID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.EligibilityResponse{
		FolioID:  folioID,
		Eligible: len(reasons) == 0,
		Reasons:  reasons,
	})
}

func (h *settlementHandler) checkout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for checkout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.settlementService.ProcessCheckout(c.Request.Context(), folioID, req, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckoutResultResponse(result))
}

func (h *settlementHandler) reservationCheckout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reservationID := c.Param("reservationID")

	var req dto.ReservationCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.settlementService.ProcessReservationCheckout(c.Request.Context(), reservationID, req.Payments, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	resp := dto.ReservationCheckoutResponse{
		ReservationID:         result.ReservationID,
		ReservationCheckedOut: result.ReservationCheckedOut,
	}
	for i := range result.FolioResults {
		resp.FolioResults = append(resp.FolioResults, dto.ToCheckoutResultResponse(&result.FolioResults[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *settlementHandler) forceClose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	folioID := c.Param("folioID")

	var req dto.ForceCloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.settlementService.ForceCloseFolio(c.Request.Context(), folioID, req.Reason, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckoutResultResponse(result))
}
