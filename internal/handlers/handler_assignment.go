package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/dto"
	"github.com/stayfolio/pms_backend/internal/middleware"
)

// assignmentHandler handles HTTP requests for company payment assignment.
type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

func newAssignmentHandler(assignmentService portssvc.AssignmentSvcFacade) *assignmentHandler {
	return &assignmentHandler{assignmentService: assignmentService}
}

func registerAssignmentRoutes(rg *gin.RouterGroup, assignmentSvc portssvc.AssignmentSvcFacade) {
	h := newAssignmentHandler(assignmentSvc)

	rg.PUT("/transactions/:transactionID/assignment", h.assignPayment)
	rg.POST("/assignments/bulk", h.bulkAssign)
	rg.GET("/hotels/:hotelID/companies/:companyID/unassigned-payments", h.unassignedAmount)
}

func (h *assignmentHandler) assignPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.AssignPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.assignmentService.AssignPayment(c.Request.Context(), transactionID, req.AssignedAmount, req.Notes, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *assignmentHandler) bulkAssign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	applied, err := h.assignmentService.BulkAssign(c.Request.Context(), req.Mappings, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": dto.ToTransactionResponses(applied)})
}

func (h *assignmentHandler) unassignedAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	hotelID := c.Param("hotelID")
	companyID := c.Param("companyID")

	total, err := h.assignmentService.GetUnassignedPaymentAmount(c.Request.Context(), companyID, hotelID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnassignedAmountResponse{
		CompanyID:        companyID,
		HotelID:          hotelID,
		UnassignedAmount: total,
	})
}
