package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayfolio/pms_backend/internal/core/domain"
	portssvc "github.com/stayfolio/pms_backend/internal/core/ports/services"
	"github.com/stayfolio/pms_backend/internal/dto"
	"github.com/stayfolio/pms_backend/internal/middleware"
)

// rollupHandler handles HTTP requests for the daily ledger rollups and the
// night-audit day close.
type rollupHandler struct {
	rollupService portssvc.RollupSvcFacade
	hotelService  portssvc.HotelSvcFacade
}

func newRollupHandler(rollupService portssvc.RollupSvcFacade, hotelService portssvc.HotelSvcFacade) *rollupHandler {
	return &rollupHandler{rollupService: rollupService, hotelService: hotelService}
}

func registerRollupRoutes(rg *gin.RouterGroup, rollupSvc portssvc.RollupSvcFacade, hotelSvc portssvc.HotelSvcFacade) {
	h := newRollupHandler(rollupSvc, hotelSvc)

	hotels := rg.Group("/hotels")
	hotels.GET("/:hotelID/rollups/:ledgerKind", h.getRollup)
	hotels.GET("/:hotelID/snapshots/:ledgerKind", h.getSnapshot)
	hotels.POST("/:hotelID/day-close", h.runDayClose)
	hotels.GET("/:hotelID/working-date", h.getWorkingDate)
}

// parseBusinessDate reads the businessDate query parameter as YYYY-MM-DD.
func parseBusinessDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("businessDate")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "businessDate query parameter is required (YYYY-MM-DD)"})
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid businessDate: " + raw})
		return time.Time{}, false
	}
	return date, true
}

func parseLedgerKind(c *gin.Context) (domain.LedgerKind, bool) {
	kind := domain.LedgerKind(c.Param("ledgerKind"))
	switch kind {
	case domain.LedgerGuest, domain.LedgerCity, domain.LedgerAdvanceDeposit:
		return kind, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "ledger kind must be GUEST, CITY, or ADVANCE_DEPOSIT"})
	return "", false
}

func (h *rollupHandler) getRollup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	hotelID := c.Param("hotelID")

	kind, ok := parseLedgerKind(c)
	if !ok {
		return
	}
	date, ok := parseBusinessDate(c)
	if !ok {
		return
	}

	var (
		rollup *domain.LedgerRollup
		err    error
	)
	if c.Query("fromScratch") == "true" {
		rollup, err = h.rollupService.RecomputeFromScratch(c.Request.Context(), hotelID, date, kind)
	} else {
		rollup, err = h.rollupService.ComputeRollup(c.Request.Context(), hotelID, date, kind)
	}
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRollupResponse(rollup))
}

func (h *rollupHandler) getSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	hotelID := c.Param("hotelID")

	kind, ok := parseLedgerKind(c)
	if !ok {
		return
	}
	date, ok := parseBusinessDate(c)
	if !ok {
		return
	}

	snapshot, err := h.rollupService.GetSnapshot(c.Request.Context(), hotelID, date, kind)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *rollupHandler) runDayClose(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	hotelID := c.Param("hotelID")

	date, ok := parseBusinessDate(c)
	if !ok {
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rollups, err := h.rollupService.RunDayClose(c.Request.Context(), hotelID, date, actorID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	resp := dto.DayCloseResponse{HotelID: hotelID, BusinessDate: date}
	for i := range rollups {
		resp.Rollups = append(resp.Rollups, dto.ToRollupResponse(&rollups[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *rollupHandler) getWorkingDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	hotelID := c.Param("hotelID")

	workingDate, err := h.hotelService.GetCurrentWorkingDate(c.Request.Context(), hotelID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotelID": hotelID, "workingDate": workingDate.Format("2006-01-02")})
}
