package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/services"
)

// badRequestErrors are service-level validation failures that map to 400.
var badRequestErrors = []error{
	services.ErrZeroAmount,
	services.ErrNegativeAmount,
	services.ErrCreditLimitExceeded,
	services.ErrNotVoidable,
	services.ErrNotAPayment,
	services.ErrRefundExceedsAmount,
	services.ErrSelfTransfer,
	services.ErrCurrencyMismatch,
	services.ErrVoidReasonMissing,
	services.ErrOwnerMissing,
	services.ErrAlreadyFinal,
	services.ErrFolioNotEmpty,
	services.ErrFolioNotOpen,
	services.ErrReservationNotInHouse,
	services.ErrNoOpenFolios,
	services.ErrPaymentMethodInactive,
	services.ErrForceCloseReason,
	services.ErrAssignmentNegative,
	services.ErrAssignmentExceeds,
	services.ErrPaymentVoided,
	services.ErrWrongBusinessDay,
}

// respondWithError maps service/repository errors onto HTTP responses. The
// sentinel checks come first so wrapped AppErrors keep their semantic status.
func respondWithError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDayAlreadyClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrFolioNotModifiable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConsistency):
		logger.Error("Ledger consistency violation", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		for _, sentinel := range badRequestErrors {
			if errors.Is(err, sentinel) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600 {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
