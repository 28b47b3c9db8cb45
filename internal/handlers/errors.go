package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eightstarluxury/transit-backend/internal/services"
)

// respondServiceError maps service sentinel errors onto HTTP responses.
// Anything unrecognized is a 500 with a generic body.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTripNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTripGone):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInsufficientCapacity),
		errors.Is(err, services.ErrSeatTaken),
		errors.Is(err, services.ErrPriceMismatch),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrTripHasBookings):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidSegments),
		errors.Is(err, services.ErrInvalidTotal),
		errors.Is(err, services.ErrAmountMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidSignature):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPaymentGateway):
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
