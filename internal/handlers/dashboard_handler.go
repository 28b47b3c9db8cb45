package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/database"
)

// DashboardHandler serves aggregate statistics for the admin dashboard
type DashboardHandler struct {
	bookingRepo *database.BookingRepository
	tripRepo    *database.TripRepository
	logger      *logrus.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(
	bookingRepo *database.BookingRepository,
	tripRepo *database.TripRepository,
	logger *logrus.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		bookingRepo: bookingRepo,
		tripRepo:    tripRepo,
		logger:      logger,
	}
}

// GetStats returns revenue and volume counters for the dashboard header
// @Router /api/v1/admin/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	revenue, err := h.bookingRepo.TotalRevenue()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute revenue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	totalBookings, err := h.bookingRepo.Count()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	todayBookings, err := h.bookingRepo.CountToday()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count today's bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	pendingBookings, err := h.bookingRepo.CountPending()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count pending bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	scheduledTrips, err := h.tripRepo.CountScheduled()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count scheduled trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalRevenue":    revenue,
		"totalBookings":   totalBookings,
		"todayBookings":   todayBookings,
		"pendingBookings": pendingBookings,
		"scheduledTrips":  scheduledTrips,
	})
}
