package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/middleware"
	"github.com/eightstarluxury/transit-backend/internal/models"
	"github.com/eightstarluxury/transit-backend/internal/services"
)

// BookingHandler handles booking intake, lookup and admin management
type BookingHandler struct {
	intake         *services.BookingIntakeService
	reconciliation *services.ReconciliationService
	bookingRepo    *database.BookingRepository
	logger         *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(
	intake *services.BookingIntakeService,
	reconciliation *services.ReconciliationService,
	bookingRepo *database.BookingRepository,
	logger *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		intake:         intake,
		reconciliation: reconciliation,
		bookingRepo:    bookingRepo,
		logger:         logger,
	}
}

// CreateBooking accepts a public booking request and returns the pending
// booking with the payment checkout URL
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.intake.CreateBooking(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":          result.Booking,
		"authorizationUrl": result.AuthorizationURL,
	})
}

// FindBookings looks up paid bookings by reference, email or phone number
// @Router /api/v1/bookings/find [post]
func (h *BookingHandler) FindBookings(c *gin.Context) {
	var req models.FindBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	bookings, err := h.bookingRepo.FindPaidByIdentifier(req.Identifier, 10)
	if err != nil {
		h.logger.WithError(err).Error("Failed to look up bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListBookings lists bookings for the admin dashboard, newest first
func (h *BookingHandler) ListBookings(c *gin.Context) {
	limit, offset := paginationParams(c)

	bookings, err := h.bookingRepo.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	total, err := h.bookingRepo.Count()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetBooking retrieves a single booking by internal ID
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load booking"})
		return
	}
	if booking == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// UpdateBookingStatus lets an operator settle a booking manually or cancel
// an unsettled one
// @Router /api/v1/admin/bookings/:id/status [put]
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	admin := middleware.GetAdminContext(c)
	if admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var booking *models.Booking
	var err error
	switch req.PaymentStatus {
	case models.PaymentStatusPaid:
		booking, err = h.reconciliation.MarkPaidManually(c.Param("id"), admin.AdminID)
	case models.PaymentStatusCancelled:
		booking, err = h.reconciliation.CancelBooking(c.Param("id"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentStatus must be 'paid' or 'cancelled'"})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// paginationParams extracts limit/offset query parameters with sane bounds
func paginationParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
