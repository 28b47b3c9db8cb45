package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/models"
	"github.com/eightstarluxury/transit-backend/internal/services"
)

// TripHandler handles public trip search and admin trip management
type TripHandler struct {
	tripRepo *database.TripRepository
	search   *services.SearchService
	logger   *logrus.Logger
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(tripRepo *database.TripRepository, search *services.SearchService, logger *logrus.Logger) *TripHandler {
	return &TripHandler{
		tripRepo: tripRepo,
		search:   search,
		logger:   logger,
	}
}

// SearchTrips finds upcoming trips covering an origin/destination pair
// @Router /api/v1/trips/search [get]
func (h *TripHandler) SearchTrips(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	trips, err := h.search.SearchTrips(origin, destination, date)
	if err != nil {
		h.logger.WithError(err).Error("Trip search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Trip search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GetTrip retrieves a trip with its route, vehicle and driver details
// @Router /api/v1/trips/:id [get]
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripRepo.GetDetails(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trip"})
		return
	}
	if trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// ListTrips lists trips for the admin dashboard
func (h *TripHandler) ListTrips(c *gin.Context) {
	limit, offset := paginationParams(c)

	trips, err := h.tripRepo.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trips"})
		return
	}

	total, err := h.tripRepo.Count()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count trips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trips":  trips,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// CreateTrip creates a trip
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.Status != "" && !models.ValidTripStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip status"})
		return
	}

	trip := &models.Trip{
		RouteID:       req.RouteID,
		VehicleID:     req.VehicleID,
		DriverID:      req.DriverID,
		DepartureTime: req.DepartureTime,
		Status:        req.Status,
	}
	if err := h.tripRepo.Create(trip); err != nil {
		h.logger.WithError(err).Error("Failed to create trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// UpdateTrip updates a trip. Once seats are sold the trip's structure is
// frozen: only the driver and the status may change.
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	var req models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if !models.ValidTripStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip status"})
		return
	}

	trip, err := h.tripRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trip"})
		return
	}
	if trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}

	if len(trip.BookedSeats) > 0 {
		structuralChange := req.RouteID != trip.RouteID ||
			req.VehicleID != trip.VehicleID ||
			!req.DepartureTime.Equal(trip.DepartureTime)
		if structuralChange {
			respondServiceError(c, services.ErrTripHasBookings)
			return
		}
	}

	trip.RouteID = req.RouteID
	trip.VehicleID = req.VehicleID
	trip.DriverID = req.DriverID
	trip.DepartureTime = req.DepartureTime
	trip.Status = req.Status

	if err := h.tripRepo.Update(trip); err != nil {
		h.logger.WithError(err).Error("Failed to update trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// DeleteTrip removes a trip that has no sold seats
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	trip, err := h.tripRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load trip"})
		return
	}
	if trip == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trip not found"})
		return
	}
	if len(trip.BookedSeats) > 0 {
		respondServiceError(c, services.ErrTripHasBookings)
		return
	}

	if err := h.tripRepo.Delete(trip.ID); err != nil {
		h.logger.WithError(err).Error("Failed to delete trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trip"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
