package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/models"
)

// VehicleHandler handles fleet management endpoints
type VehicleHandler struct {
	vehicleRepo *database.VehicleRepository
	logger      *logrus.Logger
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleRepo *database.VehicleRepository, logger *logrus.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// ListVehicles lists vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	limit, offset := paginationParams(c)

	vehicles, err := h.vehicleRepo.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list vehicles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vehicles"})
		return
	}

	total, err := h.vehicleRepo.Count()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count vehicles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetVehicle retrieves a vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vehicle"})
		return
	}
	if vehicle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// CreateVehicle creates a vehicle
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle := &models.Vehicle{
		Name:        req.Name,
		PlateNumber: req.PlateNumber,
		Capacity:    req.Capacity,
		CarType:     req.CarType,
		Amenities:   req.Amenities,
	}
	if err := h.vehicleRepo.Create(vehicle); err != nil {
		if errors.Is(err, database.ErrDuplicatePlateNumber) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to create vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// UpdateVehicle replaces a vehicle's fields
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.vehicleRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vehicle"})
		return
	}
	if vehicle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	vehicle.Name = req.Name
	vehicle.PlateNumber = req.PlateNumber
	vehicle.Capacity = req.Capacity
	vehicle.CarType = req.CarType
	vehicle.Amenities = req.Amenities

	if err := h.vehicleRepo.Update(vehicle); err != nil {
		if errors.Is(err, database.ErrDuplicatePlateNumber) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to update vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// DeleteVehicle removes a vehicle
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleRepo.Delete(c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to delete vehicle")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
