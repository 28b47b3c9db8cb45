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

// DriverHandler handles driver management endpoints
type DriverHandler struct {
	driverRepo *database.DriverRepository
	logger     *logrus.Logger
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(driverRepo *database.DriverRepository, logger *logrus.Logger) *DriverHandler {
	return &DriverHandler{
		driverRepo: driverRepo,
		logger:     logger,
	}
}

// ListDrivers lists drivers
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	limit, offset := paginationParams(c)

	drivers, err := h.driverRepo.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list drivers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list drivers"})
		return
	}

	total, err := h.driverRepo.Count()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count drivers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list drivers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drivers": drivers,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// GetDriver retrieves a driver by ID
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.driverRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load driver"})
		return
	}
	if driver == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// CreateDriver creates a driver
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req models.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	driver := &models.Driver{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PhoneNumber:   req.PhoneNumber,
		LicenseNumber: req.LicenseNumber,
	}
	if err := h.driverRepo.Create(driver); err != nil {
		if errors.Is(err, database.ErrDuplicateDriverDetails) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to create driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

// UpdateDriver replaces a driver's fields
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var req models.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	driver, err := h.driverRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load driver"})
		return
	}
	if driver == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	driver.FirstName = req.FirstName
	driver.LastName = req.LastName
	driver.PhoneNumber = req.PhoneNumber
	driver.LicenseNumber = req.LicenseNumber

	if err := h.driverRepo.Update(driver); err != nil {
		if errors.Is(err, database.ErrDuplicateDriverDetails) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to update driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// DeleteDriver removes a driver
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	if err := h.driverRepo.Delete(c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to delete driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete driver"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
