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

// AddOnHandler handles add-on catalogue endpoints
type AddOnHandler struct {
	addOnRepo *database.AddOnRepository
	logger    *logrus.Logger
}

// NewAddOnHandler creates a new AddOnHandler
func NewAddOnHandler(addOnRepo *database.AddOnRepository, logger *logrus.Logger) *AddOnHandler {
	return &AddOnHandler{
		addOnRepo: addOnRepo,
		logger:    logger,
	}
}

// ListActiveAddOns returns the add-ons offered during public booking
// @Router /api/v1/addons [get]
func (h *AddOnHandler) ListActiveAddOns(c *gin.Context) {
	addOns, err := h.addOnRepo.ListActive()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list add-ons")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list add-ons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addOns": addOns})
}

// ListAddOns lists all add-ons for the admin dashboard
func (h *AddOnHandler) ListAddOns(c *gin.Context) {
	limit, offset := paginationParams(c)

	addOns, err := h.addOnRepo.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list add-ons")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list add-ons"})
		return
	}

	total, err := h.addOnRepo.Count()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count add-ons")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list add-ons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"addOns": addOns,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// CreateAddOn creates an add-on
func (h *AddOnHandler) CreateAddOn(c *gin.Context) {
	var req models.CreateAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	addOn := &models.AddOn{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		PricingType: req.PricingType,
		IsActive:    isActive,
	}
	if err := h.addOnRepo.Create(addOn); err != nil {
		h.logger.WithError(err).Error("Failed to create add-on")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create add-on"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"addOn": addOn})
}

// UpdateAddOn replaces an add-on's fields
func (h *AddOnHandler) UpdateAddOn(c *gin.Context) {
	var req models.CreateAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addOn, err := h.addOnRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load add-on")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load add-on"})
		return
	}
	if addOn == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Add-on not found"})
		return
	}

	addOn.Name = req.Name
	addOn.Description = req.Description
	addOn.Price = req.Price
	addOn.PricingType = req.PricingType
	if req.IsActive != nil {
		addOn.IsActive = *req.IsActive
	}

	if err := h.addOnRepo.Update(addOn); err != nil {
		h.logger.WithError(err).Error("Failed to update add-on")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update add-on"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addOn": addOn})
}

// DeleteAddOn removes an add-on. Bookings keep their price snapshots, so
// deleting an add-on never changes what settled customers owe.
func (h *AddOnHandler) DeleteAddOn(c *gin.Context) {
	if err := h.addOnRepo.Delete(c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Add-on not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to delete add-on")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete add-on"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
