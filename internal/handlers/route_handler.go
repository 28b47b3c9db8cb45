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

// featuredRouteLimit caps the landing-page featured routes list
const featuredRouteLimit = 6

// RouteHandler handles route catalogue endpoints
type RouteHandler struct {
	routeRepo *database.RouteRepository
	logger    *logrus.Logger
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeRepo *database.RouteRepository, logger *logrus.Logger) *RouteHandler {
	return &RouteHandler{
		routeRepo: routeRepo,
		logger:    logger,
	}
}

// GetFeaturedRoutes returns the routes highlighted on the landing page
// @Router /api/v1/routes/featured [get]
func (h *RouteHandler) GetFeaturedRoutes(c *gin.Context) {
	routes, err := h.routeRepo.GetFeatured(featuredRouteLimit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load featured routes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load featured routes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GetOrigins returns the distinct set of trip origins
// @Router /api/v1/locations/origins [get]
func (h *RouteHandler) GetOrigins(c *gin.Context) {
	origins, err := h.routeRepo.DistinctOrigins()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load origins")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load origins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"origins": origins})
}

// GetDestinations returns the distinct set of trip destinations
// @Router /api/v1/locations/destinations [get]
func (h *RouteHandler) GetDestinations(c *gin.Context) {
	destinations, err := h.routeRepo.DistinctDestinations()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load destinations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load destinations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"destinations": destinations})
}

// ListRoutes lists routes for the admin dashboard
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	limit, offset := paginationParams(c)

	routes, err := h.routeRepo.List(limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list routes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list routes"})
		return
	}

	total, err := h.routeRepo.Count()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count routes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list routes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"routes": routes,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetRoute retrieves a route by ID
func (h *RouteHandler) GetRoute(c *gin.Context) {
	route, err := h.routeRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load route"})
		return
	}
	if route == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": route})
}

// CreateRoute creates a route
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route := &models.Route{
		Name:       req.Name,
		Segments:   req.Segments,
		IsFeatured: req.IsFeatured,
		ImageURL:   req.ImageURL,
	}
	if err := h.routeRepo.Create(route); err != nil {
		if errors.Is(err, database.ErrDuplicateRouteName) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to create route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create route"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"route": route})
}

// UpdateRoute replaces a route's fields
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := h.routeRepo.GetByID(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load route"})
		return
	}
	if route == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		return
	}

	route.Name = req.Name
	route.Segments = req.Segments
	route.IsFeatured = req.IsFeatured
	route.ImageURL = req.ImageURL

	if err := h.routeRepo.Update(route); err != nil {
		if errors.Is(err, database.ErrDuplicateRouteName) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to update route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update route"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": route})
}

// DeleteRoute removes a route
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	if err := h.routeRepo.Delete(c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to delete route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete route"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
