package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eightstarluxury/transit-backend/internal/models"
	"github.com/eightstarluxury/transit-backend/internal/services"
)

// AdminAuthHandler handles back-office authentication
type AdminAuthHandler struct {
	auth   *services.AdminAuthService
	logger *logrus.Logger
}

// NewAdminAuthHandler creates a new AdminAuthHandler
func NewAdminAuthHandler(auth *services.AdminAuthService, logger *logrus.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// Login authenticates an operator and returns a session token
// @Router /api/v1/admin/login [post]
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.auth.Login(&req, c.GetHeader("User-Agent"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
