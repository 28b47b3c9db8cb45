package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/eightstarluxury/transit-backend/internal/database"
	"github.com/eightstarluxury/transit-backend/internal/models"
	"github.com/eightstarluxury/transit-backend/internal/utils"
	"github.com/eightstarluxury/transit-backend/pkg/jwt"
)

// AdminAuthService authenticates back-office operators
type AdminAuthService struct {
	adminRepo *database.AdminUserRepository
	jwtSvc    *jwt.Service
	logger    *logrus.Logger
}

// NewAdminAuthService creates a new AdminAuthService
func NewAdminAuthService(adminRepo *database.AdminUserRepository, jwtSvc *jwt.Service, logger *logrus.Logger) *AdminAuthService {
	return &AdminAuthService{
		adminRepo: adminRepo,
		jwtSvc:    jwtSvc,
		logger:    logger,
	}
}

// Login verifies credentials and issues a session token. The caller's
// User-Agent is recorded in the audit log.
func (s *AdminAuthService) Login(req *models.LoginRequest, userAgent string) (*models.LoginResponse, error) {
	user, err := s.adminRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.WithFields(logrus.Fields{
			"email":  req.Email,
			"client": utils.FormatUserAgent(userAgent),
		}).Warn("Failed admin login attempt")
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"admin_id": user.ID,
		"email":    user.Email,
		"client":   utils.FormatUserAgent(userAgent),
	}).Info("Admin logged in")

	return &models.LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
