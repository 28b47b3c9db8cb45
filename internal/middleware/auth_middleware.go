package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eightstarluxury/transit-backend/pkg/jwt"
)

const adminContextKey = "admin"

// AdminContext carries the authenticated operator's identity through a request
type AdminContext struct {
	AdminID string
	Email   string
	Role    string
}

// AdminAuth validates the Bearer token on admin routes and stores the
// operator identity in the request context.
func AdminAuth(jwtSvc *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(adminContextKey, &AdminContext{
			AdminID: claims.AdminID,
			Email:   claims.Email,
			Role:    claims.Role,
		})
		c.Next()
	}
}

// GetAdminContext retrieves the authenticated operator from the request
// context. Returns nil outside of AdminAuth-protected routes.
func GetAdminContext(c *gin.Context) *AdminContext {
	value, exists := c.Get(adminContextKey)
	if !exists {
		return nil
	}
	admin, ok := value.(*AdminContext)
	if !ok {
		return nil
	}
	return admin
}
