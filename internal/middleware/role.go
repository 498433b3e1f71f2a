package middleware

import (
	"net/http" // HTTP status codes

	"eventpay/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// Allows reports whether the user holds the given role. Admins hold every role.
func Allows(user *domain.User, role string) bool {
	if user == nil {
		return false
	}
	return user.Role == role || user.Role == domain.RoleAdmin
}

// RequireRole rejects requests whose current user lacks the role.
// It must run after Authenticate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !Allows(user, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
