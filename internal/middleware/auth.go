package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"eventpay/internal/apperr"  // Error kinds
	"eventpay/internal/domain"  // Importing domain models
	"eventpay/internal/service" // Token verification

	"github.com/gin-gonic/gin" // Gin web framework
)

// CurrentUserKey is the gin context key holding the authenticated *domain.User
const CurrentUserKey = "currentUser"

// Authenticate validates the bearer token and loads the current user record
func Authenticate(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		user, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			// Token invalid, expired, or its user no longer exists
			c.AbortWithStatusJSON(apperr.HTTPStatus(apperr.KindOf(err)), gin.H{"error": apperr.Message(err)})
			return
		}
		c.Set(CurrentUserKey, user) // Store user in context
		c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}
