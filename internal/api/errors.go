package api

import (
	"net/http" // HTTP status codes

	"eventpay/internal/apperr"     // Error kinds
	"eventpay/internal/domain"     // Importing domain models
	"eventpay/internal/middleware" // Current user lookup

	"github.com/gin-gonic/gin"       // Gin web framework
	log "github.com/sirupsen/logrus" // Structured logging
)

// respondError writes err as {"error": message} with the status of its kind
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		// Internal details are logged, never returned
		log.WithFields(log.Fields{"method": c.Request.Method, "path": c.FullPath()}).WithError(err).Error("Request failed")
	}
	c.JSON(apperr.HTTPStatus(kind), gin.H{"error": apperr.Message(err)})
}

// badRequest answers 400 with the given message
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// mustUser returns the authenticated user, answering 401 when there is none
func mustUser(c *gin.Context) (*domain.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return user, ok
}
