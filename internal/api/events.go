package api

import (
	"net/http" // HTTP status codes
	"time"     // Event dates

	"eventpay/internal/domain"  // Event statuses
	"eventpay/internal/service" // Catalog service
	"eventpay/internal/store"   // Editable event fields

	"github.com/gin-gonic/gin" // Gin web framework
)

// EventRequest is the body of event create and update
type EventRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"` // RFC 3339
	Location    string    `json:"location"`
	ImageBase64 *string   `json:"image_base64"`
}

func (r EventRequest) fields() store.EventFields {
	return store.EventFields{
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
		Location:    r.Location,
		ImageBase64: r.ImageBase64,
	}
}

// ListEventsHandler lists events, optionally filtered by ?status=
func ListEventsHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")
		if status != "" && status != domain.EventActive && status != domain.EventFinished {
			badRequest(c, "Unknown event status")
			return
		}
		list, err := catalog.ListEvents(c.Request.Context(), status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func GetEventHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ev, err := catalog.GetEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ev)
	}
}

// CreateEventHandler creates an event organized by the current admin
func CreateEventHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := mustUser(c)
		if !ok {
			return
		}
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		ev, err := catalog.CreateEvent(c.Request.Context(), user, req.fields())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, ev)
	}
}

func UpdateEventHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		ev, err := catalog.UpdateEvent(c.Request.Context(), c.Param("id"), req.fields())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ev)
	}
}

func DeleteEventHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
	}
}
