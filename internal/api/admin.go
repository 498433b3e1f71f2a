package api

import (
	"net/http" // HTTP status codes

	"eventpay/internal/service" // Order service

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListAllOrdersHandler returns every order, newest first
func ListAllOrdersHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ReportHandler returns sales totals over paid orders
func ReportHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := orders.Report(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
