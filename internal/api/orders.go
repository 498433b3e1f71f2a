package api

import (
	"net/http" // HTTP status codes

	"eventpay/internal/service" // Order service
	"eventpay/internal/utils"   // QR rendering

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money amounts
)

// qrSize is the edge length in pixels of rendered redemption codes
const qrSize = 256

// OrderItemRequest is one line of POST /orders. Name and price are taken as sent.
type OrderItemRequest struct {
	ProductID   string          `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// PlaceOrderRequest is the body of POST /orders
type PlaceOrderRequest struct {
	EventID    string             `json:"event_id" binding:"required"`
	Items      []OrderItemRequest `json:"items"`
	UseCredits decimal.Decimal    `json:"use_credits"` // Omitted means zero
}

// ValidateQRRequest is the optional body of POST /orders/validate-qr
type ValidateQRRequest struct {
	QRCode string `json:"qr_code"`
}

// PlaceOrderHandler prices and settles an order for the current user
func PlaceOrderHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := mustUser(c)
		if !ok {
			return
		}
		var req PlaceOrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		in := service.PlaceOrderInput{EventID: req.EventID, UseCredits: req.UseCredits}
		for _, it := range req.Items {
			in.Items = append(in.Items, service.OrderLine{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
			})
		}
		order, err := orders.Place(c.Request.Context(), user, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// ListMyOrdersHandler lists the current user's orders
func ListMyOrdersHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := mustUser(c)
		if !ok {
			return
		}
		list, err := orders.ListMine(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetOrderHandler returns one order to its owner or an admin
func GetOrderHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := mustUser(c)
		if !ok {
			return
		}
		order, err := orders.Get(c.Request.Context(), user, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// OrderQRHandler renders the order's redemption code as a PNG
func OrderQRHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := mustUser(c)
		if !ok {
			return
		}
		order, err := orders.Get(c.Request.Context(), user, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		png, err := utils.QRCodePNG(order.QRCode, qrSize)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}

// ValidateOrderHandler redeems an order by id; a second attempt is a 409
func ValidateOrderHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.ValidateByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order validated", "order": order})
	}
}

// ValidateQRHandler redeems an order by its code, read from ?qr_code= or the JSON body.
// An already redeemed code is answered with 200 and already_validated set.
func ValidateQRHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Query("qr_code")
		if code == "" {
			var req ValidateQRRequest
			if err := c.ShouldBindJSON(&req); err == nil {
				code = req.QRCode
			}
		}
		if code == "" {
			badRequest(c, "qr_code is required")
			return
		}
		order, already, err := orders.ValidateByCode(c.Request.Context(), code)
		if err != nil {
			respondError(c, err)
			return
		}
		msg := "Order validated"
		if already {
			msg = "QR code was already validated"
		}
		c.JSON(http.StatusOK, gin.H{"message": msg, "already_validated": already, "order": order})
	}
}
