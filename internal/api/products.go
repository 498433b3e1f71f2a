package api

import (
	"net/http" // HTTP status codes

	"eventpay/internal/pricing" // Cent precision check
	"eventpay/internal/service" // Catalog service
	"eventpay/internal/store"   // Editable product fields

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Prices
)

// ProductRequest is the body of product create and update
type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"` // Must not be negative
	Stock       int             `json:"stock"`
	ImageBase64 *string         `json:"image_base64"`
	Available   *bool           `json:"available"` // Omitted keeps the current value; new products start available
}

func (r ProductRequest) fields() store.ProductFields {
	return store.ProductFields{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		ImageBase64: r.ImageBase64,
		Available:   r.Available,
	}
}

func bindProduct(c *gin.Context) (ProductRequest, bool) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return req, false
	}
	if req.Price.IsNegative() {
		badRequest(c, "Price must not be negative")
		return req, false
	}
	if !pricing.IsCents(req.Price) {
		badRequest(c, "Price must have at most 2 decimal places")
		return req, false
	}
	return req, true
}

// ListProductsHandler lists the products of the event in the path
func ListProductsHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := catalog.ListProducts(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateProductHandler adds a product to the event in the path
func CreateProductHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindProduct(c)
		if !ok {
			return
		}
		p, err := catalog.CreateProduct(c.Request.Context(), c.Param("id"), req.fields())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func UpdateProductHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindProduct(c)
		if !ok {
			return
		}
		p, err := catalog.UpdateProduct(c.Request.Context(), c.Param("id"), req.fields())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func DeleteProductHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
