package api

import (
	"net/http" // HTTP status codes

	"eventpay/internal/domain"     // Roles
	"eventpay/internal/middleware" // Auth and role middleware
	"eventpay/internal/service"    // Services behind the handlers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Auth    *service.AuthService
	Catalog *service.CatalogService
	Orders  *service.OrderService
	Credits *service.CreditService

	CORSOrigins []string // Allowed browser origins; empty allows any
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS(d.CORSOrigins), middleware.RequestLogger())

	r.GET("/health", HealthHandler(d.DB, d.Redis))

	authed := middleware.Authenticate(d.Auth)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	api := r.Group("/api")

	// Auth routes
	api.POST("/auth/register", RegisterHandler(d.Auth))
	api.POST("/auth/login", LoginHandler(d.Auth))
	api.GET("/auth/me", authed, MeHandler())

	// Catalog routes: public reads, admin writes
	api.GET("/events", ListEventsHandler(d.Catalog))
	api.GET("/events/:id", GetEventHandler(d.Catalog))
	api.GET("/events/:id/products", ListProductsHandler(d.Catalog))
	api.POST("/events", authed, adminOnly, CreateEventHandler(d.Catalog))
	api.PUT("/events/:id", authed, adminOnly, UpdateEventHandler(d.Catalog))
	api.DELETE("/events/:id", authed, adminOnly, DeleteEventHandler(d.Catalog))
	api.POST("/events/:id/products", authed, adminOnly, CreateProductHandler(d.Catalog))
	api.PUT("/products/:id", authed, adminOnly, UpdateProductHandler(d.Catalog))
	api.DELETE("/products/:id", authed, adminOnly, DeleteProductHandler(d.Catalog))

	// Order routes (protected by JWT)
	orders := api.Group("/orders", authed)
	orders.POST("", PlaceOrderHandler(d.Orders))
	orders.GET("", ListMyOrdersHandler(d.Orders))
	orders.GET("/:id", GetOrderHandler(d.Orders))
	orders.GET("/:id/qr", OrderQRHandler(d.Orders))
	orders.POST("/:id/validate", adminOnly, ValidateOrderHandler(d.Orders))
	orders.POST("/validate-qr", adminOnly, ValidateQRHandler(d.Orders))

	// Credit routes (protected by JWT)
	credits := api.Group("/credits", authed)
	credits.GET("/balance", BalanceHandler(d.Credits))
	credits.POST("/add", AddCreditsHandler(d.Credits))
	credits.GET("/transactions", CreditHistoryHandler(d.Credits))

	// Admin routes (protected, admin only)
	admin := api.Group("/admin", authed, adminOnly)
	admin.GET("/orders", ListAllOrdersHandler(d.Orders))
	admin.GET("/reports", ReportHandler(d.Orders))

	return r
}

// HealthHandler reports whether the database and redis answer
func HealthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		status := gin.H{"status": "ok", "database": "up", "redis": "up"}
		code := http.StatusOK
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				status["database"], status["status"], code = "down", "degraded", http.StatusServiceUnavailable
			}
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				status["redis"], status["status"], code = "down", "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, status)
	}
}
