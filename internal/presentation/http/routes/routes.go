package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venuecount/stocktake-api/internal/config"
	domainRepo "github.com/venuecount/stocktake-api/internal/domain/repository"
	"github.com/venuecount/stocktake-api/internal/presentation/http/handler"
	"github.com/venuecount/stocktake-api/internal/presentation/http/middleware"
	"github.com/venuecount/stocktake-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth           *handler.AuthHandler
	Product        *handler.ProductHandler
	Supplier       *handler.SupplierHandler
	Count          *handler.CountHandler
	Order          *handler.OrderHandler
	Reconciliation *handler.ReconciliationHandler
	Report         *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication + venue scope required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.VenueMiddleware())

		// Per-venue rate limiter
		rateLimiter := middleware.NewVenueRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Catalog
	registerProductRoutes(protected, h)
	registerSupplierRoutes(protected, h)

	// Counting
	registerCountRoutes(protected, h)

	// Orders and reconciliation
	registerOrderRoutes(protected, h, idem)

	// Reports
	registerReportRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.Import)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.PUT("/:id/supplier", h.Product.AssignSupplier)
		products.PUT("/:id/par", h.Product.SetParLevel)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerSupplierRoutes(protected *gin.RouterGroup, h *Handlers) {
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
}

func registerCountRoutes(protected *gin.RouterGroup, h *Handlers) {
	departments := protected.Group("/departments")
	{
		departments.GET("", h.Count.ListDepartments)
		departments.POST("", h.Count.CreateDepartment)
		departments.GET("/:id/areas", h.Count.ListAreas)
		departments.POST("/:id/areas", h.Count.CreateArea)
	}

	areas := protected.Group("/areas")
	{
		areas.GET("/:id/items", h.Count.ListItems)
		areas.POST("/:id/items", h.Count.AddItem)
	}

	items := protected.Group("/items")
	{
		items.PUT("/:id/count", h.Count.RecordCount)
		items.DELETE("/:id", h.Count.RemoveItem)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Order and draft creation use idempotency middleware: a retried POST
		// must not claim scope locks or create orders twice
		orders.POST("", idem, h.Order.Create)
		orders.POST("/drafts", idem, h.Order.CreateDrafts)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/submit", idem, h.Order.Submit)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/reconcile", h.Reconciliation.Reconcile)
		orders.GET("/:id/reconciliations", h.Reconciliation.History)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/suggested-orders", h.Report.SuggestedOrders)
		reports.GET("/variance", h.Report.Variance)
	}
}
