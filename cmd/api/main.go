package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/venuecount/stocktake-api/internal/application/service"
	"github.com/venuecount/stocktake-api/internal/config"
	"github.com/venuecount/stocktake-api/internal/infrastructure/database"
	"github.com/venuecount/stocktake-api/internal/infrastructure/repository"
	"github.com/venuecount/stocktake-api/internal/presentation/http/handler"
	"github.com/venuecount/stocktake-api/internal/presentation/http/routes"
	"github.com/venuecount/stocktake-api/pkg/invoiceparser"
	"github.com/venuecount/stocktake-api/pkg/reconcile"
	"github.com/venuecount/stocktake-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode and log format based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logrus.WithError(err).Warn("Failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	productRepo := repository.NewProductRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	itemRepo := repository.NewAreaItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	lockRepo := repository.NewScopeLockRepository(db)
	reconRepo := repository.NewReconciliationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize invoice parser client
	parserClient := invoiceparser.NewClient(invoiceparser.Config{
		BaseURL: cfg.Parser.BaseURL,
		APIKey:  cfg.Parser.APIKey,
		Timeout: cfg.Parser.Timeout,
	})

	// Remote reconciliation is optional; nil means local scoring
	var remote service.RemoteReconciler
	if cfg.Reconcile.Mode == "remote" {
		remote = reconcile.NewClient(reconcile.Config{
			BaseURL: cfg.Reconcile.BaseURL,
			APIKey:  cfg.Reconcile.APIKey,
			Timeout: cfg.Reconcile.Timeout,
		})
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, venueRepo, jwtManager)
	productService := service.NewProductService(productRepo, supplierRepo)
	supplierService := service.NewSupplierService(supplierRepo)
	countService := service.NewCountService(departmentRepo, areaRepo, itemRepo, productRepo)
	suggestedService := service.NewSuggestedOrderService(productRepo, supplierRepo, itemRepo, service.BuildOptions{
		RoundToPack: cfg.Suggest.RoundToPack,
		DefaultPar:  cfg.Suggest.DefaultPar,
	})
	varianceService := service.NewVarianceService(productRepo, itemRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, supplierRepo, lockRepo, suggestedService)
	reconService := service.NewReconciliationService(orderRepo, reconRepo, parserClient, remote)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		Product:        handler.NewProductHandler(productService),
		Supplier:       handler.NewSupplierHandler(supplierService),
		Count:          handler.NewCountHandler(countService),
		Order:          handler.NewOrderHandler(orderService),
		Reconciliation: handler.NewReconciliationHandler(reconService),
		Report:         handler.NewReportHandler(suggestedService, varianceService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logrus.WithFields(logrus.Fields{
		"service": cfg.App.Name,
		"port":    port,
		"env":     cfg.App.Env,
		"mode":    cfg.Reconcile.Mode,
	}).Info("Starting server")

	if err := router.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
		os.Exit(1)
	}
}
