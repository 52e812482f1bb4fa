package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/pharmalink/backend/internal/application/catalog"
	financeapp "github.com/pharmalink/backend/internal/application/finance"
	identityapp "github.com/pharmalink/backend/internal/application/identity"
	inventoryapp "github.com/pharmalink/backend/internal/application/inventory"
	partnerapp "github.com/pharmalink/backend/internal/application/partner"
	reportapp "github.com/pharmalink/backend/internal/application/report"
	tradeapp "github.com/pharmalink/backend/internal/application/trade"
	"github.com/pharmalink/backend/internal/domain/identity"
	"github.com/pharmalink/backend/internal/infrastructure/auth"
	"github.com/pharmalink/backend/internal/infrastructure/cache"
	"github.com/pharmalink/backend/internal/infrastructure/config"
	"github.com/pharmalink/backend/internal/infrastructure/logger"
	"github.com/pharmalink/backend/internal/infrastructure/persistence"
	"github.com/pharmalink/backend/internal/infrastructure/storage"
	"github.com/pharmalink/backend/internal/interfaces/http/handler"
	"github.com/pharmalink/backend/internal/interfaces/http/middleware"
	"github.com/pharmalink/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting PharmaLink Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the inventory dashboard cache. The cache is advisory,
	// so a missing Redis degrades to uncached reads instead of failing
	// startup.
	var inventoryCache inventoryapp.Cache
	redisCache, err := cache.NewRedisCache(&cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, inventory views will be uncached", zap.Error(err))
	} else {
		inventoryCache = redisCache
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		log.Info("Redis connected successfully")
	}

	// Document storage for payment attachments
	var documentStorage financeapp.DocumentStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3DocumentStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		documentStorage = s3Storage
		log.Info("S3 document storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		documentStorage = storage.NewStubDocumentStorage()
		log.Warn("Object storage disabled, using in-memory document storage")
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	medicineRepo := persistence.NewGormMedicineRepository(db.DB)
	manufacturerRepo := persistence.NewGormManufacturerRepository(db.DB)
	distributorRepo := persistence.NewGormDistributorRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	batchRepo := persistence.NewGormShipmentBatchRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Transaction scopes for the multi-repository write paths
	inventoryScope := persistence.NewInventoryTransactionScope(db.DB)
	tradeScope := persistence.NewTradeTransactionScope(db.DB)
	financeScope := persistence.NewFinanceTransactionScope(db.DB)

	// Initialize application services
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpiration)
	authService := identityapp.NewAuthService(userRepo, jwtManager, log)
	userService := identityapp.NewUserService(userRepo)
	medicineService := catalogapp.NewMedicineService(medicineRepo, manufacturerRepo)
	manufacturerService := catalogapp.NewManufacturerService(manufacturerRepo)
	distributorService := partnerapp.NewDistributorService(distributorRepo)
	shipmentService := inventoryapp.NewShipmentService(inventoryScope, shipmentRepo, log)
	inventoryService := inventoryapp.NewInventoryService(batchRepo, medicineRepo, inventoryCache, log)
	salesOrderService := tradeapp.NewSalesOrderService(tradeScope, salesOrderRepo, log)
	paymentService := financeapp.NewPaymentService(financeScope, paymentRepo, log)
	reportService := reportapp.NewReportService(reportRepo, distributorRepo, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	medicineHandler := handler.NewMedicineHandler(medicineService)
	manufacturerHandler := handler.NewManufacturerHandler(manufacturerService)
	distributorHandler := handler.NewDistributorHandler(distributorService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	salesOrderHandler := handler.NewSalesOrderHandler(salesOrderService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)
	uploadHandler := handler.NewUploadHandler(documentStorage)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom validation tags before any request binding
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		Manager: jwtManager,
		SkipPaths: []string{
			"/api/v1/auth/signup",
			"/api/v1/auth/login",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity domain (authentication and users)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/signup", authHandler.Signup)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", authHandler.Me)

	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.GET("/users", userHandler.List)
	identityRoutes.GET("/users/:id", userHandler.GetByID)
	identityRoutes.POST("/users/:id/deactivate", middleware.RequireRole(identity.RoleAdmin), userHandler.Deactivate)

	// Catalog domain (medicines, manufacturers)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/medicines", medicineHandler.Create)
	catalogRoutes.GET("/medicines", medicineHandler.List)
	catalogRoutes.GET("/medicines/:id", medicineHandler.GetByID)
	catalogRoutes.PUT("/medicines/:id", medicineHandler.Update)
	catalogRoutes.POST("/medicines/:id/deactivate", medicineHandler.Deactivate)
	catalogRoutes.POST("/manufacturers", manufacturerHandler.Create)
	catalogRoutes.GET("/manufacturers", manufacturerHandler.List)
	catalogRoutes.GET("/manufacturers/:id", manufacturerHandler.GetByID)

	// Partner domain (distributors)
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/distributors", distributorHandler.Create)
	partnerRoutes.GET("/distributors", distributorHandler.List)
	partnerRoutes.GET("/distributors/:id", distributorHandler.GetByID)
	partnerRoutes.PUT("/distributors/:id", distributorHandler.Update)
	partnerRoutes.POST("/distributors/:id/deactivate", distributorHandler.Deactivate)

	// Inventory domain (shipments, stock views)
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/shipments", shipmentHandler.Create)
	inventoryRoutes.GET("/shipments", shipmentHandler.List)
	inventoryRoutes.GET("/shipments/:id", shipmentHandler.GetByID)
	inventoryRoutes.PUT("/shipments/:id/delivery-status", shipmentHandler.UpdateDeliveryStatus)
	inventoryRoutes.GET("/overview", inventoryHandler.Overview)
	inventoryRoutes.GET("/expiring", inventoryHandler.ExpiringBatches)
	inventoryRoutes.GET("/allocation-queue/:medicine_id", inventoryHandler.AllocationQueue)
	inventoryRoutes.GET("/recent-batches", inventoryHandler.RecentBatches)

	// Trade domain (sales orders)
	tradeRoutes := router.NewDomainGroup("trade", "/trade")
	tradeRoutes.POST("/sales-orders", salesOrderHandler.Create)
	tradeRoutes.GET("/sales-orders", salesOrderHandler.List)
	tradeRoutes.GET("/sales-orders/:id", salesOrderHandler.GetByID)

	// Finance domain (payments, documents)
	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.POST("/payments", paymentHandler.Create)
	financeRoutes.GET("/payments", paymentHandler.List)
	financeRoutes.GET("/payments/:id", paymentHandler.GetByID)
	financeRoutes.GET("/sales-orders/:order_id/payments", paymentHandler.ListByOrder)
	financeRoutes.POST("/documents", uploadHandler.UploadDocument)

	// Report domain (derived views)
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/account-statement/:distributor_id", reportHandler.AccountStatement)
	reportRoutes.GET("/stock-summary", reportHandler.StockSummary)
	reportRoutes.GET("/payment-register", reportHandler.PaymentRegister)

	r.Register(authRoutes).
		Register(identityRoutes).
		Register(catalogRoutes).
		Register(partnerRoutes).
		Register(inventoryRoutes).
		Register(tradeRoutes).
		Register(financeRoutes).
		Register(reportRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// gormLogLevel maps the application log level onto GORM's logger levels
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
