package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/orderflow/backend/internal/application/catalog"
	identityapp "github.com/orderflow/backend/internal/application/identity"
	orderingapp "github.com/orderflow/backend/internal/application/ordering"
	"github.com/orderflow/backend/internal/infrastructure/auth"
	"github.com/orderflow/backend/internal/infrastructure/cache"
	"github.com/orderflow/backend/internal/infrastructure/config"
	"github.com/orderflow/backend/internal/infrastructure/logger"
	"github.com/orderflow/backend/internal/infrastructure/persistence"
	"github.com/orderflow/backend/internal/infrastructure/storage"
	"github.com/orderflow/backend/internal/interfaces/http/handler"
	"github.com/orderflow/backend/internal/interfaces/http/middleware"
	"github.com/orderflow/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags
var version = "dev"

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

	log.Info("Starting OrderFlow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the cart, the signed URL cache and the chat feed
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// Object storage for product attachments and order confirmations
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.AccessKeyID == "" && cfg.App.Env != "production" {
		log.Warn("No storage credentials configured, using stub object storage")
		objectStorage = storage.NewStubObjectStorage()
	} else {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiry),
		)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	relationRepo := persistence.NewGormProductRelationRepository(db.DB)
	attachmentRepo := persistence.NewGormProductAttachmentRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	messageRepo := persistence.NewGormOrderMessageRepository(db.DB)
	auditRepo := persistence.NewGormOrderAuditRepository(db.DB)
	accountRepo := persistence.NewGormAllowedEmailRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	cartStore := cache.NewRedisCartStore(redisClient)
	urlCache := cache.NewRedisSignedURLCache(redisClient,
		cache.WithSignedURLCacheLogger(log))
	chatFeed := cache.NewRedisChatFeed(redisClient,
		cache.WithChatFeedChannel(cfg.Chat.ChannelPrefix),
		cache.WithChatFeedLogger(log))
	defer func() {
		if err := chatFeed.Close(); err != nil {
			log.Error("Error closing chat feed", zap.Error(err))
		}
	}()

	// Application services
	authService := identityapp.NewAuthService(accountRepo, jwtService, log)
	allowlistService := identityapp.NewAllowlistService(accountRepo, log)
	productService := catalogapp.NewProductService(productRepo, relationRepo)
	attachmentService := catalogapp.NewAttachmentService(attachmentRepo, productRepo, objectStorage, urlCache,
		catalogapp.WithAttachmentLogger(log))
	importService := catalogapp.NewProductImportService(productRepo,
		catalogapp.WithImportLogger(log))
	orderService := orderingapp.NewOrderService(orderRepo, auditRepo, productRepo, cartStore,
		orderingapp.WithOrderLogger(log))
	cartService := orderingapp.NewCartService(cartStore, productRepo)
	chatService := orderingapp.NewChatService(messageRepo, orderRepo, chatFeed,
		orderingapp.WithChatLogger(log))

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	allowlistHandler := handler.NewAllowlistHandler(allowlistService)
	productHandler := handler.NewProductHandler(productService)
	importHandler := handler.NewProductImportHandler(importService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	fileHandler := handler.NewFileHandler(attachmentService)
	orderHandler := handler.NewOrderHandler(orderService, attachmentService)
	cartHandler := handler.NewCartHandler(cartService)
	chatHandler := handler.NewChatHandler(chatService)
	systemHandler := handler.NewSystemHandler(version)

	chatSSEHandler := handler.NewChatSSEHandler(chatFeed, chatService,
		handler.WithSSELogger(log),
		handler.WithSSEHeartbeat(cfg.Chat.HeartbeatInterval),
	)
	if err := chatSSEHandler.Start(); err != nil {
		log.Fatal("Failed to start chat SSE handler", zap.Error(err))
	}
	defer chatSSEHandler.Stop()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack in order: request ID, panic recovery, request
	// logging, security headers, CORS, body limit, rate limiting
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, redisClient))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication on all API routes except the public ones
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Login attempts get a stricter limit than the global one
	var authRoutes *router.DomainGroup
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes = router.NewDomainGroup("auth", "/auth").Use(middleware.RateLimit(authLimiter))
	} else {
		authRoutes = router.NewDomainGroup("auth", "/auth")
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.POST("/change-password", authHandler.ChangePassword)
	r.Register(authRoutes)

	// Catalog domain: browsing is open to every signed-in user, catalog
	// management requires an order manager
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.GET("/products/number/:number", productHandler.GetByNumber)
	catalogRoutes.GET("/products/:id/relations", productHandler.ListRelations)
	catalogRoutes.GET("/products/:id/attachments", attachmentHandler.ListByProduct)
	catalogRoutes.GET("/attachments/:attachmentId/url", attachmentHandler.GetDownloadURL)

	catalogRoutes.POST("/products", middleware.RequireOrderManager(), productHandler.Create)
	catalogRoutes.PUT("/products/:id", middleware.RequireOrderManager(), productHandler.Update)
	catalogRoutes.DELETE("/products/:id", middleware.RequireOrderManager(), productHandler.Delete)
	catalogRoutes.POST("/products/import", middleware.RequireOrderManager(), importHandler.Import)
	catalogRoutes.POST("/products/:id/relations", middleware.RequireOrderManager(), productHandler.AddRelation)
	catalogRoutes.DELETE("/products/:id/relations/:relationId", middleware.RequireOrderManager(), productHandler.RemoveRelation)
	catalogRoutes.POST("/products/:id/attachments", middleware.RequireOrderManager(), attachmentHandler.Register)
	catalogRoutes.PUT("/products/:id/attachments/:attachmentId/primary", middleware.RequireOrderManager(), attachmentHandler.SetPrimary)
	catalogRoutes.DELETE("/products/:id/attachments/:attachmentId", middleware.RequireOrderManager(), attachmentHandler.Delete)
	r.Register(catalogRoutes)

	// Ordering domain: customers place and follow their own orders,
	// order managers run the lifecycle
	orderRoutes := router.NewDomainGroup("ordering", "/orders")
	orderRoutes.POST("", orderHandler.Place)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.GET("/:id/audit", orderHandler.AuditTrail)
	orderRoutes.GET("/:id/confirmation-url", orderHandler.ConfirmationURL)
	orderRoutes.GET("/:id/messages", chatHandler.History)
	orderRoutes.POST("/:id/messages", chatHandler.Post)
	orderRoutes.GET("/:id/messages/stream", chatSSEHandler.Stream)

	orderRoutes.PATCH("/:id/status", middleware.RequireOrderManager(), orderHandler.ChangeStatus)
	orderRoutes.PATCH("/:id/eta", middleware.RequireOrderManager(), orderHandler.SetETA)
	orderRoutes.POST("/:id/confirmation", middleware.RequireOrderManager(), orderHandler.AttachConfirmation)
	r.Register(orderRoutes)

	// Staff can mint a signed download URL for any stored object
	fileRoutes := router.NewDomainGroup("files", "/files").Use(middleware.RequireOrderManager())
	fileRoutes.POST("/signed-url", fileHandler.SignedURL)
	fileRoutes.POST("/upload-url", fileHandler.UploadURL)
	r.Register(fileRoutes)

	// Cart is personal, keyed by the caller's email
	cartRoutes := router.NewDomainGroup("cart", "/cart")
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.PUT("/items", cartHandler.SetItem)
	cartRoutes.DELETE("/items/:productId", cartHandler.RemoveItem)
	cartRoutes.DELETE("", cartHandler.Clear)
	r.Register(cartRoutes)

	// Allowlist management is admin only
	adminRoutes := router.NewDomainGroup("admin", "/admin").Use(middleware.RequireAdmin())
	adminRoutes.POST("/allowlist", allowlistHandler.Create)
	adminRoutes.GET("/allowlist", allowlistHandler.List)
	adminRoutes.GET("/allowlist/:id", allowlistHandler.GetByID)
	adminRoutes.PUT("/allowlist/:id", allowlistHandler.Update)
	adminRoutes.DELETE("/allowlist/:id", allowlistHandler.Delete)
	adminRoutes.DELETE("/orders/:id", orderHandler.Delete)
	r.Register(adminRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.Info)
	r.Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

// healthHandler reports database and Redis health
func healthHandler(db *persistence.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)

		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(); err != nil {
			reqLog.Warn("Database health check failed", zap.Error(err))
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			reqLog.Warn("Redis health check failed", zap.Error(err))
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "unhealthy"
		}

		c.JSON(status, gin.H{
			"status":   overall,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"redis":    redisStatus,
		})
	}
}
