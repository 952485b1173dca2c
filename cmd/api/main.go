package main

import (
	"fmt"
	"net/http"
	"os"

	"coinvault/internal/config"
	"coinvault/internal/database"
	"coinvault/internal/exchange"
	"coinvault/internal/handlers"
	"coinvault/internal/logger"
	"coinvault/internal/middleware"
	"coinvault/internal/predictor"
	"coinvault/internal/pricer"
	"coinvault/internal/services"
	"coinvault/internal/validator"
	"coinvault/internal/vault"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "coinvault/internal/docs" // Import swagger docs
)

// @title           Coinvault API
// @version         1.0
// @description     Coinvault stores exchange API credentials encrypted at rest and reconciles crypto portfolios across connected exchanges.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Credential vault codec; the only holder of the encryption key
	codec, err := vault.NewCodec(appConfig.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize credential codec: %w", err)
	}

	// Supported exchange clients
	registry := exchange.NewRegistry()
	log.Infow("exchange registry initialized", "supported", registry.Supported())

	// Optional price cache
	var cache *redis.Client
	if appConfig.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: appConfig.RedisAddr})
		log.Infow("price cache enabled", "addr", appConfig.RedisAddr, "ttl", appConfig.PriceCacheTTL)
	} else {
		log.Info("price cache disabled, every sync hits ticker endpoints")
	}
	priceResolver := pricer.New(cache, appConfig.PriceCacheTTL)

	// Prediction subsystem
	runner := predictor.NewRunner(appConfig.PythonBin, appConfig.PredictorDir, appConfig.SyncTimeout)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	credentialService := services.NewCredentialService(db, codec)
	portfolioService := services.NewPortfolioService(db, codec, registry, priceResolver, appConfig.SyncTimeout)
	strategyService := services.NewStrategyService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, portfolioService)
	exchangeHandler := handlers.NewExchangeHandler(credentialService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	strategyHandler := handlers.NewStrategyHandler(strategyService)
	predictionHandler := handlers.NewPredictionHandler(runner)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Exchange connections
	protected.POST("/exchange-keys", exchangeHandler.AddKeys)
	protected.GET("/exchange-keys", exchangeHandler.ListKeys)

	// Portfolio
	portfolio := protected.Group("/portfolio")
	portfolio.POST("/sync", portfolioHandler.Sync)
	portfolio.GET("", portfolioHandler.Get)

	// Strategy preferences
	protected.GET("/strategy", strategyHandler.Get)
	protected.PUT("/strategy", strategyHandler.Update)

	// Predictions
	protected.GET("/predict/:symbol", predictionHandler.Predict)

	log.Infof("Starting Coinvault backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
