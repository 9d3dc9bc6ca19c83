package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"farmer-offers-service/internal/catalog"
	"farmer-offers-service/internal/config"
	"farmer-offers-service/internal/engine"
	"farmer-offers-service/internal/events"
	"farmer-offers-service/internal/handlers"
	"farmer-offers-service/internal/middleware"
)

// @title Farmer Offers API
// @version 1.0.0
// @description Offer eligibility service: evaluates purchase orders against the profit-margin rule and suggests free products

// @contact.name Farmer Offers API Support
// @contact.email support@cultivatec.in

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8093
// @BasePath /api/v1

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize Redis client (optional - graceful degradation if Redis unavailable)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warnf("Failed to parse Redis URL: %v", err)
			logger.Info("Continuing without catalog caching...")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.Warnf("Failed to connect to Redis: %v", err)
				logger.Info("Continuing without catalog caching...")
				redisClient = nil
			} else {
				logger.Info("✓ Connected to Redis for catalog caching")
			}
		}
	} else {
		logger.Info("REDIS_URL not configured, catalog caching disabled")
	}

	// Load the catalog once at startup; evaluations read it lock-free
	loader := catalog.NewLoader(cfg, redisClient, logger)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancelLoad()

	cat, err := loader.Load(loadCtx)
	if err != nil {
		logger.Fatalf("Failed to load catalog: %v", err)
	}
	logger.Infof("✓ Catalog loaded with %d rows", cat.Len())

	store := catalog.NewStore(cat)

	// Initialize NATS events publisher (optional)
	eventsPublisher, err := events.NewPublisher(logger)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize events publisher (events won't be published)")
		eventsPublisher = nil
	} else {
		defer eventsPublisher.Close()
		logger.Info("✓ NATS events publisher initialized")
	}

	// Initialize engine and handlers
	eng := engine.New(logger)
	offersHandler := handlers.NewOffersHandler(eng, store, eventsPublisher)
	catalogHandler := handlers.NewCatalogHandler(cfg, store, loader, eventsPublisher)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Health check endpoints
	router.GET("/health", handlers.HealthCheck(store))
	router.GET("/ready", handlers.HealthCheck(store))

	// API routes
	v1 := router.Group("/api/v1")
	{
		offers := v1.Group("/offers")
		{
			offers.POST("/check", offersHandler.CheckEligibility)
		}

		catalogRoutes := v1.Group("/catalog")
		{
			catalogRoutes.GET("", catalogHandler.GetCatalog)
			catalogRoutes.GET("/products", catalogHandler.GetProducts)
			catalogRoutes.GET("/products/:product/skus", catalogHandler.GetProductSKUs)
			catalogRoutes.GET("/template", catalogHandler.GetTemplate)
			catalogRoutes.POST("/reload", catalogHandler.ReloadCatalog)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server
	logger.Infof("Farmer offers service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server:", err)
	}
}
