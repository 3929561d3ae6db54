// Package main is the entry point for the ledger server.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btcledger/internal/config"
	"btcledger/internal/logger"
	"btcledger/internal/metrics"
	"btcledger/internal/middleware"
	"btcledger/internal/repositories/backend"
	"btcledger/internal/repositories/cache"
	"btcledger/internal/routes"
	"btcledger/internal/services/rate"
	"btcledger/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init("btcledger", cfg.LogLevel)
	defer logger.Sync()

	store, closeStore, err := backend.Open(cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to open ledger store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Log.Warn("failed to close ledger store", zap.Error(err))
		}
	}()

	collector := metrics.NewPrometheus()

	var rates rate.Provider = rate.Fake{Rate: cfg.Rate.FakeRate}
	if cfg.Rate.Provider == config.RateProviderCoinConvert {
		rates = rate.NewCoinConvert(cfg.Rate.URL, cfg.Rate.Timeout, collector)
	}

	deps := routes.Dependencies{
		Store:      store,
		Metrics:    collector,
		Prometheus: collector,
		WalletConfig: wallet.WalletConfig{
			Limit:           cfg.Ledger.WalletsLimit,
			StartingBalance: cfg.Ledger.StartingBalance,
		},
		AdminAPIKey: cfg.Ledger.AdminAPIKey,
		RegisterMiddleware: []fiber.Handler{limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": fiber.Map{
						"code":    "RATE_LIMITED",
						"message": "Too many requests. Please try again later.",
					},
				})
			},
		})},
	}

	if cfg.Redis.Enabled {
		client := cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cacheService := cache.NewCacheService(client, cfg.Rate.CacheTTL)
		defer cacheService.Close()

		rates = rate.NewCached(rates, cacheService, cfg.Rate.CacheTTL, collector)
		deps.Cache = cacheService
	}
	deps.Rates = rates

	if cfg.Ledger.AdminAPIKey == "" {
		logger.Log.Warn("ADMIN_API_KEY is empty, statistics are disabled")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "btcledger",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, api_key",
		AllowMethods: "GET,POST,HEAD",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
	}))

	// Routes
	routes.SetupRoutes(app, deps)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Log.Fatal("server stopped", zap.Error(err))
		}
	}()
	logger.Log.Info("server started",
		zap.String("port", cfg.Port),
		zap.String("backend", cfg.Database.Backend),
		zap.String("rate_provider", cfg.Rate.Provider),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}
}
