// Package routes defines the API routing configuration.
// It builds the services over a ledger store and mounts their handlers.
package routes

import (
	"btcledger/internal/handlers"
	"btcledger/internal/metrics"
	"btcledger/internal/middleware"
	"btcledger/internal/repositories"
	"btcledger/internal/services/rate"
	"btcledger/internal/services/statistics"
	"btcledger/internal/services/transaction"
	"btcledger/internal/services/user"
	"btcledger/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the collaborators the routes are built from. Rates,
// Metrics, Prometheus and Cache may be nil.
type Dependencies struct {
	Store        repositories.Store
	Rates        rate.Provider
	Metrics      metrics.MetricsCollector
	Prometheus   *metrics.Prometheus
	Cache        handlers.Pinger
	WalletConfig wallet.WalletConfig
	AdminAPIKey  string

	// RegisterMiddleware is mounted in front of POST /users.
	RegisterMiddleware []fiber.Handler
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.NoopMetricsCollector{}
	}

	// Initialize services in correct order
	userService := user.NewService(deps.Store.Users(), collector)
	walletService := wallet.NewService(deps.Store, deps.WalletConfig, collector)
	transactionService := transaction.NewService(deps.Store, walletService, collector)
	statisticsService := statistics.NewService(deps.Store.Transactions(), deps.AdminAPIKey)

	userHandler := handlers.NewUserHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService, deps.Rates)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService, deps.Rates)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Cache)

	app.Use(middleware.ExtractAPIKey())

	// Operational routes
	app.Get("/health", healthHandler.HealthCheck)
	if deps.Prometheus != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Prometheus.Registry, promhttp.HandlerOpts{})))
	}

	registerChain := append(append([]fiber.Handler{}, deps.RegisterMiddleware...), userHandler.Register)
	app.Post("/users", registerChain...)

	wallets := app.Group("/wallets")
	wallets.Post("/", walletHandler.CreateWallet)
	wallets.Get("/", walletHandler.ListWallets)
	wallets.Get("/:address", walletHandler.GetWallet)
	wallets.Get("/:address/transactions", transactionHandler.ListWalletTransactions)

	txs := app.Group("/transactions")
	txs.Post("/", transactionHandler.Transfer)
	txs.Get("/", transactionHandler.ListTransactions)

	app.Get("/statistics", statisticsHandler.GetStatistics)
}
