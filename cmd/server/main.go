package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"shopcore/internal"
	"shopcore/internal/events"
	"shopcore/internal/handler"
	"shopcore/internal/middleware"
	"shopcore/internal/pricing"
	"shopcore/internal/router"
	"shopcore/internal/routes"
	"shopcore/internal/service"
	"shopcore/internal/store"
	"shopcore/internal/telemetry"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize record stores: Postgres when configured, in-memory otherwise
	var stores *store.Stores
	if cfg.DatabaseUrl != "" {
		logger.Info("Connecting to database...")
		db, err := sql.Open("pgx", cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		logger.Info("Database connection established")

		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		stores = store.NewSQLStores(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory record store")
		stores = store.NewMemoryStores()
	}

	// Initialize event publisher
	var publisher events.Publisher = events.Noop{}
	if cfg.NatsUrl != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NatsUrl)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("Event publisher initialized", "url", cfg.NatsUrl)
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	httpMetrics := middleware.NewMetrics(cfg.MetricsNamespace, registry)
	businessMetrics := telemetry.NewBusinessMetrics(cfg.MetricsNamespace, registry)

	// Initialize services
	productService := service.NewProductService(stores.Products, businessMetrics, logger)
	pricer := pricing.NewEngine(productService)
	cartService := service.NewCartService(stores.Carts, pricer, businessMetrics, logger)
	orderService := service.NewOrderService(stores.Orders, stores.Carts, publisher, businessMetrics, logger)

	// Router with global middleware
	r := router.New(
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		middleware.Recover,
		httpMetrics.Middleware,
	)

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		ProductHandler: handler.NewProductHandler(productService),
		CartHandler:    handler.NewCartHandler(cartService),
		OrderHandler:   handler.NewOrderHandler(orderService),
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
