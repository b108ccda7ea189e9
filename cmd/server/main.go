package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nordvik/wardrobe/internal"
	"github.com/nordvik/wardrobe/internal/events"
	"github.com/nordvik/wardrobe/internal/handler/admin"
	"github.com/nordvik/wardrobe/internal/handler/storefront"
	"github.com/nordvik/wardrobe/internal/identity"
	"github.com/nordvik/wardrobe/internal/middleware"
	"github.com/nordvik/wardrobe/internal/postgres"
	"github.com/nordvik/wardrobe/internal/repository"
	"github.com/nordvik/wardrobe/internal/router"
	"github.com/nordvik/wardrobe/internal/routes"
	"github.com/nordvik/wardrobe/internal/session"
	"github.com/nordvik/wardrobe/internal/snapshot"
	"github.com/nordvik/wardrobe/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository and business metrics
	repo := repository.New(pool)
	business := telemetry.NewBusinessMetrics("wardrobe")

	// Initialize catalog service
	catalog := postgres.NewCatalogService(repo)

	// Initialize snapshot store for session state
	logger.Info("Initializing snapshot store...", "path", cfg.SnapshotPath)
	localStore, err := snapshot.NewLocalStore(cfg.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}
	store := snapshot.Instrument(localStore, business.SnapshotWriteFailed)

	// Initialize purchase store and identity provider
	purchaseStore := postgres.NewPurchaseStore(repo)
	identityProvider := identity.NewPostgresProvider(repo)

	// Initialize event publisher
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		logger.Info("Connecting to NATS...", "url", cfg.NatsURL)
		natsPublisher, err := events.NewNATSPublisher(cfg.NatsURL)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("NATS connection established")
	}

	// Initialize session manager
	sessions := session.NewManager(store, purchaseStore, logger)

	// ==========================================================================
	// Build route dependencies
	// ==========================================================================

	secure := cfg.SecureCookies

	storefrontDeps := routes.StorefrontDeps{
		ProductHandler: storefront.NewProductHandler(catalog),
		CartHandler:    storefront.NewCartHandler(sessions, catalog, publisher, business, logger, secure),
		AuthHandler:    storefront.NewAuthHandler(sessions, identityProvider, business, logger, secure),
	}

	adminDeps := routes.AdminDeps{
		ProductHandler:  admin.NewProductHandler(catalog),
		PurchaseHandler: admin.NewPurchaseHandler(purchaseStore),
		AdminToken:      cfg.AdminToken,
	}

	// ==========================================================================
	// Initialize middleware
	// ==========================================================================

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("wardrobe")

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		router.Logger(logger),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Register route groups
	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterAdminRoutes(r, adminDeps)

	// ==========================================================================
	// Start server
	// ==========================================================================

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

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
