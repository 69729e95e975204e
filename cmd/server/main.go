package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rmoralesp/bodega/internal"
	"github.com/rmoralesp/bodega/internal/catalog"
	"github.com/rmoralesp/bodega/internal/cookie"
	"github.com/rmoralesp/bodega/internal/domain"
	"github.com/rmoralesp/bodega/internal/handler/pos"
	"github.com/rmoralesp/bodega/internal/handler/storefront"
	"github.com/rmoralesp/bodega/internal/middleware"
	"github.com/rmoralesp/bodega/internal/notification"
	"github.com/rmoralesp/bodega/internal/postgres"
	"github.com/rmoralesp/bodega/internal/router"
	"github.com/rmoralesp/bodega/internal/service"
	"github.com/rmoralesp/bodega/internal/telemetry"
	"github.com/rmoralesp/bodega/internal/worker"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
	pool, err := postgres.Connect(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)
	catalogReader := catalog.NewPostgresReader(pool)

	// Initialize notification dispatcher
	logger.Info("Connecting to NATS...", "url", cfg.NATS.URL)
	dispatcher, err := notification.NewNATSDispatcher(notification.NATSConfig{
		URL:           cfg.NATS.URL,
		SubjectPrefix: cfg.NATS.SubjectPrefix,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer dispatcher.Close()
	logger.Info("NATS connection established")

	// Initialize services
	cartService := service.NewCartService(store, catalogReader, service.CartConfig{
		MaxCartUnits:       cfg.Store.MaxCartUnits,
		AnonymousRetention: time.Duration(cfg.Store.CartRetentionDays) * 24 * time.Hour,
	}, logger)

	checkoutService := service.NewCheckoutService(store, dispatcher, service.StoreSettings{
		OrderNumberPrefix:    cfg.Store.OrderNumberPrefix,
		HomeDeliveryFeeCents: cfg.Store.HomeDeliveryFeeCents,
		PickupAddress: domain.AddressSnapshot{
			FullName:   cfg.Store.PickupName,
			Line1:      cfg.Store.PickupLine1,
			City:       cfg.Store.PickupCity,
			State:      cfg.Store.PickupState,
			PostalCode: cfg.Store.PickupPostalCode,
			Phone:      cfg.Store.PickupPhone,
		},
	}, logger)

	orderService := service.NewOrderService(store, dispatcher, logger)
	posService := service.NewPOSService(store, catalogReader, cfg.Store.SaleNumberPrefix, logger)

	// Initialize metrics
	metrics := middleware.NewMetrics("bodega")
	business := telemetry.InitBusinessMetrics("bodega")

	// Initialize handlers
	cookies := cookie.NewConfig(cfg.Env == "prod")
	cartHandler := storefront.NewCartHandler(cartService, cookies, business)
	checkoutHandler := storefront.NewCheckoutHandler(checkoutService, business)
	ordersHandler := storefront.NewOrdersHandler(orderService, business)
	saleHandler := pos.NewSaleHandler(posService, business)
	orderStatusHandler := pos.NewOrderStatusHandler(orderService)

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.Logger(logger),
		middleware.Identity,
	)

	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Cart routes resolve identity themselves so guests can shop.
	r.Get("/cart", cartHandler.View)
	r.Post("/cart/items", cartHandler.AddItem)
	r.Patch("/cart/items/{lineId}", cartHandler.UpdateItem)
	r.Delete("/cart/items/{lineId}", cartHandler.RemoveItem)

	// Authenticated storefront routes
	authed := r.Group(middleware.RequireCustomer)
	authed.Post("/cart/claim", cartHandler.Claim)
	authed.Post("/checkout", checkoutHandler.Create)
	authed.Get("/orders", ordersHandler.List)
	authed.Get("/orders/{orderId}", ordersHandler.Get)
	authed.Get("/orders/number/{orderNumber}", ordersHandler.GetByNumber)
	authed.Post("/orders/{orderId}/cancel", ordersHandler.Cancel)

	// Point-of-sale routes (staff identity via header)
	r.Post("/pos/sales", saleHandler.Create)
	r.Get("/pos/sales/{saleId}", saleHandler.Get)
	r.Post("/pos/orders/{orderId}/status", orderStatusHandler.Update)

	// Start background cart cleanup
	cleanup := worker.NewCartCleanup(store, business, worker.CleanupConfig{}, logger)
	go func() {
		if err := cleanup.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("cart cleanup worker stopped", "error", err)
		}
	}()

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info("Server stopped")

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
