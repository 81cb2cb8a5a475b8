package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/coastline/internal/account"
	"github.com/fjod/coastline/internal/cart"
	"github.com/fjod/coastline/internal/catalog"
	"github.com/fjod/coastline/internal/checkout"
	"github.com/fjod/coastline/internal/config"
	"github.com/fjod/coastline/internal/events"
	h "github.com/fjod/coastline/internal/http"
	"github.com/fjod/coastline/internal/logger"
	"github.com/fjod/coastline/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "storefront"

func main() {
	if err := run(); err != nil {
		slog.Error("storefront stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, level)
	slog.SetDefault(log)

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error("failed to flush traces", "error", err)
		}
	}()

	// Catalog
	repo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := repo.RunMigrations(); err != nil {
		return err
	}
	products, err := catalog.Load(ctx, repo)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", "products", len(products.Products()))

	// State
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	cartStore := cart.NewStore(ctx, st, log.With("component", "cart"))
	accountStore := account.NewStore(ctx, st, log.With("component", "account"))

	// Order events
	var publisher events.Publisher = events.Noop{}
	if cfg.KafkaEnabled() {
		writer := events.NewKafkaWriter(cfg.KafkaTopic, cfg.KafkaBrokers...)
		publisher = events.NewKafkaPublisher(writer, log.With("component", "events"))
		log.Info("publishing order events", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}
	defer publisher.Close()

	checkoutService := checkout.NewService(cartStore, accountStore, log.With("component", "checkout"),
		checkout.WithLatency(cfg.CheckoutLatency),
		checkout.WithPublisher(publisher),
	)

	router := h.NewRouter(h.Handlers{
		Products: h.NewProductHandler(products),
		Cart:     h.NewCartHandler(cartStore, products),
		Checkout: h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout),
		Orders:   h.NewOrdersHandler(accountStore),
		Account:  h.NewAccountHandler(accountStore),
	}, h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, serviceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("storefront starting", "port", cfg.HTTPPort, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server exited")
	return nil
}
