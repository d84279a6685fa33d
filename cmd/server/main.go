package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jafarshop/storefront/internal/api"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/repository/postgres"
	"github.com/jafarshop/storefront/internal/service"
	"github.com/jafarshop/storefront/internal/shipping"
	"github.com/jafarshop/storefront/internal/storefront"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	repos, cleanup, err := openRepositories(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer cleanup()

	client := storefront.NewClient(cfg.API, logger)
	calc := shipping.New(cfg.Shipping.FreeThreshold, cfg.Shipping.StandardCost)
	notifier := notify.Contextual(notify.NewZapNotifier(logger))

	carts := cart.NewRegistry(client, repos.DeviceStorage, notifier, logger)
	carts.SetIdleTimeout(cfg.Cart.IdleTimeout)
	defer carts.Close()

	router := api.NewRouter(cfg, api.Services{
		Carts:      carts,
		Shipping:   calc,
		Categories: service.NewCategoryService(client, notifier, logger),
		Orders:     service.NewOrderService(client, calc, logger),
		Banner:     service.NewBannerService(cfg.Banner, calc),
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting storefront server",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("api_base_url", cfg.API.BaseURL),
			zap.String("storage", cfg.Storage.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// openRepositories picks the device storage backend from STORAGE_DRIVER
func openRepositories(cfg *config.Config, logger *zap.Logger) (*repository.Repositories, func(), error) {
	if cfg.Storage.Driver != "postgres" {
		return repository.NewMemoryRepositories(), func() {}, nil
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repos, err := postgres.NewRepositories(ctx, db, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repos, func() { db.Close() }, nil
}
