package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/localmart/localmart-backend/api"
	"github.com/localmart/localmart-backend/api/routes"
	"github.com/localmart/localmart-backend/internal/delivery"
	"github.com/localmart/localmart-backend/internal/geocoding"
	"github.com/localmart/localmart-backend/internal/items"
	"github.com/localmart/localmart-backend/internal/search"
	"github.com/localmart/localmart-backend/internal/stores"
	"github.com/localmart/localmart-backend/pkg/config"
	"github.com/localmart/localmart-backend/pkg/db"
	"github.com/localmart/localmart-backend/pkg/logger"
	"github.com/localmart/localmart-backend/pkg/metrics"
	"github.com/localmart/localmart-backend/pkg/migrate"
	"github.com/localmart/localmart-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis url not set, search rate limiting disabled")
	}

	registry := prometheus.NewRegistry()

	geocoderOpts := []geocoding.Option{
		geocoding.WithHTTPClient(&http.Client{Timeout: cfg.Geocoder.Timeout}),
		geocoding.WithMetrics(metrics.NewGeocodeMetrics(registry)),
	}
	if cfg.Geocoder.BaseURL != "" {
		geocoderOpts = append(geocoderOpts, geocoding.WithBaseURL(cfg.Geocoder.BaseURL))
	}
	geocoder, err := geocoding.NewMapbox(cfg.Geocoder.MapboxToken, geocoderOpts...)
	if err != nil {
		logg.Error(context.Background(), "failed to create geocoder", err)
		os.Exit(1)
	}

	searchService, err := search.NewService(search.NewRepository(dbClient.DB()), cfg.Search.QueryTimeout)
	if err != nil {
		logg.Error(context.Background(), "failed to create search service", err)
		os.Exit(1)
	}

	storesRepo := stores.NewRepository(dbClient.DB())
	storeService, err := stores.NewService(storesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	itemService, err := items.NewService(items.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create item service", err)
		os.Exit(1)
	}

	deliveryService, err := delivery.NewService(storesRepo, geocoder, cfg.Delivery)
	if err != nil {
		logg.Error(context.Background(), "failed to create delivery service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := api.NewServer(addr, routes.NewRouter(
		cfg,
		logg,
		dbClient,
		redisClient,
		registry,
		searchService,
		geocoder,
		storeService,
		itemService,
		deliveryService,
	))

	stop, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
