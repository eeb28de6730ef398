package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/baabuu/storefront-web/api/routes"
	"github.com/baabuu/storefront-web/internal/admin"
	"github.com/baabuu/storefront-web/internal/backend"
	"github.com/baabuu/storefront-web/internal/cache"
	"github.com/baabuu/storefront-web/internal/export"
	"github.com/baabuu/storefront-web/internal/listing"
	"github.com/baabuu/storefront-web/internal/storefront"
	"github.com/baabuu/storefront-web/pkg/config"
	"github.com/baabuu/storefront-web/pkg/logger"
	"github.com/baabuu/storefront-web/pkg/media"
	"github.com/baabuu/storefront-web/pkg/metrics"
	"github.com/baabuu/storefront-web/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "web"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "web",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     logger.IsConsoleFormat(cfg.App.LogFormat),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	var redisClient *redis.Client
	var snapshotStore redis.SnapshotStore
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		snapshotStore = redisClient
	} else {
		logg.Warn(context.Background(), "redis disabled; catalog snapshot is fetched from the catalog API on every read")
	}

	api, err := backend.New(cfg.Backend, cfg.App.PublicOrigin, logg, backend.WithMetrics(catalogMetrics))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog api client", err)
		os.Exit(1)
	}

	resolver := media.NewResolver(cfg.Backend.MediaBase(cfg.App.PublicOrigin), cfg.App.PublicOrigin)
	reporter := listing.NewReporter(logg, catalogMetrics)

	snapshots, err := cache.NewStore(snapshotStore, api, cfg.Catalog.CacheTTL, logg, catalogMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog cache", err)
		os.Exit(1)
	}

	storefrontService, err := storefront.NewService(snapshots, api, resolver, reporter, cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create storefront service", err)
		os.Exit(1)
	}

	adminService, err := admin.NewService(admin.Deps{
		Catalog:   api,
		Snapshots: snapshots,
		Resolver:  resolver,
		Reporter:  reporter,
		Logger:    logg,
		Config:    cfg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	exportService, err := export.NewService(api, resolver, cfg.Backend.ExportPageSize, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"api_base": api.Base(),
		"redis":    redisClient != nil,
	})
	logg.Info(ctx, "starting web server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			redisClient,
			api,
			api,
			storefrontService,
			adminService,
			exportService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "web server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
