package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/baabuu/storefront-web/internal/backend"
	"github.com/baabuu/storefront-web/internal/cache"
	"github.com/baabuu/storefront-web/internal/cron"
	"github.com/baabuu/storefront-web/internal/listing"
	"github.com/baabuu/storefront-web/pkg/config"
	"github.com/baabuu/storefront-web/pkg/logger"
	"github.com/baabuu/storefront-web/pkg/metrics"
	"github.com/baabuu/storefront-web/pkg/redis"
)

func main() {
	once := flag.Bool("once", false, "run every job a single time and exit")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "cache-warmer"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cache-warmer",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     logger.IsConsoleFormat(cfg.App.LogFormat),
	})

	catalogMetrics := metrics.NewCatalogMetrics(prometheus.DefaultRegisterer)
	cronMetrics := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)

	var lock cron.Lock = &cron.LocalLock{}
	var snapshotStore redis.SnapshotStore
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisLock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cache-warmer:"+envName(cfg.App.Env)), cfg.Cron.LockTTL)
		if err != nil {
			logg.Error(context.Background(), "failed to create cron lock", err)
			os.Exit(1)
		}
		lock = redisLock
		snapshotStore = redisClient
	} else {
		logg.Warn(context.Background(), "redis disabled; warm runs only fetch the catalog snapshot and store nothing")
	}

	api, err := backend.New(cfg.Backend, cfg.App.PublicOrigin, logg, backend.WithMetrics(catalogMetrics))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog api client", err)
		os.Exit(1)
	}

	snapshots, err := cache.NewStore(snapshotStore, api, cfg.Catalog.CacheTTL, logg, catalogMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog cache", err)
		os.Exit(1)
	}

	snapshotJob, err := cron.NewSnapshotJob(logg, snapshots)
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot job", err)
		os.Exit(1)
	}
	inventoryJob, err := cron.NewInventoryReportJob(logg, snapshots, listing.NewReporter(logg, catalogMetrics))
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory job", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:     logg,
		Registry:   cron.NewRegistry(snapshotJob, inventoryJob),
		Lock:       lock,
		Metrics:    cronMetrics,
		Interval:   cfg.Cron.Interval,
		JobTimeout: cfg.Cron.JobTimeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"api_base": api.Base(),
		"once":     *once,
	})

	if *once {
		logg.Info(ctx, "running cache warm-up once")
		if err := service.RunOnce(ctx); err != nil {
			logg.Error(ctx, "cache warm-up failed", err)
			os.Exit(1)
		}
		return
	}

	logg.Info(ctx, "starting cache warmer")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cache warmer stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "cache warmer shutting down gracefully")
}

func envName(env string) string {
	if env == "" {
		return "local"
	}
	return env
}
