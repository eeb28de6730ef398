package cron

import (
	"context"
	"fmt"

	"github.com/baabuu/storefront-web/internal/cache"
	"github.com/baabuu/storefront-web/internal/listing"
	"github.com/baabuu/storefront-web/pkg/logger"
)

type snapshotReader interface {
	Snapshot(ctx context.Context) (cache.Snapshot, error)
}

// NewInventoryReportJob logs stock health computed over the cached catalog.
// Malformed records found along the way go to reporter.
func NewInventoryReportJob(logg *logger.Logger, store snapshotReader, reporter listing.MalformedReporter) (Job, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	return &inventoryReportJob{logg: logg, store: store, reporter: reporter}, nil
}

type inventoryReportJob struct {
	logg     *logger.Logger
	store    snapshotReader
	reporter listing.MalformedReporter
}

func (j *inventoryReportJob) Name() string { return "inventory_report" }

func (j *inventoryReportJob) Run(ctx context.Context) error {
	snap, err := j.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	malformed := listing.Inspect(ctx, snap.Products, j.reporter)
	stats := listing.Aggregate(snap.Products, snap.Categories)

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"total":           stats.Total,
		"low_stock":       stats.LowStock,
		"out_of_stock":    stats.OutOfStock,
		"stock_units":     stats.TotalStockUnits,
		"inventory_value": stats.TotalInventoryValue.StringFixed(2),
		"malformed":       malformed,
	})
	if stats.OutOfStock > 0 || stats.LowStock > 0 {
		j.logg.Warn(logCtx, "inventory needs restocking")
		return nil
	}
	j.logg.Info(logCtx, "inventory report")
	return nil
}
