package cron

import (
	"context"
	"fmt"

	"github.com/baabuu/storefront-web/internal/cache"
	"github.com/baabuu/storefront-web/pkg/logger"
)

type snapshotRefresher interface {
	Refresh(ctx context.Context) (cache.Snapshot, error)
}

// NewSnapshotJob refreshes the cached catalog snapshot so request paths
// rarely hit the catalog API on a cold cache.
func NewSnapshotJob(logg *logger.Logger, store snapshotRefresher) (Job, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	return &snapshotJob{logg: logg, store: store}, nil
}

type snapshotJob struct {
	logg  *logger.Logger
	store snapshotRefresher
}

func (j *snapshotJob) Name() string { return "catalog_snapshot" }

func (j *snapshotJob) Run(ctx context.Context) error {
	snap, err := j.store.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh snapshot: %w", err)
	}
	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"products":   len(snap.Products),
		"categories": len(snap.Categories),
	}), "catalog snapshot refreshed")
	return nil
}
