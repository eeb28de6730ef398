package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baabuu/storefront-web/internal/cache"
	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/pkg/logger"
)

type fakeStore struct {
	snap      cache.Snapshot
	err       error
	refreshes int
}

func (f *fakeStore) Refresh(context.Context) (cache.Snapshot, error) {
	f.refreshes++
	return f.snap, f.err
}

func (f *fakeStore) Snapshot(context.Context) (cache.Snapshot, error) {
	return f.snap, f.err
}

type recordingReporter struct{ ids []catalog.ID }

func (r *recordingReporter) ReportMalformed(_ context.Context, p catalog.Product) {
	r.ids = append(r.ids, p.ID)
}

func TestSnapshotJob(t *testing.T) {
	store := &fakeStore{snap: cache.Snapshot{Products: []catalog.Product{{ID: "1"}}}}
	job, err := NewSnapshotJob(logger.Nop(), store)
	require.NoError(t, err)

	assert.Equal(t, "catalog_snapshot", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, store.refreshes)

	store.err = errors.New("catalog api unreachable")
	assert.ErrorContains(t, job.Run(context.Background()), "refresh snapshot")
}

func TestInventoryReportJobReportsMalformed(t *testing.T) {
	store := &fakeStore{snap: cache.Snapshot{Products: []catalog.Product{
		{ID: "1", Price: decimal.NewFromInt(10), StockQuantity: 3},
		{ID: "2", Price: decimal.NewFromInt(10), StockQuantity: 30, Malformed: []string{"price"}},
	}}}
	reporter := &recordingReporter{}
	job, err := NewInventoryReportJob(logger.Nop(), store, reporter)
	require.NoError(t, err)

	assert.Equal(t, "inventory_report", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, []catalog.ID{"2"}, reporter.ids)
}

func TestJobsRequireDeps(t *testing.T) {
	_, err := NewSnapshotJob(nil, &fakeStore{})
	assert.Error(t, err)
	_, err = NewInventoryReportJob(logger.Nop(), nil, nil)
	assert.Error(t, err)
}
