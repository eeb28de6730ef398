package admin

import (
	"context"
	"time"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/internal/listing"
	"github.com/baabuu/storefront-web/pkg/enums"
)

const defaultRecentLimit = 5

// DashboardView is the landing summary of the admin console.
type DashboardView struct {
	TotalProducts   int                   `json:"total_products"`
	TotalCategories int                   `json:"total_categories"`
	Featured        int                   `json:"featured"`
	Hot             int                   `json:"hot"`
	LowStock        int                   `json:"low_stock"`
	OutOfStock      int                   `json:"out_of_stock"`
	Recent          []catalog.ProductView `json:"recent"`
	SnapshotAt      time.Time             `json:"snapshot_at"`
}

// AnalyticsView extends the collection statistics with category totals.
type AnalyticsView struct {
	listing.Statistics
	TotalCategories  int       `json:"total_categories"`
	ActiveCategories int       `json:"active_categories"`
	GeneratedAt      time.Time `json:"generated_at"`
	SnapshotAt       time.Time `json:"snapshot_at"`
}

func (s *service) Dashboard(ctx context.Context) (*DashboardView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	stats := listing.Aggregate(snap.Products, snap.Categories)

	limit := s.cfg.Catalog.RecentLimit
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	recent := listing.Sort(snap.Products, enums.SortNewest)
	if len(recent) > limit {
		recent = recent[:limit]
	}

	return &DashboardView{
		TotalProducts:   stats.Total,
		TotalCategories: len(snap.Categories),
		Featured:        stats.Featured,
		Hot:             stats.Hot,
		LowStock:        stats.LowStock,
		OutOfStock:      stats.OutOfStock,
		Recent:          catalog.NewProductViews(recent, s.resolver),
		SnapshotAt:      snap.FetchedAt,
	}, nil
}

func (s *service) Analytics(ctx context.Context) (*AnalyticsView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	active := 0
	for _, c := range snap.Categories {
		if c.IsActive {
			active++
		}
	}
	return &AnalyticsView{
		Statistics:       listing.Aggregate(snap.Products, snap.Categories),
		TotalCategories:  len(snap.Categories),
		ActiveCategories: active,
		GeneratedAt:      s.now().UTC(),
		SnapshotAt:       snap.FetchedAt,
	}, nil
}
