package admin

import (
	"context"
	"errors"
	"time"

	"github.com/baabuu/storefront-web/internal/cache"
	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/internal/listing"
	"github.com/baabuu/storefront-web/pkg/config"
	"github.com/baabuu/storefront-web/pkg/logger"
	"github.com/baabuu/storefront-web/pkg/media"
)

// Service backs the admin console.
type Service interface {
	ListProducts(ctx context.Context, params listing.Params) (*listing.ViewPage, error)
	GetProduct(ctx context.Context, id catalog.ID) (*catalog.ProductView, error)
	CreateProduct(ctx context.Context, in catalog.ProductInput) (*catalog.ProductView, error)
	UpdateProduct(ctx context.Context, id catalog.ID, in catalog.ProductInput) (*catalog.ProductView, error)
	DeleteProduct(ctx context.Context, id catalog.ID) error
	BulkUpdate(ctx context.Context, ids []catalog.ID, patch catalog.ProductInput) (*BulkResult, error)
	BulkDelete(ctx context.Context, ids []catalog.ID) (*BulkResult, error)
	UploadImage(ctx context.Context, id catalog.ID, upload catalog.ImageUpload) (*ImageView, error)
	DeleteImage(ctx context.Context, productID, imageID catalog.ID) error

	ListCategories(ctx context.Context, search string) ([]CategorySummary, error)
	CreateCategory(ctx context.Context, in catalog.CategoryInput) (*catalog.CategoryView, error)
	UpdateCategory(ctx context.Context, slug string, in catalog.CategoryInput) (*catalog.CategoryView, error)
	DeleteCategory(ctx context.Context, slug string) error

	Dashboard(ctx context.Context) (*DashboardView, error)
	Analytics(ctx context.Context) (*AnalyticsView, error)
	Settings() SettingsView
}

// CatalogWriter is the catalog API surface the admin console mutates through.
type CatalogWriter interface {
	GetProduct(ctx context.Context, id catalog.ID) (catalog.Product, error)
	CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	UpdateProduct(ctx context.Context, id catalog.ID, in catalog.ProductInput) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id catalog.ID) error
	UploadImage(ctx context.Context, id catalog.ID, upload catalog.ImageUpload) (catalog.ProductImage, error)
	DeleteImage(ctx context.Context, productID, imageID catalog.ID) error
	CreateCategory(ctx context.Context, in catalog.CategoryInput) (catalog.Category, error)
	UpdateCategory(ctx context.Context, slug string, in catalog.CategoryInput) (catalog.Category, error)
	DeleteCategory(ctx context.Context, slug string) error
}

// SnapshotStore supplies the buffered catalog and drops it after writes.
type SnapshotStore interface {
	Snapshot(ctx context.Context) (cache.Snapshot, error)
	Invalidate(ctx context.Context) error
}

// Deps groups the collaborators of the admin service.
type Deps struct {
	Catalog   CatalogWriter
	Snapshots SnapshotStore
	Resolver  *media.Resolver
	Reporter  listing.MalformedReporter
	Logger    *logger.Logger
	Config    *config.Config
}

type service struct {
	catalog   CatalogWriter
	snapshots SnapshotStore
	resolver  *media.Resolver
	reporter  listing.MalformedReporter
	logg      *logger.Logger
	cfg       *config.Config
	now       func() time.Time
}

// NewService wires the admin service.
func NewService(deps Deps) (Service, error) {
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("catalog writer is required")
	case deps.Snapshots == nil:
		return nil, errors.New("snapshot store is required")
	case deps.Resolver == nil:
		return nil, errors.New("media resolver is required")
	case deps.Config == nil:
		return nil, errors.New("config is required")
	}
	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		catalog:   deps.Catalog,
		snapshots: deps.Snapshots,
		resolver:  deps.Resolver,
		reporter:  deps.Reporter,
		logg:      logg,
		cfg:       deps.Config,
		now:       time.Now,
	}, nil
}

func (s *service) snapshot(ctx context.Context) (cache.Snapshot, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return cache.Snapshot{}, err
	}
	listing.Inspect(ctx, snap.Products, s.reporter)
	return snap, nil
}

// invalidate drops the snapshot after a write. A failure only delays
// visibility until the snapshot expires, so it is logged and swallowed.
func (s *service) invalidate(ctx context.Context) {
	if err := s.snapshots.Invalidate(ctx); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog snapshot invalidation failed")
	}
}
