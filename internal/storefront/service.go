package storefront

import (
	"context"
	"errors"

	"github.com/baabuu/storefront-web/internal/cache"
	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/internal/listing"
	"github.com/baabuu/storefront-web/pkg/config"
	"github.com/baabuu/storefront-web/pkg/enums"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/media"
)

// Service backs the public storefront pages.
type Service interface {
	Home(ctx context.Context) (*HomeView, error)
	Browse(ctx context.Context, params listing.Params) (*listing.ViewPage, error)
	Product(ctx context.Context, id catalog.ID) (*DetailView, error)
	Categories(ctx context.Context) ([]catalog.CategoryView, error)
}

// SnapshotReader supplies the buffered catalog.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (cache.Snapshot, error)
}

// ProductReader fetches a single product with its gallery.
type ProductReader interface {
	GetProduct(ctx context.Context, id catalog.ID) (catalog.Product, error)
}

// HomeView is the landing page content.
type HomeView struct {
	Featured   []catalog.ProductView  `json:"featured"`
	Hot        []catalog.ProductView  `json:"hot"`
	Categories []catalog.CategoryView `json:"categories"`
}

// DetailView is a product page with related products from its category.
type DetailView struct {
	Product catalog.ProductView   `json:"product"`
	Related []catalog.ProductView `json:"related"`
}

type service struct {
	snapshots SnapshotReader
	products  ProductReader
	resolver  *media.Resolver
	reporter  listing.MalformedReporter
	cfg       config.CatalogConfig
}

// NewService wires the storefront service.
func NewService(snapshots SnapshotReader, products ProductReader, resolver *media.Resolver, reporter listing.MalformedReporter, cfg config.CatalogConfig) (Service, error) {
	if snapshots == nil {
		return nil, errors.New("snapshot reader is required")
	}
	if products == nil {
		return nil, errors.New("product reader is required")
	}
	if resolver == nil {
		return nil, errors.New("media resolver is required")
	}
	return &service{
		snapshots: snapshots,
		products:  products,
		resolver:  resolver,
		reporter:  reporter,
		cfg:       cfg,
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

func (s *service) Home(ctx context.Context) (*HomeView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	visible := listing.Filter(snap.Products, listing.Params{Status: enums.StatusFilterActive})
	featured := listing.Apply(visible, listing.Params{
		Status:   enums.StatusFilterFeatured,
		PageSize: limitOr(s.cfg.FeaturedLimit, 8),
	})
	hot := listing.Apply(visible, listing.Params{
		Status:   enums.StatusFilterHot,
		PageSize: limitOr(s.cfg.HotLimit, 4),
	})
	categories := activeCategories(snap.Categories)
	if limit := limitOr(s.cfg.HomeCategoryLimit, 3); len(categories) > limit {
		categories = categories[:limit]
	}
	return &HomeView{
		Featured:   catalog.NewProductViews(featured.Items, s.resolver),
		Hot:        catalog.NewProductViews(hot.Items, s.resolver),
		Categories: catalog.NewCategoryViews(categories, s.resolver),
	}, nil
}

func (s *service) Browse(ctx context.Context, params listing.Params) (*listing.ViewPage, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if params.PageSize <= 0 {
		params.PageSize = limitOr(s.cfg.StorefrontPageSize, 12)
	}
	// The storefront never lists unavailable products.
	visible := listing.Filter(snap.Products, listing.Params{Status: enums.StatusFilterActive})
	page := listing.Apply(visible, params).Views(s.resolver)
	return &page, nil
}

func (s *service) Product(ctx context.Context, id catalog.ID) (*DetailView, error) {
	if id.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsMalformed() && s.reporter != nil {
		s.reporter.ReportMalformed(ctx, p)
	}

	view := &DetailView{
		Product: catalog.NewProductView(p, s.resolver),
		Related: []catalog.ProductView{},
	}

	slug := p.CategorySlug()
	if slug == "" {
		return view, nil
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		// Related stays empty when the snapshot is unavailable.
		return view, nil
	}
	related := listing.Filter(snap.Products, listing.Params{Category: slug, Status: enums.StatusFilterActive})
	limit := limitOr(s.cfg.RelatedLimit, 4)
	picked := make([]catalog.Product, 0, limit)
	for _, candidate := range listing.Sort(related, enums.SortNewest) {
		if candidate.ID == p.ID {
			continue
		}
		picked = append(picked, candidate)
		if len(picked) == limit {
			break
		}
	}
	view.Related = catalog.NewProductViews(picked, s.resolver)
	return view, nil
}

func (s *service) Categories(ctx context.Context) ([]catalog.CategoryView, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewCategoryViews(activeCategories(snap.Categories), s.resolver), nil
}

func activeCategories(categories []catalog.Category) []catalog.Category {
	out := make([]catalog.Category, 0, len(categories))
	for _, c := range categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

func limitOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
