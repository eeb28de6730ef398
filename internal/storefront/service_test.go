package storefront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baabuu/storefront-web/internal/cache"
	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/internal/listing"
	"github.com/baabuu/storefront-web/pkg/config"
	"github.com/baabuu/storefront-web/pkg/enums"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/media"
)

type stubSnapshots struct {
	snap cache.Snapshot
	err  error
}

func (s stubSnapshots) Snapshot(context.Context) (cache.Snapshot, error) {
	return s.snap, s.err
}

type stubProducts map[catalog.ID]catalog.Product

func (s stubProducts) GetProduct(_ context.Context, id catalog.ID) (catalog.Product, error) {
	p, ok := s[id]
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "Not found.")
	}
	return p, nil
}

type countingReporter struct{ n int }

func (c *countingReporter) ReportMalformed(context.Context, catalog.Product) { c.n++ }

var (
	dresses = catalog.Category{ID: "1", Name: "Dresses", Slug: "dresses", IsActive: true}
	archive = catalog.Category{ID: "2", Name: "Archive", Slug: "archive", IsActive: false}
)

func item(id string, featured, hot bool, daysAgo int) catalog.Product {
	return catalog.Product{
		ID:            catalog.ID(id),
		Name:          "Product " + id,
		Price:         decimal.NewFromInt(20),
		StockQuantity: 5,
		IsAvailable:   true,
		IsFeatured:    featured,
		IsHot:         hot,
		Category:      &dresses,
		MainImage:     "products/" + id + ".jpg",
		CreatedAt:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
	}
}

func newTestService(t *testing.T, products []catalog.Product, reporter listing.MalformedReporter) Service {
	t.Helper()
	byID := stubProducts{}
	for _, p := range products {
		byID[p.ID] = p
	}
	svc, err := NewService(
		stubSnapshots{snap: cache.Snapshot{Products: products, Categories: []catalog.Category{dresses, archive}}},
		byID,
		media.NewResolver("https://cdn.example.com", ""),
		reporter,
		config.CatalogConfig{FeaturedLimit: 2, HotLimit: 1, RelatedLimit: 2, StorefrontPageSize: 2},
	)
	require.NoError(t, err)
	return svc
}

func TestHome(t *testing.T) {
	products := []catalog.Product{
		item("1", true, false, 3),
		item("2", true, true, 1),
		item("3", true, false, 2),
		item("4", false, true, 0),
	}
	svc := newTestService(t, products, nil)

	home, err := svc.Home(context.Background())
	require.NoError(t, err)

	require.Len(t, home.Featured, 2)
	assert.Equal(t, catalog.ID("2"), home.Featured[0].ID)
	assert.Equal(t, catalog.ID("3"), home.Featured[1].ID)
	require.Len(t, home.Hot, 1)
	assert.Equal(t, catalog.ID("4"), home.Hot[0].ID)
	require.Len(t, home.Categories, 1)
	assert.Equal(t, "dresses", home.Categories[0].Slug)
	require.NotNil(t, home.Featured[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/media/products/2.jpg", *home.Featured[0].ImageURL)
}

func TestHomeHidesUnavailableAndCapsCategories(t *testing.T) {
	soldOut := item("9", true, true, 0)
	soldOut.IsAvailable = false
	products := []catalog.Product{item("1", true, true, 2), soldOut}

	categories := []catalog.Category{dresses, archive}
	for _, slug := range []string{"shoes", "bags", "hats"} {
		categories = append(categories, catalog.Category{ID: catalog.ID(slug), Name: slug, Slug: slug, IsActive: true})
	}
	svc, err := NewService(
		stubSnapshots{snap: cache.Snapshot{Products: products, Categories: categories}},
		stubProducts{},
		media.NewResolver("https://cdn.example.com", ""),
		nil,
		config.CatalogConfig{FeaturedLimit: 2, HotLimit: 2},
	)
	require.NoError(t, err)

	home, err := svc.Home(context.Background())
	require.NoError(t, err)

	require.Len(t, home.Featured, 1)
	assert.Equal(t, catalog.ID("1"), home.Featured[0].ID)
	require.Len(t, home.Hot, 1)
	assert.Equal(t, catalog.ID("1"), home.Hot[0].ID)

	require.Len(t, home.Categories, 3)
	slugs := []string{home.Categories[0].Slug, home.Categories[1].Slug, home.Categories[2].Slug}
	assert.Equal(t, []string{"dresses", "shoes", "bags"}, slugs)
}

func TestBrowseHidesUnavailableAndPaginates(t *testing.T) {
	hidden := item("5", false, false, 0)
	hidden.IsAvailable = false
	products := []catalog.Product{item("1", false, false, 3), item("2", false, false, 2), item("3", false, false, 1), hidden}
	svc := newTestService(t, products, nil)

	page, err := svc.Browse(context.Background(), listing.Params{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Meta.TotalCount)
	assert.Equal(t, 2, page.Meta.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, catalog.ID("1"), page.Items[0].ID)

	page, err = svc.Browse(context.Background(), listing.Params{Status: enums.StatusFilterInactive})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Meta.TotalCount)
	assert.Equal(t, 1, page.Meta.TotalPages)
}

func TestProductDetailWithRelated(t *testing.T) {
	products := []catalog.Product{item("1", false, false, 3), item("2", false, false, 2), item("3", false, false, 1), item("4", false, false, 4)}
	svc := newTestService(t, products, nil)

	detail, err := svc.Product(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, catalog.ID("2"), detail.Product.ID)
	require.Len(t, detail.Related, 2)
	assert.Equal(t, catalog.ID("3"), detail.Related[0].ID)
	assert.Equal(t, catalog.ID("1"), detail.Related[1].ID)
}

func TestProductDetailErrors(t *testing.T) {
	svc := newTestService(t, nil, nil)

	_, err := svc.Product(context.Background(), "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Product(context.Background(), "99")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestProductDetailWithoutCategory(t *testing.T) {
	p := item("1", false, false, 0)
	p.Category = nil
	svc := newTestService(t, []catalog.Product{p}, nil)

	detail, err := svc.Product(context.Background(), "1")
	require.NoError(t, err)
	assert.NotNil(t, detail.Related)
	assert.Empty(t, detail.Related)
}

func TestSnapshotErrorsPropagate(t *testing.T) {
	svc, err := NewService(stubSnapshots{err: errors.New("down")}, stubProducts{}, media.NewResolver("", "https://shop.example.com"), nil, config.CatalogConfig{})
	require.NoError(t, err)

	_, err = svc.Home(context.Background())
	assert.EqualError(t, err, "down")
	_, err = svc.Categories(context.Background())
	assert.Error(t, err)
}

func TestMalformedRecordsAreReported(t *testing.T) {
	bad := item("1", false, false, 0)
	bad.Malformed = []string{"price"}
	reporter := &countingReporter{}
	svc := newTestService(t, []catalog.Product{bad, item("2", false, false, 1)}, reporter)

	_, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, reporter.n)
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	_, err := NewService(nil, stubProducts{}, media.NewResolver("", ""), nil, config.CatalogConfig{})
	assert.Error(t, err)
	_, err = NewService(stubSnapshots{}, nil, media.NewResolver("", ""), nil, config.CatalogConfig{})
	assert.Error(t, err)
	_, err = NewService(stubSnapshots{}, stubProducts{}, nil, nil, config.CatalogConfig{})
	assert.Error(t, err)
}
