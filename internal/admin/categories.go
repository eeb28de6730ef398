package admin

import (
	"context"
	"strings"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/internal/listing"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
)

// CategorySummary is a category with the number of products referencing it.
type CategorySummary struct {
	catalog.CategoryView
	ProductCount int `json:"product_count"`
}

func (s *service) ListCategories(ctx context.Context, search string) ([]CategorySummary, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	stats := listing.Aggregate(snap.Products, snap.Categories)
	counts := make(map[catalog.ID]int, len(stats.PerCategory))
	for _, b := range stats.PerCategory {
		counts[b.Category.ID] = b.Count
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]CategorySummary, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		if needle != "" && !categoryMatches(c, needle) {
			continue
		}
		out = append(out, CategorySummary{
			CategoryView: catalog.NewCategoryView(c, s.resolver),
			ProductCount: counts[c.ID],
		})
	}
	return out, nil
}

func categoryMatches(c catalog.Category, needle string) bool {
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Description), needle)
}

func (s *service) CreateCategory(ctx context.Context, in catalog.CategoryInput) (*catalog.CategoryView, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}
	c, err := s.catalog.CreateCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logg.Info(s.logg.WithField(ctx, "category_slug", c.Slug), "category created")
	view := catalog.NewCategoryView(c, s.resolver)
	return &view, nil
}

func (s *service) UpdateCategory(ctx context.Context, slug string, in catalog.CategoryInput) (*catalog.CategoryView, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}
	if err := in.Validate(false); err != nil {
		return nil, err
	}
	c, err := s.catalog.UpdateCategory(ctx, slug, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	view := catalog.NewCategoryView(c, s.resolver)
	return &view, nil
}

func (s *service) DeleteCategory(ctx context.Context, slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}
	if err := s.catalog.DeleteCategory(ctx, slug); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logg.Info(s.logg.WithField(ctx, "category_slug", slug), "category deleted")
	return nil
}
