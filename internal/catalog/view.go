package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/baabuu/storefront-web/pkg/enums"
	"github.com/baabuu/storefront-web/pkg/media"
)

// Stock badges shown next to a product.
const (
	StockStatusOK  = "ok"
	StockStatusLow = "low"
	StockStatusOut = "out"
)

// ProductView is the display-ready projection of a product. A nil ImageURL
// means the client should render a placeholder.
type ProductView struct {
	ID                 ID                  `json:"id"`
	Name               string              `json:"name"`
	Slug               string              `json:"slug,omitempty"`
	Description        string              `json:"description"`
	ShortDescription   string              `json:"short_description,omitempty"`
	Price              decimal.Decimal     `json:"price"`
	CompareAtPrice     decimal.NullDecimal `json:"compare_at_price"`
	DiscountPercentage *int                `json:"discount_percentage"`
	Category           *CategoryView       `json:"category"`
	ImageURL           *string             `json:"image_url"`
	Gallery            []string            `json:"gallery,omitempty"`
	SKU                string              `json:"sku,omitempty"`
	StockQuantity      int                 `json:"stock_quantity"`
	StockStatus        string              `json:"stock_status"`
	IsAvailable        bool                `json:"is_available"`
	IsFeatured         bool                `json:"is_featured"`
	IsHot              bool                `json:"is_hot"`
	Rating             decimal.NullDecimal `json:"rating"`
	ReviewCount        int                 `json:"review_count"`
	Tags               []string            `json:"tags,omitempty"`
	Sizes              []string            `json:"sizes,omitempty"`
	Colors             []string            `json:"colors,omitempty"`
	Materials          string              `json:"materials,omitempty"`
	Dimensions         string              `json:"dimensions,omitempty"`
	CreatedAt          *time.Time          `json:"created_at"`
}

// CategoryView is a category with its image resolved.
type CategoryView struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description,omitempty"`
	ImageURL    *string `json:"image_url"`
	IsActive    bool    `json:"is_active"`
}

// StockStatus classifies a stock quantity into a badge.
func StockStatus(qty int) string {
	switch {
	case enums.StockFilterOut.Matches(qty):
		return StockStatusOut
	case enums.StockFilterLow.Matches(qty):
		return StockStatusLow
	}
	return StockStatusOK
}

// NewProductView projects p for display, resolving image references with r.
// The gallery lists the main image first, followed by the additional images.
func NewProductView(p Product, r *media.Resolver) ProductView {
	v := ProductView{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		CompareAtPrice:   p.CompareAtPrice,
		SKU:              p.SKU,
		StockQuantity:    p.StockQuantity,
		StockStatus:      StockStatus(p.StockQuantity),
		IsAvailable:      p.IsAvailable,
		IsFeatured:       p.IsFeatured,
		IsHot:            p.IsHot,
		Rating:           p.Rating,
		ReviewCount:      p.ReviewCount,
		Tags:             p.TagList(),
		Sizes:            p.SizeList(),
		Colors:           p.ColorList(),
		Materials:        p.Materials,
		Dimensions:       p.Dimensions,
	}
	if pct, ok := p.DiscountPercentage(); ok {
		v.DiscountPercentage = &pct
	}
	if p.Category != nil {
		cv := NewCategoryView(*p.Category, r)
		v.Category = &cv
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		v.CreatedAt = &created
	}
	if u, ok := r.ResolveProductImage(p.ImageRefs()); ok {
		v.ImageURL = &u
		v.Gallery = append(v.Gallery, u)
	}
	for _, img := range p.Images {
		if u, ok := r.ResolveProductImage(img.ImageRefs()); ok {
			v.Gallery = append(v.Gallery, u)
		}
	}
	return v
}

// NewProductViews projects every product.
func NewProductViews(products []Product, r *media.Resolver) []ProductView {
	out := make([]ProductView, len(products))
	for i, p := range products {
		out[i] = NewProductView(p, r)
	}
	return out
}

// NewCategoryView projects c for display.
func NewCategoryView(c Category, r *media.Resolver) CategoryView {
	v := CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
	if u, ok := r.ResolveURL(c.Image); ok {
		v.ImageURL = &u
	}
	return v
}

// NewCategoryViews projects every category.
func NewCategoryViews(categories []Category, r *media.Resolver) []CategoryView {
	out := make([]CategoryView, len(categories))
	for i, c := range categories {
		out[i] = NewCategoryView(c, r)
	}
	return out
}
