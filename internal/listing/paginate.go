package listing

import (
	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/pkg/media"
	"github.com/baabuu/storefront-web/pkg/pagination"
)

// Page is one rendered slice of a collection plus its pagination metadata.
type Page struct {
	Items      []catalog.Product `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	TotalCount int               `json:"total_count"`
}

// Paginate clamps page into [1, totalPages] and returns that slice of products.
func Paginate(products []catalog.Product, page, pageSize int) Page {
	w := pagination.Resolve(page, pageSize, len(products))
	items := make([]catalog.Product, w.End-w.Start)
	copy(items, products[w.Start:w.End])
	return Page{
		Items:      items,
		Page:       w.Page,
		PageSize:   w.PageSize,
		TotalPages: w.TotalPages,
		TotalCount: w.TotalCount,
	}
}

// HasNext reports whether another page follows.
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrevious reports whether a page precedes this one.
func (p Page) HasPrevious() bool {
	return p.Page > 1
}

// Apply runs filter, sort and paginate in sequence.
func Apply(products []catalog.Product, params Params) Page {
	params = params.Normalize()
	filtered := Filter(products, params)
	return Paginate(Sort(filtered, params.Sort), params.Page, params.PageSize)
}

// Meta is a page's metadata without its items.
type Meta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Meta returns the page's metadata.
func (p Page) Meta() Meta {
	return Meta{
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		HasNext:     p.HasNext(),
		HasPrevious: p.HasPrevious(),
	}
}

// ViewPage is a page projected for display.
type ViewPage struct {
	Items []catalog.ProductView `json:"items"`
	Meta  Meta                  `json:"meta"`
}

// Views projects the page's items with resolver.
func (p Page) Views(resolver *media.Resolver) ViewPage {
	return ViewPage{
		Items: catalog.NewProductViews(p.Items, resolver),
		Meta:  p.Meta(),
	}
}
