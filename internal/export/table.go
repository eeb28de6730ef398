package export

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/pkg/media"
)

// Table is a rectangular export: one header row and one row per record.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

var productColumns = []string{
	"id", "name", "slug", "description", "price", "compare_at_price",
	"discount_percentage", "category", "sku", "stock_quantity", "stock_status",
	"is_available", "is_featured", "is_hot", "rating", "review_count",
	"tags", "sizes", "colors", "image_url", "created_at",
}

var categoryColumns = []string{"id", "name", "slug", "description", "is_active", "image_url"}

// ProductTable flattens products into export rows with image URLs resolved.
func ProductTable(products []catalog.Product, r *media.Resolver) Table {
	t := Table{Sheet: "Products", Header: productColumns, Rows: make([][]any, 0, len(products))}
	for _, p := range products {
		v := catalog.NewProductView(p, r)
		var discount any
		if v.DiscountPercentage != nil {
			discount = *v.DiscountPercentage
		}
		var category any
		if v.Category != nil {
			category = v.Category.Slug
		}
		var created any
		if v.CreatedAt != nil {
			created = *v.CreatedAt
		}
		t.Rows = append(t.Rows, []any{
			v.ID.String(), v.Name, v.Slug, v.Description, v.Price, nullable(v.CompareAtPrice),
			discount, category, v.SKU, v.StockQuantity, v.StockStatus,
			v.IsAvailable, v.IsFeatured, v.IsHot, nullable(v.Rating), v.ReviewCount,
			p.Tags, p.Sizes, p.Colors, deref(v.ImageURL), created,
		})
	}
	return t
}

// CategoryTable flattens categories into export rows.
func CategoryTable(categories []catalog.Category, r *media.Resolver) Table {
	t := Table{Sheet: "Categories", Header: categoryColumns, Rows: make([][]any, 0, len(categories))}
	for _, c := range categories {
		v := catalog.NewCategoryView(c, r)
		t.Rows = append(t.Rows, []any{v.ID.String(), v.Name, v.Slug, v.Description, v.IsActive, deref(v.ImageURL)})
	}
	return t
}

func nullable(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// formatCell renders a cell as text. Missing values are empty.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	}
	return ""
}

func decimalValue(v any) (float64, bool) {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return 0, false
	}
	return d.InexactFloat64(), true
}
