package listing

import (
	"sort"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/pkg/enums"
)

// Sort returns a stably sorted copy of products. Unknown keys fall back to
// newest first.
func Sort(products []catalog.Product, key enums.SortKey) []catalog.Product {
	out := make([]catalog.Product, len(products))
	copy(out, products)

	var less func(a, b catalog.Product) bool
	switch key {
	case enums.SortName:
		less = func(a, b catalog.Product) bool { return a.Name < b.Name }
	case enums.SortPriceAsc:
		less = func(a, b catalog.Product) bool { return a.Price.LessThan(b.Price) }
	case enums.SortPriceDesc:
		less = func(a, b catalog.Product) bool { return a.Price.GreaterThan(b.Price) }
	case enums.SortRatingDesc:
		less = func(a, b catalog.Product) bool { return a.RatingValue().GreaterThan(b.RatingValue()) }
	default:
		less = newerFirst
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// newerFirst orders by created_at descending; records without a timestamp
// go after every timestamped record.
func newerFirst(a, b catalog.Product) bool {
	switch {
	case a.CreatedAt.IsZero():
		return false
	case b.CreatedAt.IsZero():
		return true
	}
	return a.CreatedAt.After(b.CreatedAt)
}
