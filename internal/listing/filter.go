package listing

import (
	"strings"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/pkg/enums"
)

type predicate func(catalog.Product) bool

// Filter narrows products by category, status, stock bucket and search text,
// in that order. The result is a new slice; an already filtered input passes
// through unchanged.
func Filter(products []catalog.Product, params Params) []catalog.Product {
	params = params.Normalize()
	steps := []predicate{
		categoryPredicate(params),
		statusPredicate(params.Status),
		stockPredicate(params.Stock),
		searchPredicate(params.Search),
	}

	current := products
	for _, keep := range steps {
		if keep == nil {
			continue
		}
		next := make([]catalog.Product, 0, len(current))
		for _, p := range current {
			if keep(p) {
				next = append(next, p)
			}
		}
		if len(next) == 0 {
			return []catalog.Product{}
		}
		current = next
	}

	out := make([]catalog.Product, len(current))
	copy(out, current)
	return out
}

func categoryPredicate(params Params) predicate {
	if !params.HasCategory() {
		return nil
	}
	ref := strings.TrimSpace(params.Category)
	return func(p catalog.Product) bool {
		return p.InCategory(ref)
	}
}

func statusPredicate(status enums.StatusFilter) predicate {
	switch status {
	case enums.StatusFilterFeatured:
		return func(p catalog.Product) bool { return p.IsFeatured }
	case enums.StatusFilterHot:
		return func(p catalog.Product) bool { return p.IsHot }
	case enums.StatusFilterActive:
		return func(p catalog.Product) bool { return p.IsAvailable }
	case enums.StatusFilterInactive:
		return func(p catalog.Product) bool { return !p.IsAvailable }
	}
	return nil
}

func stockPredicate(stock enums.StockFilter) predicate {
	if stock == enums.StockFilterAll || !stock.IsValid() {
		return nil
	}
	return func(p catalog.Product) bool {
		return stock.Matches(p.StockQuantity)
	}
}

func searchPredicate(search string) predicate {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return nil
	}
	return func(p catalog.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
	}
}
