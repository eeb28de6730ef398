package listing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/pkg/enums"
)

// Statistics summarises a product collection.
type Statistics struct {
	Total               int                 `json:"total"`
	Featured            int                 `json:"featured"`
	Hot                 int                 `json:"hot"`
	Active              int                 `json:"active"`
	LowStock            int                 `json:"low_stock"`
	OutOfStock          int                 `json:"out_of_stock"`
	Discounted          int                 `json:"discounted"`
	Malformed           int                 `json:"malformed"`
	TotalInventoryValue decimal.Decimal     `json:"total_inventory_value"`
	TotalStockUnits     int                 `json:"total_stock_units"`
	AveragePrice        decimal.Decimal     `json:"average_price"`
	Uncategorized       int                 `json:"uncategorized"`
	PerCategory         []CategoryBreakdown `json:"per_category"`
	PriceBuckets        []PriceBucket       `json:"price_buckets"`
}

// CategoryBreakdown is the share of the collection referencing one category.
type CategoryBreakdown struct {
	Category       catalog.Category `json:"category"`
	Count          int              `json:"count"`
	InventoryValue decimal.Decimal  `json:"inventory_value"`
}

// PriceBucket counts products with Min <= price < Max. Max is absent on the
// last, open-ended bucket.
type PriceBucket struct {
	Label string              `json:"label"`
	Min   decimal.Decimal     `json:"min"`
	Max   decimal.NullDecimal `json:"max"`
	Count int                 `json:"count"`
}

func (b PriceBucket) contains(price decimal.Decimal) bool {
	if price.LessThan(b.Min) {
		return false
	}
	return !b.Max.Valid || price.LessThan(b.Max.Decimal)
}

// PriceBoundaries are the fixed histogram edges.
var PriceBoundaries = []int64{0, 50, 100, 200}

func newPriceBuckets() []PriceBucket {
	buckets := make([]PriceBucket, len(PriceBoundaries))
	for i, lo := range PriceBoundaries {
		b := PriceBucket{Min: decimal.NewFromInt(lo)}
		if i+1 < len(PriceBoundaries) {
			hi := decimal.NewFromInt(PriceBoundaries[i+1])
			b.Max = decimal.NullDecimal{Decimal: hi, Valid: true}
			b.Label = b.Min.String() + "-" + hi.String()
		} else {
			b.Label = b.Min.String() + "+"
		}
		buckets[i] = b
	}
	return buckets
}

// Aggregate computes statistics over products. Pass the full collection for
// catalog-wide figures; a pre-filtered slice yields figures for that subset.
// categories drives the per-category breakdown and keeps its order for ties.
func Aggregate(products []catalog.Product, categories []catalog.Category) Statistics {
	stats := Statistics{
		TotalInventoryValue: decimal.Zero,
		AveragePrice:        decimal.Zero,
		PerCategory:         make([]CategoryBreakdown, len(categories)),
		PriceBuckets:        newPriceBuckets(),
	}
	for i, c := range categories {
		stats.PerCategory[i] = CategoryBreakdown{Category: c, InventoryValue: decimal.Zero}
	}

	priceSum := decimal.Zero
	for _, p := range products {
		stats.Total++
		if p.IsFeatured {
			stats.Featured++
		}
		if p.IsHot {
			stats.Hot++
		}
		if p.IsAvailable {
			stats.Active++
		}
		if enums.StockFilterLow.Matches(p.StockQuantity) {
			stats.LowStock++
		}
		if enums.StockFilterOut.Matches(p.StockQuantity) {
			stats.OutOfStock++
		}
		if p.HasDiscount() {
			stats.Discounted++
		}
		if p.IsMalformed() {
			stats.Malformed++
		}

		value := p.InventoryValue()
		stats.TotalInventoryValue = stats.TotalInventoryValue.Add(value)
		stats.TotalStockUnits += p.StockQuantity
		priceSum = priceSum.Add(p.Price)

		if idx := categoryIndex(categories, p); idx >= 0 {
			stats.PerCategory[idx].Count++
			stats.PerCategory[idx].InventoryValue = stats.PerCategory[idx].InventoryValue.Add(value)
		} else {
			stats.Uncategorized++
		}

		for i := range stats.PriceBuckets {
			if stats.PriceBuckets[i].contains(p.Price) {
				stats.PriceBuckets[i].Count++
				break
			}
		}
	}

	if stats.Total > 0 {
		stats.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(stats.Total))).Round(2)
	}

	sort.SliceStable(stats.PerCategory, func(i, j int) bool {
		return stats.PerCategory[i].Count > stats.PerCategory[j].Count
	})
	return stats
}

// categoryIndex finds the category a product references, by id when both
// sides carry one and by slug otherwise.
func categoryIndex(categories []catalog.Category, p catalog.Product) int {
	ref := p.Category
	if ref == nil {
		return -1
	}
	for i, c := range categories {
		if !ref.ID.IsZero() && !c.ID.IsZero() {
			if ref.ID == c.ID {
				return i
			}
			continue
		}
		if ref.Slug != "" && ref.Slug == c.Slug {
			return i
		}
	}
	return -1
}
