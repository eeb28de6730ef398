package enums

import (
	"fmt"
	"strings"
)

// LowStockThreshold is the exclusive upper bound of the "low" stock bucket.
const LowStockThreshold = 10

// StockFilter narrows a product collection by stock bucket.
type StockFilter string

const (
	StockFilterAll     StockFilter = "all"
	StockFilterInStock StockFilter = "in"
	StockFilterLow     StockFilter = "low"
	StockFilterOut     StockFilter = "out"
	// StockFilterHealthy keeps products at or above the low stock threshold.
	StockFilterHealthy StockFilter = "ok"
)

var validStockFilters = []StockFilter{
	StockFilterAll,
	StockFilterInStock,
	StockFilterLow,
	StockFilterOut,
	StockFilterHealthy,
}

var stockFilterAliases = map[string]StockFilter{
	"in-stock":     StockFilterInStock,
	"in_stock":     StockFilterInStock,
	"low-stock":    StockFilterLow,
	"stock_low":    StockFilterLow,
	"out-of-stock": StockFilterOut,
	"stock_out":    StockFilterOut,
	"healthy":      StockFilterHealthy,
}

// String implements fmt.Stringer.
func (s StockFilter) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockFilter.
func (s StockFilter) IsValid() bool {
	for _, candidate := range validStockFilters {
		if candidate == s {
			return true
		}
	}
	return false
}

// Matches reports whether a stock quantity falls in the bucket.
func (s StockFilter) Matches(qty int) bool {
	switch s {
	case StockFilterInStock:
		return qty > 0
	case StockFilterLow:
		return qty > 0 && qty < LowStockThreshold
	case StockFilterOut:
		return qty == 0
	case StockFilterHealthy:
		return qty >= LowStockThreshold
	}
	return true
}

// ParseStockFilter converts raw input into a StockFilter. Empty input means all.
func ParseStockFilter(value string) (StockFilter, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return StockFilterAll, nil
	}
	for _, candidate := range validStockFilters {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	if alias, ok := stockFilterAliases[value]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("invalid stock filter %q", value)
}
