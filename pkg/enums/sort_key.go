package enums

import (
	"fmt"
	"strings"
)

// SortKey selects the ordering applied to a product collection.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortName       SortKey = "name"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
)

var validSortKeys = []SortKey{
	SortNewest,
	SortName,
	SortPriceAsc,
	SortPriceDesc,
	SortRatingDesc,
}

// Backend ordering names accepted for compatibility with the catalog API.
var sortKeyAliases = map[string]SortKey{
	"created_at":  SortNewest,
	"-created_at": SortNewest,
	"price":       SortPriceAsc,
	"price_low":   SortPriceAsc,
	"-price":      SortPriceDesc,
	"price_high":  SortPriceDesc,
	"rating":      SortRatingDesc,
	"-rating":     SortRatingDesc,
}

// backendOrdering maps each key onto the catalog API's ordering parameter.
var backendOrdering = map[SortKey]string{
	SortNewest:     "-created_at",
	SortName:       "name",
	SortPriceAsc:   "price_low",
	SortPriceDesc:  "price_high",
	SortRatingDesc: "rating",
}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SortKey.
func (k SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// BackendOrdering returns the sort parameter understood by the catalog API.
func (k SortKey) BackendOrdering() string {
	if v, ok := backendOrdering[k]; ok {
		return v
	}
	return backendOrdering[SortNewest]
}

// ParseSortKey converts raw input into a SortKey. Empty input means newest.
func ParseSortKey(value string) (SortKey, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return SortNewest, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	if alias, ok := sortKeyAliases[value]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
