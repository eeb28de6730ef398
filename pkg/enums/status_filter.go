package enums

import (
	"fmt"
	"strings"
)

// StatusFilter narrows a product collection by its merchandising flags.
type StatusFilter string

const (
	StatusFilterAll      StatusFilter = "all"
	StatusFilterFeatured StatusFilter = "featured"
	StatusFilterHot      StatusFilter = "hot"
	StatusFilterActive   StatusFilter = "active"
	StatusFilterInactive StatusFilter = "inactive"
)

var validStatusFilters = []StatusFilter{
	StatusFilterAll,
	StatusFilterFeatured,
	StatusFilterHot,
	StatusFilterActive,
	StatusFilterInactive,
}

// String implements fmt.Stringer.
func (s StatusFilter) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StatusFilter.
func (s StatusFilter) IsValid() bool {
	for _, candidate := range validStatusFilters {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStatusFilter converts raw input into a StatusFilter. Empty input means all.
func ParseStatusFilter(value string) (StatusFilter, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return StatusFilterAll, nil
	}
	for _, candidate := range validStatusFilters {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid status filter %q", value)
}
