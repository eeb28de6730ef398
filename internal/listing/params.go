// Package listing derives display-ready pages and statistics from an
// in-memory product collection. Every function is pure: inputs are never
// mutated and no I/O is performed.
package listing

import (
	"strconv"
	"strings"

	"github.com/baabuu/storefront-web/pkg/enums"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/pagination"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

// Params is the set of view parameters driving one render of a collection.
type Params struct {
	Search   string
	Category string
	Status   enums.StatusFilter
	Stock    enums.StockFilter
	Sort     enums.SortKey
	Page     int
	PageSize int
}

// Query carries raw, unparsed view parameters as received from a request.
type Query struct {
	Search   string
	Category string
	Status   string
	Stock    string
	Sort     string
	Page     string
	PageSize string
}

// ParseParams validates raw view parameters. defaultPageSize applies when the
// query does not name a page size.
func ParseParams(q Query, defaultPageSize int) (Params, error) {
	status, err := enums.ParseStatusFilter(q.Status)
	if err != nil {
		return Params{}, invalidParam("status", err)
	}
	stock, err := enums.ParseStockFilter(q.Stock)
	if err != nil {
		return Params{}, invalidParam("stock", err)
	}
	sortKey, err := enums.ParseSortKey(q.Sort)
	if err != nil {
		return Params{}, invalidParam("sort", err)
	}
	page, err := parsePositive(q.Page, 1)
	if err != nil {
		return Params{}, invalidParam("page", err)
	}
	size, err := parsePositive(q.PageSize, defaultPageSize)
	if err != nil {
		return Params{}, invalidParam("page_size", err)
	}
	return Params{
		Search:   q.Search,
		Category: strings.TrimSpace(q.Category),
		Status:   status,
		Stock:    stock,
		Sort:     sortKey,
		Page:     page,
		PageSize: pagination.NormalizeLimit(size),
	}.Normalize(), nil
}

// Normalize fills zero values with their defaults.
func (p Params) Normalize() Params {
	if p.Status == "" {
		p.Status = enums.StatusFilterAll
	}
	if p.Stock == "" {
		p.Stock = enums.StockFilterAll
	}
	if p.Sort == "" {
		p.Sort = enums.SortNewest
	}
	if strings.EqualFold(strings.TrimSpace(p.Category), CategoryAll) {
		p.Category = ""
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// HasCategory reports whether a category filter is active.
func (p Params) HasCategory() bool {
	c := strings.TrimSpace(p.Category)
	return c != "" && !strings.EqualFold(c, CategoryAll)
}

func parsePositive(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return fallback, nil
	}
	return n, nil
}

func invalidParam(field string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field).
		WithDetails(map[string]any{"field": field})
}
