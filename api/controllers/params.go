package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/internal/listing"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/types"
)

func productIDParam(r *http.Request) (catalog.ID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "productId"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return catalog.ID(raw), nil
}

func slugParam(r *http.Request) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "slug"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}
	return raw, nil
}

func paginationMeta(m listing.Meta) types.PaginationMeta {
	return types.PaginationMeta{
		Page:        m.Page,
		PageSize:    m.PageSize,
		TotalPages:  m.TotalPages,
		TotalCount:  m.TotalCount,
		HasNext:     m.HasNext,
		HasPrevious: m.HasPrevious,
	}
}
