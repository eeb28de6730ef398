package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/internal/listing"
	"github.com/baabuu/storefront-web/internal/storefront"
	"github.com/baabuu/storefront-web/pkg/enums"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/types"
)

type stubStorefront struct {
	params listing.Params
	page   *listing.ViewPage
	detail *storefront.DetailView
	err    error
}

func (s *stubStorefront) Home(ctx context.Context) (*storefront.HomeView, error) {
	return &storefront.HomeView{}, s.err
}

func (s *stubStorefront) Browse(ctx context.Context, params listing.Params) (*listing.ViewPage, error) {
	s.params = params
	return s.page, s.err
}

func (s *stubStorefront) Product(ctx context.Context, id catalog.ID) (*storefront.DetailView, error) {
	return s.detail, s.err
}

func (s *stubStorefront) Categories(ctx context.Context) ([]catalog.CategoryView, error) {
	return []catalog.CategoryView{{ID: "1", Name: "Shoes", Slug: "shoes"}}, s.err
}

func TestStorefrontProductsParsesQuery(t *testing.T) {
	svc := &stubStorefront{page: &listing.ViewPage{
		Items: []catalog.ProductView{{ID: "7", Name: "Boot"}},
		Meta:  listing.Meta{Page: 2, PageSize: 12, TotalPages: 3, TotalCount: 30, HasNext: true, HasPrevious: true},
	}}
	handler := StorefrontProducts(svc, 12, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/storefront/products?search=+boot+&category=shoes&sort=price-asc&page=2", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "boot", svc.params.Search)
	assert.Equal(t, "shoes", svc.params.Category)
	assert.Equal(t, enums.SortPriceAsc, svc.params.Sort)
	assert.Equal(t, 2, svc.params.Page)
	assert.Equal(t, 12, svc.params.PageSize)

	var envelope struct {
		Data       []catalog.ProductView `json:"data"`
		Pagination types.PaginationMeta  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, catalog.ID("7"), envelope.Data[0].ID)
	assert.Equal(t, 30, envelope.Pagination.TotalCount)
	assert.True(t, envelope.Pagination.HasNext)
}

func TestStorefrontProductsRejectsBadPage(t *testing.T) {
	handler := StorefrontProducts(&stubStorefront{}, 12, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/storefront/products?page=zero", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, string(pkgerrors.CodeValidation), decodeError(t, resp).Code)
}

func TestStorefrontProductNotFound(t *testing.T) {
	svc := &stubStorefront{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := StorefrontProduct(svc, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/storefront/products/99", nil), "productId", "99")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "product not found", decodeError(t, resp).Message)
}

func TestStorefrontProductRequiresID(t *testing.T) {
	handler := StorefrontProduct(&stubStorefront{}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/storefront/products/", nil), "productId", " ")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestStorefrontUnavailable(t *testing.T) {
	handler := StorefrontHome(nil, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/storefront/home", nil))

	require.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestStorefrontCategories(t *testing.T) {
	handler := StorefrontCategories(&stubStorefront{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/storefront/categories", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	var categories []catalog.CategoryView
	decodeData(t, resp, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, "shoes", categories[0].Slug)
}
