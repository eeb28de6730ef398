package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/baabuu/storefront-web/internal/catalog"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
)

// ListCategories returns every active category. The categories endpoint is
// small enough that one buffered page covers it.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var raw json.RawMessage
	err := c.do(ctx, request{
		operation: "list_categories",
		method:    http.MethodGet,
		endpoint:  "/categories/",
		query:     url.Values{"page_size": []string{"1000"}},
	}, &raw)
	if err != nil {
		return nil, err
	}
	page, err := decodePage[catalog.Category](raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode category list")
	}
	return page.Results, nil
}

// GetCategory fetches a category by slug.
func (c *Client) GetCategory(ctx context.Context, slug string) (catalog.Category, error) {
	var cat catalog.Category
	err := c.do(ctx, request{
		operation: "get_category",
		method:    http.MethodGet,
		endpoint:  "/categories/" + url.PathEscape(slug) + "/",
	}, &cat)
	return cat, err
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, in catalog.CategoryInput) (catalog.Category, error) {
	var cat catalog.Category
	err := c.do(ctx, request{
		operation: "create_category",
		method:    http.MethodPost,
		endpoint:  "/categories/",
		body:      in,
	}, &cat)
	return cat, err
}

// UpdateCategory applies a partial update to the category with slug.
func (c *Client) UpdateCategory(ctx context.Context, slug string, in catalog.CategoryInput) (catalog.Category, error) {
	var cat catalog.Category
	err := c.do(ctx, request{
		operation: "update_category",
		method:    http.MethodPatch,
		endpoint:  "/categories/" + url.PathEscape(slug) + "/",
		body:      in,
	}, &cat)
	return cat, err
}

// DeleteCategory removes the category with slug.
func (c *Client) DeleteCategory(ctx context.Context, slug string) error {
	return c.do(ctx, request{
		operation: "delete_category",
		method:    http.MethodDelete,
		endpoint:  "/categories/" + url.PathEscape(slug) + "/",
	}, nil)
}
