package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baabuu/storefront-web/pkg/media"
)

func TestNewProductView(t *testing.T) {
	r := media.NewResolver("https://cdn.example.com", "")
	p := decodeProduct(t, `{
		"id": 4,
		"name": "Denim Jacket",
		"price": "60.00",
		"compare_at_price": "80.00",
		"stock_quantity": 4,
		"main_image_url": "/media/a.jpg",
		"image_url": "/media/b.jpg",
		"category": {"id": 2, "name": "Jackets", "slug": "jackets", "image": "categories/jackets.png"},
		"images": [
			{"id": 1, "image": "products/gallery/1.jpg"},
			{"id": 2, "image_url": "https://img.example.com/2.jpg"},
			{"id": 3}
		],
		"tags": "denim, outerwear"
	}`)

	v := NewProductView(p, r)
	require.NotNil(t, v.ImageURL)
	assert.Equal(t, "https://cdn.example.com/media/a.jpg", *v.ImageURL)
	assert.Equal(t, []string{
		"https://cdn.example.com/media/a.jpg",
		"https://cdn.example.com/media/products/gallery/1.jpg",
		"https://img.example.com/2.jpg",
	}, v.Gallery)
	require.NotNil(t, v.DiscountPercentage)
	assert.Equal(t, 25, *v.DiscountPercentage)
	assert.Equal(t, StockStatusLow, v.StockStatus)
	require.NotNil(t, v.Category)
	require.NotNil(t, v.Category.ImageURL)
	assert.Equal(t, "https://cdn.example.com/media/categories/jackets.png", *v.Category.ImageURL)
	assert.Equal(t, []string{"denim", "outerwear"}, v.Tags)
	assert.Nil(t, v.CreatedAt)
}

func TestNewProductViewWithoutImages(t *testing.T) {
	r := media.NewResolver("", "https://shop.example.com")
	v := NewProductView(Product{ID: "1", Name: "Plain", Price: decimal.NewFromInt(10)}, r)
	assert.Nil(t, v.ImageURL)
	assert.Empty(t, v.Gallery)
	assert.Nil(t, v.DiscountPercentage)
	assert.Equal(t, StockStatusOut, v.StockStatus)
	assert.Nil(t, v.Category)
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, StockStatusOut, StockStatus(0))
	assert.Equal(t, StockStatusLow, StockStatus(1))
	assert.Equal(t, StockStatusLow, StockStatus(9))
	assert.Equal(t, StockStatusOK, StockStatus(10))
}
