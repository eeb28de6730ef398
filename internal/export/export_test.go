package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/baabuu/storefront-web/internal/backend"
	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/pkg/enums"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/media"
)

type fakeSource struct {
	products   []catalog.Product
	categories []catalog.Category
	err        error
	query      backend.ProductQuery
}

func (f *fakeSource) ListAllProducts(_ context.Context, q backend.ProductQuery) ([]catalog.Product, error) {
	f.query = q
	return f.products, f.err
}

func (f *fakeSource) ListCategories(context.Context) ([]catalog.Category, error) {
	return f.categories, f.err
}

var knitwear = catalog.Category{ID: "3", Name: "Knitwear", Slug: "knitwear", Image: "categories/knit.jpg", IsActive: true}

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:             "11",
			Name:           "Wool, \"chunky\" sweater",
			Description:    "Warm",
			Price:          decimal.RequireFromString("80.00"),
			CompareAtPrice: decimal.NewNullDecimal(decimal.NewFromInt(100)),
			Category:       &knitwear,
			StockQuantity:  3,
			IsAvailable:    true,
			Tags:           "winter,wool",
			MainImage:      "/media/products/sweater.jpg",
			CreatedAt:      time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			ID:            "12",
			Name:          "Scarf",
			Price:         decimal.NewFromInt(15),
			StockQuantity: 0,
			IsAvailable:   true,
		},
	}
}

func newTestService(t *testing.T, src *fakeSource) *service {
	t.Helper()
	svc, err := NewService(src, media.NewResolver("https://media.example.com", ""), 500, nil)
	require.NoError(t, err)
	s := svc.(*service)
	s.now = func() time.Time { return time.Date(2024, 5, 2, 23, 0, 0, 0, time.UTC) }
	return s
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "products_export_2024-01-09.csv", Filename(enums.ExportKindProducts, enums.ExportFormatCSV, at))
	assert.Equal(t, "categories_export_2024-01-09.xlsx", Filename(enums.ExportKindCategories, enums.ExportFormatXLSX, at))
}

func TestExportProductsCSV(t *testing.T) {
	src := &fakeSource{products: sampleProducts()}
	svc := newTestService(t, src)

	file, err := svc.Export(context.Background(), enums.ExportKindProducts, enums.ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "products_export_2024-05-02.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, 2, file.Records)
	assert.Equal(t, 500, src.query.PageSize)

	rows, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, productColumns, rows[0])

	col := func(name string) int {
		for i, h := range rows[0] {
			if h == name {
				return i
			}
		}
		t.Fatalf("missing column %s", name)
		return -1
	}
	first := rows[1]
	assert.Equal(t, "Wool, \"chunky\" sweater", first[col("name")])
	assert.Equal(t, "80", first[col("price")])
	assert.Equal(t, "100", first[col("compare_at_price")])
	assert.Equal(t, "20", first[col("discount_percentage")])
	assert.Equal(t, "knitwear", first[col("category")])
	assert.Equal(t, "low", first[col("stock_status")])
	assert.Equal(t, "https://media.example.com/media/products/sweater.jpg", first[col("image_url")])
	assert.Equal(t, "2024-05-01T08:30:00Z", first[col("created_at")])

	second := rows[2]
	assert.Empty(t, second[col("compare_at_price")])
	assert.Empty(t, second[col("discount_percentage")])
	assert.Empty(t, second[col("category")])
	assert.Empty(t, second[col("image_url")])
	assert.Equal(t, "out", second[col("stock_status")])
}

func TestExportProductsJSON(t *testing.T) {
	svc := newTestService(t, &fakeSource{products: sampleProducts()})

	file, err := svc.Export(context.Background(), enums.ExportKindProducts, enums.ExportFormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", file.ContentType)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(file.Body, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "11", decoded[0]["id"])
	assert.Equal(t, "https://media.example.com/media/products/sweater.jpg", decoded[0]["image_url"])
	assert.Nil(t, decoded[1]["image_url"])
}

func TestExportCategoriesXLSX(t *testing.T) {
	svc := newTestService(t, &fakeSource{categories: []catalog.Category{knitwear}})

	file, err := svc.Export(context.Background(), enums.ExportKindCategories, enums.ExportFormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "categories_export_2024-05-02.xlsx", file.Filename)

	book, err := xlsx.OpenBinary(file.Body)
	require.NoError(t, err)
	require.Len(t, book.Sheets, 1)
	sheet := book.Sheets[0]
	assert.Equal(t, "Categories", sheet.Name)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "slug", sheet.Rows[0].Cells[2].Value)
	assert.Equal(t, "knitwear", sheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "https://media.example.com/media/categories/knit.jpg", sheet.Rows[1].Cells[5].Value)
}

func TestExportPropagatesSourceErrors(t *testing.T) {
	svc := newTestService(t, &fakeSource{err: pkgerrors.New(pkgerrors.CodeDependency, "catalog api unreachable")})

	_, err := svc.Export(context.Background(), enums.ExportKindProducts, enums.ExportFormatCSV)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestExportRejectsUnknownKind(t *testing.T) {
	svc := newTestService(t, &fakeSource{})

	_, err := svc.Export(context.Background(), enums.ExportKind("orders"), enums.ExportFormatCSV)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Encode(enums.ExportFormat("pdf"), nil, Table{})
	assert.Error(t, err)
}
