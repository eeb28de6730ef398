package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

func TestProductInputValidate(t *testing.T) {
	price := decimal.RequireFromString("40")

	t.Run("create requires fields", func(t *testing.T) {
		err := ProductInput{}.Validate(true)
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		details := typed.Details().(map[string]string)
		assert.Contains(t, details, "name")
		assert.Contains(t, details, "description")
		assert.Contains(t, details, "price")
	})

	t.Run("valid create", func(t *testing.T) {
		in := ProductInput{Name: ptr("Tee"), Description: ptr("Cotton tee"), Price: &price, CompareAtPrice: ptr(decimal.RequireFromString("60"))}
		assert.NoError(t, in.Validate(true))
	})

	t.Run("compare must exceed price", func(t *testing.T) {
		in := ProductInput{Price: &price, CompareAtPrice: ptr(decimal.RequireFromString("40"))}
		err := in.Validate(false)
		require.Error(t, err)
		assert.Contains(t, pkgerrors.As(err).Details().(map[string]string), "compare_at_price")
	})

	t.Run("negative price", func(t *testing.T) {
		err := ProductInput{Price: ptr(decimal.RequireFromString("-1"))}.Validate(false)
		require.Error(t, err)
	})

	t.Run("partial update", func(t *testing.T) {
		assert.NoError(t, ProductInput{IsFeatured: ptr(true)}.Validate(false))
		assert.Error(t, ProductInput{Name: ptr("  ")}.Validate(false))
	})
}

func TestCategoryInputValidate(t *testing.T) {
	assert.Error(t, CategoryInput{}.Validate(true))
	assert.NoError(t, CategoryInput{Name: ptr("Shoes")}.Validate(true))
	assert.NoError(t, CategoryInput{IsActive: ptr(false)}.Validate(false))
	assert.Error(t, CategoryInput{Name: ptr("")}.Validate(false))
}
