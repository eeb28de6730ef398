package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
)

// ProductInput is the create/update payload forwarded to the catalog API.
// Nil fields are left untouched on update.
type ProductInput struct {
	Name             *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Description      *string          `json:"description,omitempty"`
	ShortDescription *string          `json:"short_description,omitempty" validate:"omitempty,max=300"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	CompareAtPrice   *decimal.Decimal `json:"compare_at_price,omitempty"`
	CategoryID       *ID              `json:"category_id,omitempty"`
	Tags             *string          `json:"tags,omitempty" validate:"omitempty,max=500"`
	ImageURL         *string          `json:"image_url,omitempty" validate:"omitempty,max=500"`
	StockQuantity    *int             `json:"stock_quantity,omitempty" validate:"omitempty,min=0"`
	IsAvailable      *bool            `json:"is_available,omitempty"`
	Sizes            *string          `json:"sizes,omitempty" validate:"omitempty,max=100"`
	Colors           *string          `json:"colors,omitempty" validate:"omitempty,max=200"`
	Dimensions       *string          `json:"dimensions,omitempty" validate:"omitempty,max=100"`
	Materials        *string          `json:"materials,omitempty" validate:"omitempty,max=200"`
	IsFeatured       *bool            `json:"is_featured,omitempty"`
	IsHot            *bool            `json:"is_hot,omitempty"`
}

// Validate applies the catalog's pricing rules. On create, name, description
// and price are required.
func (in ProductInput) Validate(create bool) error {
	details := map[string]string{}
	if create {
		if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
			details["name"] = "is required"
		}
		if in.Description == nil || strings.TrimSpace(*in.Description) == "" {
			details["description"] = "is required"
		}
		if in.Price == nil {
			details["price"] = "is required"
		}
	} else if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		details["name"] = "must not be blank"
	}
	if in.Price != nil && in.Price.IsNegative() {
		details["price"] = "cannot be negative"
	}
	if in.CompareAtPrice != nil {
		switch {
		case in.CompareAtPrice.IsNegative():
			details["compare_at_price"] = "cannot be negative"
		case in.Price != nil && in.CompareAtPrice.IsPositive() && in.Price.IsPositive() && !in.CompareAtPrice.GreaterThan(*in.Price):
			details["compare_at_price"] = "must be greater than price"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

// CategoryInput is the create/update payload for categories.
type CategoryInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Validate requires a name on create and rejects blank names on update.
func (in CategoryInput) Validate(create bool) error {
	blank := in.Name == nil || strings.TrimSpace(*in.Name) == ""
	if (create && blank) || (!create && in.Name != nil && blank) {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"name": "is required"})
	}
	return nil
}

// ImageUpload is an additional gallery image for a product.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
	AltText     string
	Order       int
	IsPrimary   bool
}
