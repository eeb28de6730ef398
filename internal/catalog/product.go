package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baabuu/storefront-web/pkg/media"
)

var hundred = decimal.NewFromInt(100)

// Product is a sellable catalog item as served by the catalog API.
type Product struct {
	ID               ID                  `json:"id"`
	Name             string              `json:"name"`
	Slug             string              `json:"slug,omitempty"`
	Description      string              `json:"description"`
	ShortDescription string              `json:"short_description"`
	Price            decimal.Decimal     `json:"price"`
	CompareAtPrice   decimal.NullDecimal `json:"compare_at_price"`
	Category         *Category           `json:"category"`
	Tags             string              `json:"tags,omitempty"`
	MainImage        string              `json:"main_image,omitempty"`
	MainImageURL     string              `json:"main_image_url,omitempty"`
	ImageURL         string              `json:"image_url,omitempty"`
	Images           []ProductImage      `json:"images,omitempty"`
	SKU              string              `json:"sku,omitempty"`
	StockQuantity    int                 `json:"stock_quantity"`
	IsAvailable      bool                `json:"is_available"`
	Sizes            string              `json:"sizes,omitempty"`
	Colors           string              `json:"colors,omitempty"`
	Materials        string              `json:"materials,omitempty"`
	Dimensions       string              `json:"dimensions,omitempty"`
	IsFeatured       bool                `json:"is_featured"`
	IsHot            bool                `json:"is_hot"`
	Rating           decimal.NullDecimal `json:"rating"`
	ReviewCount      int                 `json:"review_count"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`

	// Malformed lists the fields that could not be decoded and were zeroed.
	Malformed []string `json:"-"`
}

// ProductImage is an additional gallery image.
type ProductImage struct {
	ID        ID     `json:"id"`
	Image     string `json:"image,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	AltText   string `json:"alt_text,omitempty"`
	Order     int    `json:"order"`
	IsPrimary bool   `json:"is_primary"`
}

// ImageRefs exposes the gallery image's references in resolution order.
func (img ProductImage) ImageRefs() media.ImageRefs {
	return media.ImageRefs{ImageURL: img.ImageURL, MainImage: img.Image}
}

type productImageWire struct {
	ID        json.RawMessage `json:"id"`
	Image     json.RawMessage `json:"image"`
	ImageURL  json.RawMessage `json:"image_url"`
	AltText   json.RawMessage `json:"alt_text"`
	Order     json.RawMessage `json:"order"`
	IsPrimary json.RawMessage `json:"is_primary"`
}

// UnmarshalJSON decodes a gallery image leniently. Only a non-object payload
// is an error.
func (img *ProductImage) UnmarshalJSON(data []byte) error {
	decoded, _, err := decodeImage(data)
	if err != nil {
		return err
	}
	*img = decoded
	return nil
}

// decodeImage returns the image and whether every field decoded cleanly.
func decodeImage(data []byte) (ProductImage, bool, error) {
	var w productImageWire
	if err := json.Unmarshal(data, &w); err != nil {
		return ProductImage{}, false, err
	}
	clean := true
	keep := func(ok bool) {
		clean = clean && ok
	}

	var img ProductImage
	var ok bool
	img.ID, ok = parseID(w.ID)
	keep(ok)
	img.Image, ok = parseText(w.Image)
	keep(ok)
	img.ImageURL, ok = parseText(w.ImageURL)
	keep(ok)
	img.AltText, ok = parseText(w.AltText)
	keep(ok)
	order, _, ok := parseInt(w.Order)
	keep(ok && order >= 0)
	if ok && order >= 0 {
		img.Order = order
	}
	img.IsPrimary = parseBool(w.IsPrimary, false)
	img.Image = strings.TrimSpace(img.Image)
	img.ImageURL = strings.TrimSpace(img.ImageURL)
	return img, clean, nil
}

// decodeImages decodes the gallery, dropping entries that are not objects.
// The second result is false when anything had to be coerced or dropped.
func decodeImages(raw json.RawMessage) ([]ProductImage, bool) {
	if isNull(raw) {
		return nil, true
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	clean := true
	images := make([]ProductImage, 0, len(items))
	for _, item := range items {
		img, ok, err := decodeImage(item)
		if err != nil {
			clean = false
			continue
		}
		clean = clean && ok
		images = append(images, img)
	}
	return images, clean
}

type productWire struct {
	ID               json.RawMessage `json:"id"`
	Name             json.RawMessage `json:"name"`
	Slug             json.RawMessage `json:"slug"`
	Description      json.RawMessage `json:"description"`
	ShortDescription json.RawMessage `json:"short_description"`
	Price            json.RawMessage `json:"price"`
	CompareAtPrice   json.RawMessage `json:"compare_at_price"`
	Category         json.RawMessage `json:"category"`
	Tags             json.RawMessage `json:"tags"`
	MainImage        json.RawMessage `json:"main_image"`
	MainImageURL     json.RawMessage `json:"main_image_url"`
	ImageURL         json.RawMessage `json:"image_url"`
	Images           json.RawMessage `json:"images"`
	SKU              json.RawMessage `json:"sku"`
	StockQuantity    json.RawMessage `json:"stock_quantity"`
	IsAvailable      json.RawMessage `json:"is_available"`
	Sizes            json.RawMessage `json:"sizes"`
	Colors           json.RawMessage `json:"colors"`
	Materials        json.RawMessage `json:"materials"`
	Dimensions       json.RawMessage `json:"dimensions"`
	IsFeatured       json.RawMessage `json:"is_featured"`
	IsHot            json.RawMessage `json:"is_hot"`
	Rating           json.RawMessage `json:"rating"`
	ReviewCount      json.RawMessage `json:"review_count"`
	CreatedAt        json.RawMessage `json:"created_at"`
	UpdatedAt        json.RawMessage `json:"updated_at"`
}

// UnmarshalJSON decodes a product without failing on partially populated
// records: a field of the wrong type or an unparseable value is replaced by
// its zero value and listed in Malformed. Only a non-object payload is an
// error.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w productWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var out Product
	id, ok := parseID(w.ID)
	if !ok {
		out.flag("id")
	}
	out.ID = id

	texts := []struct {
		field string
		raw   json.RawMessage
		dst   *string
	}{
		{"name", w.Name, &out.Name},
		{"slug", w.Slug, &out.Slug},
		{"description", w.Description, &out.Description},
		{"short_description", w.ShortDescription, &out.ShortDescription},
		{"tags", w.Tags, &out.Tags},
		{"main_image", w.MainImage, &out.MainImage},
		{"main_image_url", w.MainImageURL, &out.MainImageURL},
		{"image_url", w.ImageURL, &out.ImageURL},
		{"sku", w.SKU, &out.SKU},
		{"sizes", w.Sizes, &out.Sizes},
		{"colors", w.Colors, &out.Colors},
		{"materials", w.Materials, &out.Materials},
		{"dimensions", w.Dimensions, &out.Dimensions},
	}
	for _, t := range texts {
		value, ok := parseText(t.raw)
		if !ok {
			out.flag(t.field)
		}
		*t.dst = value
	}
	out.Name = strings.TrimSpace(out.Name)
	out.MainImage = strings.TrimSpace(out.MainImage)
	out.MainImageURL = strings.TrimSpace(out.MainImageURL)
	out.ImageURL = strings.TrimSpace(out.ImageURL)
	if out.Name == "" && !out.hasFlag("name") {
		out.flag("name")
	}

	out.IsAvailable = parseBool(w.IsAvailable, true)
	out.IsFeatured = parseBool(w.IsFeatured, false)
	out.IsHot = parseBool(w.IsHot, false)

	if created, ok := parseTime(w.CreatedAt); ok {
		out.CreatedAt = created
	} else {
		out.flag("created_at")
	}
	if updated, ok := parseTime(w.UpdatedAt); ok {
		out.UpdatedAt = updated
	} else {
		out.flag("updated_at")
	}

	if images, ok := decodeImages(w.Images); ok {
		out.Images = images
	} else {
		out.Images = images
		out.flag("images")
	}

	if price, _, ok := parseDecimal(w.Price); !ok || price.IsNegative() {
		out.flag("price")
	} else {
		out.Price = price
	}

	if compare, present, ok := parseDecimal(w.CompareAtPrice); !ok || compare.IsNegative() {
		out.flag("compare_at_price")
	} else if present {
		out.CompareAtPrice = nullDecimal(compare)
	}

	if qty, _, ok := parseInt(w.StockQuantity); !ok || qty < 0 {
		out.flag("stock_quantity")
	} else {
		out.StockQuantity = qty
	}

	if rating, present, ok := parseDecimal(w.Rating); !ok || rating.IsNegative() || rating.GreaterThan(decimal.NewFromInt(5)) {
		out.flag("rating")
	} else if present {
		out.Rating = nullDecimal(rating)
	}

	if count, _, ok := parseInt(w.ReviewCount); !ok || count < 0 {
		out.flag("review_count")
	} else {
		out.ReviewCount = count
	}

	category, err := decodeCategoryRef(w.Category)
	if err != nil {
		out.flag("category")
	} else {
		out.Category = category
	}

	*p = out
	return nil
}

func (p *Product) flag(field string) {
	if !p.hasFlag(field) {
		p.Malformed = append(p.Malformed, field)
	}
}

func (p *Product) hasFlag(field string) bool {
	for _, f := range p.Malformed {
		if f == field {
			return true
		}
	}
	return false
}

// IsMalformed reports whether any field had to be coerced during decoding.
func (p Product) IsMalformed() bool {
	return len(p.Malformed) > 0
}

// CategorySlug returns the slug of the referenced category, if any.
func (p Product) CategorySlug() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Slug
}

// InCategory reports whether the product references the category slug or id.
func (p Product) InCategory(ref string) bool {
	return p.Category != nil && p.Category.Matches(ref)
}

// InStock reports whether the product can currently be bought.
func (p Product) InStock() bool {
	return p.StockQuantity > 0 && p.IsAvailable
}

// RatingValue returns the rating, treating a missing rating as zero.
func (p Product) RatingValue() decimal.Decimal {
	if !p.Rating.Valid {
		return decimal.Zero
	}
	return p.Rating.Decimal
}

// InventoryValue is price times units in stock.
func (p Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}

// HasDiscount reports whether compare_at_price > price > 0.
func (p Product) HasDiscount() bool {
	if !p.CompareAtPrice.Valid || !p.Price.IsPositive() {
		return false
	}
	return p.CompareAtPrice.Decimal.GreaterThan(p.Price)
}

// DiscountPercentage returns round((compare - price) / compare * 100). The
// denominator is compare_at_price, matching what the catalog API reports.
func (p Product) DiscountPercentage() (int, bool) {
	if !p.HasDiscount() {
		return 0, false
	}
	compare := p.CompareAtPrice.Decimal
	pct := compare.Sub(p.Price).Div(compare).Mul(hundred).Round(0)
	return int(pct.IntPart()), true
}

// ImageRefs exposes the product's image references for resolution.
func (p Product) ImageRefs() media.ImageRefs {
	return media.ImageRefs{
		MainImageURL: p.MainImageURL,
		ImageURL:     p.ImageURL,
		MainImage:    p.MainImage,
	}
}

// TagList splits the comma separated tags.
func (p Product) TagList() []string {
	return splitList(p.Tags)
}

// SizeList splits the comma separated sizes.
func (p Product) SizeList() []string {
	return splitList(p.Sizes)
}

// ColorList splits the comma separated colors.
func (p Product) ColorList() []string {
	return splitList(p.Colors)
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
