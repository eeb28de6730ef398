package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Category is a named product grouping identified by a unique slug.
type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	IsActive    bool   `json:"is_active"`
}

type categoryWire struct {
	ID          json.RawMessage `json:"id"`
	Name        json.RawMessage `json:"name"`
	Slug        json.RawMessage `json:"slug"`
	Description json.RawMessage `json:"description"`
	Image       json.RawMessage `json:"image"`
	IsActive    json.RawMessage `json:"is_active"`
}

// UnmarshalJSON decodes a category, defaulting is_active to true when absent.
// Fields of the wrong type are left empty. Only a non-object payload is an
// error.
func (c *Category) UnmarshalJSON(data []byte) error {
	var w categoryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id, _ := parseID(w.ID)
	name, _ := parseText(w.Name)
	slug, _ := parseText(w.Slug)
	description, _ := parseText(w.Description)
	image, _ := parseText(w.Image)
	*c = Category{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Slug:        strings.TrimSpace(slug),
		Description: description,
		Image:       strings.TrimSpace(image),
		IsActive:    parseBool(w.IsActive, true),
	}
	return nil
}

// Matches reports whether ref identifies this category by slug or id.
func (c Category) Matches(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	return c.Slug == ref || string(c.ID) == ref
}

// decodeCategoryRef accepts the nested category object, a bare slug, or a bare id.
func decodeCategoryRef(raw json.RawMessage) (*Category, error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return nil, nil
	}
	switch raw[0] {
	case '{':
		var c Category
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, err
		}
		return &c, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		return &Category{Slug: s, IsActive: true}, nil
	}
	var id ID
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, err
	}
	return &Category{ID: id, IsActive: true}, nil
}

// SlugIndex maps category ids to categories so bare references can be completed.
type SlugIndex map[ID]Category

// NewSlugIndex indexes categories by id.
func NewSlugIndex(categories []Category) SlugIndex {
	idx := make(SlugIndex, len(categories))
	for _, c := range categories {
		if c.ID.IsZero() {
			continue
		}
		idx[c.ID] = c
	}
	return idx
}

// Complete fills in category details for products that only carried an id.
func (idx SlugIndex) Complete(products []Product) {
	for i := range products {
		ref := products[i].Category
		if ref == nil || ref.Slug != "" || ref.ID.IsZero() {
			continue
		}
		if full, ok := idx[ref.ID]; ok {
			c := full
			products[i].Category = &c
		}
	}
}
