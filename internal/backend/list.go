package backend

import (
	"bytes"
	"encoding/json"
)

// Page is one page of a catalog API listing.
type Page[T any] struct {
	Count    int
	Next     string
	Previous string
	Results  []T
}

type pageWire[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// decodePage accepts both the paginated envelope and a bare JSON array, which
// the API returns when pagination is disabled for a resource.
func decodePage[T any](raw json.RawMessage) (Page[T], error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return Page[T]{}, err
		}
		return Page[T]{Count: len(items), Results: items}, nil
	}
	var w pageWire[T]
	if err := json.Unmarshal(raw, &w); err != nil {
		return Page[T]{}, err
	}
	p := Page[T]{Count: w.Count, Results: w.Results}
	if w.Next != nil {
		p.Next = *w.Next
	}
	if w.Previous != nil {
		p.Previous = *w.Previous
	}
	if p.Results == nil {
		p.Results = []T{}
	}
	return p, nil
}
