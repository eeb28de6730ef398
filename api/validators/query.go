package validators

import (
	"net/http"
	"strings"

	"github.com/baabuu/storefront-web/internal/listing"
)

const maxSearchLength = 200

// ListingQuery collects the raw view parameters of a collection request.
func ListingQuery(r *http.Request) listing.Query {
	q := r.URL.Query()
	return listing.Query{
		Search:   SanitizeString(q.Get("search"), maxSearchLength),
		Category: strings.TrimSpace(q.Get("category")),
		Status:   strings.TrimSpace(q.Get("status")),
		Stock:    strings.TrimSpace(q.Get("stock")),
		Sort:     strings.TrimSpace(firstNonEmpty(q.Get("sort"), q.Get("ordering"))),
		Page:     strings.TrimSpace(q.Get("page")),
		PageSize: strings.TrimSpace(q.Get("page_size")),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
