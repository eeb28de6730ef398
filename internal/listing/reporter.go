package listing

import (
	"context"
	"strings"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/pkg/logger"
	"github.com/baabuu/storefront-web/pkg/metrics"
)

// MalformedReporter is told about records whose fields were coerced while
// decoding.
type MalformedReporter interface {
	ReportMalformed(ctx context.Context, product catalog.Product)
}

// Inspect hands every malformed record to reporter and returns how many there were.
func Inspect(ctx context.Context, products []catalog.Product, reporter MalformedReporter) int {
	count := 0
	for _, p := range products {
		if !p.IsMalformed() {
			continue
		}
		count++
		if reporter != nil {
			reporter.ReportMalformed(ctx, p)
		}
	}
	return count
}

// Reporter logs malformed records and counts them per field.
type Reporter struct {
	logg    *logger.Logger
	metrics *metrics.CatalogMetrics
}

// NewReporter builds a Reporter. Either dependency may be nil.
func NewReporter(logg *logger.Logger, m *metrics.CatalogMetrics) *Reporter {
	return &Reporter{logg: logg, metrics: m}
}

func (r *Reporter) ReportMalformed(ctx context.Context, product catalog.Product) {
	if r == nil {
		return
	}
	for _, field := range product.Malformed {
		r.metrics.IncMalformed(field)
	}
	if r.logg == nil {
		return
	}
	ctx = r.logg.WithFields(ctx, map[string]any{
		"product_id": product.ID.String(),
		"fields":     strings.Join(product.Malformed, ","),
	})
	r.logg.Warn(ctx, "catalog record had malformed fields; coerced to defaults")
}
