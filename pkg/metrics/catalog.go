package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

// CatalogMetrics covers catalog fetching, caching and record quality.
type CatalogMetrics struct {
	malformed *prometheus.CounterVec
	backend   *prometheus.HistogramVec
	cache     *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
// A nil registerer yields a no-op collector.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	malformed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "malformed_records_total",
		Help:      "Catalog records with fields coerced to defaults, by field.",
	}, []string{"field"})
	backend := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of catalog API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_lookups_total",
		Help:      "Catalog snapshot cache lookups by result.",
	}, []string{"result"})
	reg.MustRegister(malformed, backend, cache)
	return &CatalogMetrics{
		malformed: malformed,
		backend:   backend,
		cache:     cache,
	}
}

// IncMalformed counts one coerced field.
func (c *CatalogMetrics) IncMalformed(field string) {
	if c == nil || c.malformed == nil {
		return
	}
	c.malformed.WithLabelValues(labelOrUnknown(field)).Inc()
}

// ObserveBackend records a catalog API call. status 0 means the request never
// produced a response.
func (c *CatalogMetrics) ObserveBackend(operation string, status int, duration time.Duration) {
	if c == nil || c.backend == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.backend.WithLabelValues(labelOrUnknown(operation), label).Observe(duration.Seconds())
}

// CacheHit counts a snapshot served from cache.
func (c *CatalogMetrics) CacheHit() {
	c.cacheResult("hit")
}

// CacheMiss counts a lookup that fell through to the catalog API.
func (c *CatalogMetrics) CacheMiss() {
	c.cacheResult("miss")
}

func (c *CatalogMetrics) cacheResult(result string) {
	if c == nil || c.cache == nil {
		return
	}
	c.cache.WithLabelValues(result).Inc()
}
