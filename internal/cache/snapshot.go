// Package cache keeps a short-lived snapshot of the whole catalog in redis so
// views that need the full collection do not page through the catalog API on
// every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baabuu/storefront-web/internal/backend"
	"github.com/baabuu/storefront-web/internal/catalog"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
	"github.com/baabuu/storefront-web/pkg/metrics"
	"github.com/baabuu/storefront-web/pkg/redis"
)

const snapshotVersion = "v1"

// Snapshot is the full product and category collection at FetchedAt.
type Snapshot struct {
	Products   []catalog.Product  `json:"products"`
	Categories []catalog.Category `json:"categories"`
	FetchedAt  time.Time          `json:"fetched_at"`
}

type snapshotWire struct {
	Snapshot
	// Malformed survives the round trip since Product does not serialise it.
	Malformed map[catalog.ID][]string `json:"malformed,omitempty"`
}

// Source loads the collection from the catalog API.
type Source interface {
	ListAllProducts(ctx context.Context, q backend.ProductQuery) ([]catalog.Product, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

// Store serves snapshots from redis, falling back to Source on a miss. With a
// nil redis store every call goes to Source.
type Store struct {
	redis   redis.SnapshotStore
	source  Source
	ttl     time.Duration
	now     func() time.Time
	logg    *logger.Logger
	metrics *metrics.CatalogMetrics
}

// NewStore builds a Store.
func NewStore(store redis.SnapshotStore, source Source, ttl time.Duration, logg *logger.Logger, m *metrics.CatalogMetrics) (*Store, error) {
	if source == nil {
		return nil, errors.New("catalog source is required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{
		redis:   store,
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		logg:    logg,
		metrics: m,
	}, nil
}

// Snapshot returns the cached collection, fetching and caching it on a miss.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	if cached, ok := s.load(ctx); ok {
		s.metrics.CacheHit()
		return cached, nil
	}
	s.metrics.CacheMiss()
	return s.Refresh(ctx)
}

// Refresh fetches the collection from Source and overwrites the cache.
func (s *Store) Refresh(ctx context.Context) (Snapshot, error) {
	snap, err := s.fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	s.save(ctx, snap)
	return snap, nil
}

// Invalidate drops the cached snapshot. Admin writes call this so the next
// read reflects them.
func (s *Store) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, s.key()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate catalog snapshot")
	}
	return nil
}

func (s *Store) fetch(ctx context.Context) (Snapshot, error) {
	var (
		products   []catalog.Product
		categories []catalog.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.source.ListAllProducts(gctx, backend.ProductQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.source.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	catalog.NewSlugIndex(categories).Complete(products)
	return Snapshot{
		Products:   products,
		Categories: categories,
		FetchedAt:  s.now().UTC(),
	}, nil
}

func (s *Store) load(ctx context.Context) (Snapshot, bool) {
	if s.redis == nil {
		return Snapshot{}, false
	}
	raw, err := s.redis.Get(ctx, s.key())
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.warn(ctx, "catalog snapshot read failed", err)
		}
		return Snapshot{}, false
	}
	var w snapshotWire
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		s.warn(ctx, "catalog snapshot decode failed", err)
		return Snapshot{}, false
	}
	// The stored list is authoritative; re-decoding the cached record may
	// flag fields again.
	for i := range w.Products {
		w.Products[i].Malformed = w.Malformed[w.Products[i].ID]
	}
	return w.Snapshot, true
}

func (s *Store) save(ctx context.Context, snap Snapshot) {
	if s.redis == nil {
		return
	}
	w := snapshotWire{Snapshot: snap}
	for _, p := range snap.Products {
		if p.IsMalformed() {
			if w.Malformed == nil {
				w.Malformed = map[catalog.ID][]string{}
			}
			w.Malformed[p.ID] = p.Malformed
		}
	}
	payload, err := json.Marshal(w)
	if err != nil {
		s.warn(ctx, "catalog snapshot encode failed", err)
		return
	}
	if err := s.redis.Set(ctx, s.key(), string(payload), s.ttl); err != nil {
		s.warn(ctx, "catalog snapshot write failed", err)
	}
}

func (s *Store) key() string {
	return s.redis.SnapshotKey("snapshot", snapshotVersion)
}

func (s *Store) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}
