package catalog

import (
	"context"
	"time"

	"pocket-cards/core/reconcile"

	"go.uber.org/zap"
)

const cacheKey = "global"

// LookupResult is the answer to a single catalog lookup.
type LookupResult struct {
	Expansion   string `json:"expansion"`
	Number      int    `json:"number"`
	CanonicalID string `json:"canonical_id"`
	Found       bool   `json:"found"`
}

// Stats summarizes the current index.
type Stats struct {
	Keys    int `json:"keys"`
	Skipped int `json:"skipped"`
}

// Service resolves canonical card ids against a cached catalog index.
type Service struct {
	fetcher DocumentFetcher
	cache   *reconcile.CatalogCache
	aliases map[string]string
	logger  *zap.Logger
}

// NewService creates a catalog service.
func NewService(fetcher DocumentFetcher, ttl time.Duration, aliases map[string]string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		cache:   reconcile.NewCatalogCache(ttl),
		aliases: aliases,
		logger:  logger,
	}
}

// Index returns the catalog index, downloading the catalog when the cached one is stale.
func (s *Service) Index(ctx context.Context) (*reconcile.Index, error) {
	return s.cache.GetOrBuild(ctx, cacheKey, func(ctx context.Context) (*reconcile.Index, error) {
		start := time.Now()
		doc, err := s.fetcher.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		idx := reconcile.BuildIndex(doc, s.aliases, s.logger)
		s.logger.Info("Catalog loaded",
			zap.Int("keys", idx.Len()),
			zap.Duration("duration", time.Since(start)),
		)
		return idx, nil
	})
}

// Lookup resolves one (expansion, number) pair.
func (s *Service) Lookup(ctx context.Context, expansion string, number int) (*LookupResult, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	id, ok := idx.Lookup(expansion, number)
	return &LookupResult{
		Expansion:   expansion,
		Number:      number,
		CanonicalID: id,
		Found:       ok,
	}, nil
}

// Stats returns the size of the current index.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{Keys: idx.Len(), Skipped: idx.Skipped()}, nil
}

// Refresh drops the cached index so that the next use downloads the catalog again.
func (s *Service) Refresh() {
	s.cache.Invalidate(cacheKey)
}
