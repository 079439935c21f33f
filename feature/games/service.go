package games

import (
	"context"
	"strings"

	"uloggd/core/apierror"
	"uloggd/core/cache"
	"uloggd/core/catalog"

	"go.uber.org/zap"
)

// Service exposes catalog lookups backed by the cache.
type Service struct {
	resolver *Resolver
	store    *cache.Store
	fetcher  Fetcher
	partial  bool
	logger   *zap.Logger
}

// NewService wires a resolver over store and fetcher. Backfills go through backfill.
func NewService(cfg catalog.Config, fetcher Fetcher, store *cache.Store, backfill Submitter, logger *zap.Logger) *Service {
	return &Service{
		resolver: NewResolver(fetcher, store, backfill, cfg.ChunkSize, cfg.MaxBatchSize, logger),
		store:    store,
		fetcher:  fetcher,
		partial:  cfg.PartialResults,
		logger:   logger,
	}
}

// Resolve resolves a batch. A nil partial uses the configured mode.
func (s *Service) Resolve(ctx context.Context, slugs []string, partial *bool) (*Result, error) {
	opts := Options{Partial: s.partial}
	if partial != nil {
		opts.Partial = *partial
	}
	return s.resolver.Resolve(ctx, slugs, opts)
}

// Game returns one game, cached under the same key the batch resolver uses.
func (s *Service) Game(ctx context.Context, slug string) (Game, error) {
	if strings.TrimSpace(slug) == "" {
		return Game{}, apierror.Validation("slug must not be blank")
	}

	game, _, err := cache.GetOrSetJSON(ctx, s.store, CacheKey(slug), BackfillTTL, func(ctx context.Context) (Game, error) {
		records, err := s.fetcher.Games(ctx, []string{slug})
		if err != nil {
			return Game{}, apierror.Upstream(err)
		}
		for _, raw := range records {
			g, err := Normalize(raw)
			if err == nil && g.Slug == slug {
				return g, nil
			}
		}
		return Game{}, apierror.NotFound("game %q not found", slug)
	})
	return game, err
}

// ClearCache drops every cached game record.
func (s *Service) ClearCache(ctx context.Context) bool {
	return s.store.Clear(ctx, KeyPrefix)
}
