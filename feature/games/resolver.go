package games

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uloggd/core/apierror"
	"uloggd/core/metrics"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// KeyPrefix namespaces game records in the cache. The igdb namespace carries a 24h TTL.
	KeyPrefix = "igdb_game_"
	// BackfillTTL is the lifetime of freshly resolved records.
	BackfillTTL = 24 * time.Hour

	defaultChunkSize    = 50
	defaultMaxBatchSize = 500
)

// Fetcher loads raw game records for a set of slugs in one upstream request.
type Fetcher interface {
	Games(ctx context.Context, slugs []string) ([]json.RawMessage, error)
}

// Cache is the part of the cache store the resolver needs.
type Cache interface {
	GetMany(ctx context.Context, keys []string) map[string][]byte
	SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) bool
}

// Submitter accepts backfill work detached from the request.
type Submitter interface {
	Submit(items map[string][]byte) bool
}

// Options tune a single Resolve call.
type Options struct {
	// Partial returns resolved games plus failed chunks instead of failing the whole batch.
	Partial bool
}

// Resolver resolves batches of slugs against the cache and the upstream catalog.
type Resolver struct {
	fetcher      Fetcher
	cache        Cache
	backfill     Submitter
	chunkSize    int
	maxBatchSize int
	logger       *zap.Logger
}

// NewResolver creates a resolver. Zero sizes fall back to 50 per chunk and 500 per batch.
func NewResolver(fetcher Fetcher, cache Cache, backfill Submitter, chunkSize, maxBatchSize int, logger *zap.Logger) *Resolver {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if maxBatchSize <= 0 {
		maxBatchSize = defaultMaxBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		fetcher:      fetcher,
		cache:        cache,
		backfill:     backfill,
		chunkSize:    chunkSize,
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}
}

// CacheKey returns the cache key of a game slug.
func CacheKey(slug string) string {
	return KeyPrefix + slug
}

// Resolve returns the games for slugs keyed by slug. Slugs unknown upstream are absent.
//
// Cached records are served from one bulk lookup; the rest are fetched in chunks, all chunks
// concurrently. In strict mode any chunk failure fails the call with an upstream error.
func (r *Resolver) Resolve(ctx context.Context, slugs []string, opts Options) (*Result, error) {
	unique, err := r.validate(slugs)
	if err != nil {
		return nil, err
	}

	result := &Result{Games: make(map[string]Game, len(unique))}

	keys := make([]string, len(unique))
	for i, s := range unique {
		keys[i] = CacheKey(s)
	}
	hits := r.cache.GetMany(ctx, keys)

	var misses []string
	for _, s := range unique {
		data, ok := hits[CacheKey(s)]
		if !ok {
			misses = append(misses, s)
			continue
		}
		var g Game
		if err := json.Unmarshal(data, &g); err != nil {
			r.logger.Warn("Undecodable cached game, refetching", zap.String("slug", s), zap.Error(err))
			misses = append(misses, s)
			continue
		}
		result.Games[s] = g
	}

	if len(misses) == 0 {
		return result, nil
	}

	chunks := chunk(misses, r.chunkSize)
	fetched := make([][]Game, len(chunks))
	failed := make([]error, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range chunks {
		i, c := i, c
		g.Go(func() error {
			games, err := r.fetchChunk(gctx, c)
			if err != nil {
				metrics.BatchChunks.WithLabelValues("failure").Inc()
				failed[i] = err
				if opts.Partial {
					return nil
				}
				return fmt.Errorf("chunk %d/%d (%d slugs): %w", i+1, len(chunks), len(c), err)
			}
			metrics.BatchChunks.WithLabelValues("success").Inc()
			fetched[i] = games
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Error("Batch resolve failed", zap.Int("chunks", len(chunks)), zap.Error(err))
		return nil, apierror.Upstream(err)
	}

	resolved := make(map[string][]byte)
	for i, games := range fetched {
		if failed[i] != nil {
			result.Failures = append(result.Failures, ChunkError{Slugs: chunks[i], Error: failed[i].Error()})
			continue
		}
		for _, game := range games {
			result.Games[game.Slug] = game
			data, err := json.Marshal(game)
			if err != nil {
				r.logger.Warn("Failed to encode game for cache", zap.String("slug", game.Slug), zap.Error(err))
				continue
			}
			resolved[CacheKey(game.Slug)] = data
		}
	}

	if len(result.Failures) > 0 {
		r.logger.Warn("Batch resolved partially", zap.Int("failed_chunks", len(result.Failures)))
	}

	if len(resolved) > 0 && r.backfill != nil {
		r.backfill.Submit(resolved)
	}

	return result, nil
}

func (r *Resolver) validate(slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return nil, apierror.Validation("slugs must not be empty")
	}
	if len(slugs) > r.maxBatchSize {
		return nil, apierror.Validation("too many slugs: %d exceeds the limit of %d", len(slugs), r.maxBatchSize)
	}

	seen := make(map[string]struct{}, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if strings.TrimSpace(s) == "" {
			return nil, apierror.Validation("slugs must not be blank")
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	return unique, nil
}

// fetchChunk loads one chunk and normalises its records. Records that do not decode or carry
// no slug are skipped.
func (r *Resolver) fetchChunk(ctx context.Context, slugs []string) ([]Game, error) {
	records, err := r.fetcher.Games(ctx, slugs)
	if err != nil {
		return nil, err
	}

	games := make([]Game, 0, len(records))
	for _, raw := range records {
		g, err := Normalize(raw)
		if err != nil {
			r.logger.Warn("Skipping undecodable catalog record", zap.Error(err))
			continue
		}
		if g.Slug == "" {
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

func chunk(items []string, size int) [][]string {
	out := make([][]string, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
