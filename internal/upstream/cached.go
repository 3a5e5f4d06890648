// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package upstream

import (
	"context"

	"github.com/tomtom215/moviepedia-recommender/internal/cache"
	"github.com/tomtom215/moviepedia-recommender/internal/logging"
	"github.com/tomtom215/moviepedia-recommender/internal/metrics"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// CachedLookup answers from a cache.Store before calling the next lookup.
// Found and NotFound results are both cached; errors never are.
// A failing store degrades to uncached lookups.
type CachedLookup struct {
	next      MovieLookup
	store     cache.Store[models.LookupResult]
	cacheType string
}

// Ensure CachedLookup implements MovieLookup
var _ MovieLookup = (*CachedLookup)(nil)

// NewCachedLookup creates a read-through cache around next. cacheType labels metrics.
func NewCachedLookup(next MovieLookup, store cache.Store[models.LookupResult], cacheType string) *CachedLookup {
	return &CachedLookup{next: next, store: store, cacheType: cacheType}
}

// Lookup implements MovieLookup.
func (c *CachedLookup) Lookup(ctx context.Context, id string) (models.LookupResult, error) {
	cached, ok, err := c.store.Get(ctx, id)
	switch {
	case err != nil:
		if ctx.Err() != nil {
			return models.LookupResult{}, ctx.Err()
		}
		logging.Ctx(ctx).Warn().Err(err).Str("imdb_id", id).Msg("Movie cache read failed")
	case ok:
		metrics.RecordCacheHit(c.cacheType)
		return cached, nil
	}
	metrics.RecordCacheMiss(c.cacheType)

	result, err := c.next.Lookup(ctx, id)
	if err != nil {
		return models.LookupResult{}, err
	}

	if err := c.store.Set(ctx, id, result); err != nil && ctx.Err() == nil {
		logging.Ctx(ctx).Warn().Err(err).Str("imdb_id", id).Msg("Movie cache write failed")
	}
	return result, nil
}
