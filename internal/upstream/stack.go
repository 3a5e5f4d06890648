// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package upstream

import (
	"github.com/tomtom215/moviepedia-recommender/internal/cache"
	"github.com/tomtom215/moviepedia-recommender/internal/config"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// OMDbBreakerName names the OMDb circuit breaker in logs and metrics.
const OMDbBreakerName = "omdb-api"

// NewMovieLookup assembles the detail lookup chain:
//
//	CachedLookup -> BreakerLookup -> OMDbClient
//
// Cache hits never touch the breaker. A nil store disables caching and a
// disabled breaker config leaves the OMDb client unwrapped.
func NewMovieLookup(cfg config.UpstreamConfig, store cache.Store[models.LookupResult], cacheType string) (MovieLookup, error) {
	client, err := NewOMDbClient(cfg)
	if err != nil {
		return nil, err
	}

	var lookup MovieLookup = client
	if cfg.Breaker.Enabled {
		lookup = NewBreakerLookup(OMDbBreakerName, lookup, cfg.Breaker)
	}
	if store != nil {
		lookup = NewCachedLookup(lookup, store, cacheType)
	}
	return lookup, nil
}
