// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Package cache stores movie detail lookups between requests.

Two backends implement Store:

  - LRU: bounded in-memory cache with per-entry TTL, O(1) get, set and eviction
  - BadgerStore: BadgerDB-backed cache that survives restarts, TTL enforced by Badger

NewStore picks one from configuration:

	store, err := cache.NewStore[models.LookupResult](cache.Config{
	    Type:     cache.TypeBadger,
	    Path:     "/data/cache",
	    TTL:      24 * time.Hour,
	    Capacity: 10000,
	})
	if err != nil {
	    return err
	}
	defer store.Close()

Only lookup results are cached. Vectors and similarity scores are recomputed
for every request.

All implementations are safe for concurrent use.
*/
package cache
