// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Package upstream provides the HTTP collaborators of the recommender.

  - LikedClient: GET {api_url}/api/liked/{userId}, a JSON array of movie ids
  - CatalogClient: GET {api_url}/api/Home, the catalog listing
  - OMDbClient: per-movie title, plot and poster from OMDb
  - BreakerLookup: sony/gobreaker circuit breaker around a MovieLookup
  - CachedLookup: read-through cache.Store around a MovieLookup
  - Resolver: bounded-concurrency fan-out of lookups (x/sync/errgroup)

LikedClient, CatalogClient and Resolver satisfy the LikedSource,
CatalogSource and DetailResolver interfaces of package recommend.

# Error Semantics

A movie OMDb knows nothing about is a NotFound result, not an error. Transport
failures, unexpected statuses and malformed bodies are errors; Resolver drops
them per movie and only fails when the request context ends. Non-200 statuses
are *StatusError values matching ErrUnexpectedStatus.

# Metrics

Every outbound call records upstream_requests_total and
upstream_request_duration_seconds. Lookups record movie_lookups_total by
outcome, and the cache and breaker layers export their own series.
*/
package upstream
