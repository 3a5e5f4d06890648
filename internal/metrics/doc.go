// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Package metrics defines the Prometheus collectors of the recommender.

Collectors register with the default registry through promauto and are
served by the API at /metrics:

	curl http://localhost:5000/metrics

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendation:
  - recommendation_duration_seconds
  - recommendation_requests_total{result}: ok, empty, error, timeout, canceled
  - recommendations_returned
  - recommendation_short_circuits_total{reason}
  - recommendation_corpus_documents{side}: liked, catalog
  - recommendation_vocabulary_size

Upstream:
  - upstream_requests_total{upstream, status_code}
  - upstream_request_duration_seconds{upstream}
  - movie_lookups_total{outcome}: found, not_found, error

Cache:
  - cache_hits_total{cache_type}, cache_misses_total{cache_type}
  - cache_entries{cache_type}, cache_evictions_total{cache_type}

Circuit breaker:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Catalog warmer:
  - catalog_warm_duration_seconds
  - catalog_warm_runs_total{result}
  - catalog_warm_last_success_timestamp
  - catalog_movies_resolved

# Usage

	start := time.Now()
	result, err := svc.RecommendForUser(ctx, userID)
	metrics.RecordRecommendation(time.Since(start), metrics.Ranking{
	    Returned: len(result.Recommendations),
	}, err)

All helpers are safe for concurrent use.
*/
package metrics
