// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes used as the "outcome" label.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end time to build one user's recommendations",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Recommendation requests by result",
		},
		[]string{"result"}, // ok, empty, error
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendations_returned",
			Help:    "Number of unique recommendations returned per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	RecommendationShortCircuits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_short_circuits_total",
			Help: "Rankings that stopped early, by reason",
		},
		[]string{"reason"},
	)

	CorpusDocuments = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_corpus_documents",
			Help:    "Plots per ranking run by side",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"side"}, // liked, catalog
	)

	VocabularySize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_vocabulary_size",
			Help:    "TF-IDF vocabulary size per ranking run",
			Buckets: prometheus.ExponentialBuckets(16, 2, 10),
		},
	)

	// Upstream Metrics
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Outbound HTTP requests by upstream and status",
		},
		[]string{"upstream", "status_code"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Outbound HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	MovieLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_lookups_total",
			Help: "Movie detail lookups by outcome",
		},
		[]string{"outcome"}, // found, not_found, error
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Catalog Warmer Metrics
	CatalogWarmDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_warm_duration_seconds",
			Help:    "Duration of catalog cache warming runs",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	CatalogWarmRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_warm_runs_total",
			Help: "Catalog warming runs by result",
		},
		[]string{"result"}, // success, error
	)

	CatalogWarmLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_warm_last_success_timestamp",
			Help: "Unix timestamp of the last successful catalog warm",
		},
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies_resolved",
			Help: "Catalog movies with usable plots after the last warm",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// Ranking describes one ranking run for RecordRecommendation.
type Ranking struct {
	LikedDocuments   int
	CatalogDocuments int
	VocabularySize   int
	Returned         int
	ShortCircuit     string
}

// RecordRecommendation records a completed or failed recommendation request.
func RecordRecommendation(duration time.Duration, r Ranking, err error) {
	RecommendationDuration.Observe(duration.Seconds())

	switch {
	case err != nil:
		RecommendationRequests.WithLabelValues(classifyError(err)).Inc()
		return
	case r.Returned == 0:
		RecommendationRequests.WithLabelValues("empty").Inc()
	default:
		RecommendationRequests.WithLabelValues("ok").Inc()
	}

	RecommendationsReturned.Observe(float64(r.Returned))
	if r.ShortCircuit != "" {
		RecommendationShortCircuits.WithLabelValues(r.ShortCircuit).Inc()
	}
	if r.LikedDocuments > 0 {
		CorpusDocuments.WithLabelValues("liked").Observe(float64(r.LikedDocuments))
	}
	if r.CatalogDocuments > 0 {
		CorpusDocuments.WithLabelValues("catalog").Observe(float64(r.CatalogDocuments))
	}
	if r.VocabularySize > 0 {
		VocabularySize.Observe(float64(r.VocabularySize))
	}
}

func classifyError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}

// RecordUpstreamRequest records one outbound HTTP call. A status of 0 marks
// a transport failure.
func RecordUpstreamRequest(upstream string, status int, duration time.Duration) {
	code := "transport_error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	UpstreamRequests.WithLabelValues(upstream, code).Inc()
	UpstreamDuration.WithLabelValues(upstream).Observe(duration.Seconds())
}

// RecordMovieLookup counts a detail lookup by outcome.
func RecordMovieLookup(outcome string) {
	MovieLookups.WithLabelValues(outcome).Inc()
}

// RecordCacheHit counts a cache hit.
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss counts a cache miss.
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheMaintenance publishes the entry count after a maintenance pass
// and the capacity evictions seen since the previous pass.
func RecordCacheMaintenance(cacheType string, entries int, newEvictions int64) {
	CacheSize.WithLabelValues(cacheType).Set(float64(entries))
	if newEvictions > 0 {
		CacheEvictions.WithLabelValues(cacheType).Add(float64(newEvictions))
	}
}

// RecordCatalogWarm records a catalog warming run.
func RecordCatalogWarm(duration time.Duration, resolved int, err error) {
	CatalogWarmDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogWarmRuns.WithLabelValues("error").Inc()
		return
	}
	CatalogWarmRuns.WithLabelValues("success").Inc()
	CatalogWarmLastSuccess.Set(float64(time.Now().Unix()))
	CatalogMovies.Set(float64(resolved))
}
