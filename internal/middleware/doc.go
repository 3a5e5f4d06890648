// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Package middleware provides HTTP middleware for the recommender API.

Key Components:

  - RequestID: request and correlation ids for structured logging
  - PrometheusMetrics: request count, latency and in-flight instrumentation

Both use the standard func(http.Handler) http.Handler shape and are mounted
on the chi router next to chi's own middleware:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.PrometheusMetrics)

PrometheusMetrics labels requests by chi route pattern, so it must run inside
a chi router to see the matched route.
*/
package middleware
