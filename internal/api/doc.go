// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Package api provides the HTTP layer of the recommender.

Endpoints:

  - GET /recommend/{userId}: {"Recommendations": [...]} or a 500 with
    {"error": "Internal Server Error"}
  - GET /recommender-api/{userId}: same handler, kept for existing clients
  - GET|HEAD /healthcheck: liveness, {"status": "OK"}
  - GET /metrics: Prometheus exposition

Invalid user ids are rejected with 400 before any upstream call is made.
Failure causes are logged with the request id and never sent to clients.

Middleware stack, outermost first:

	middleware.RequestID -> chi RealIP -> chi Recoverer -> go-chi/cors ->
	middleware.PrometheusMetrics -> [httprate -> chi Compress] -> handler

Rate limiting and compression only wrap the recommendation routes. The
per-request deadline comes from server.request_timeout and is applied in the
handler so the recommender sees it through its context.

Usage:

	h := api.NewHandler(service, cfg.Server.RequestTimeout)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	srv := &http.Server{Handler: api.NewRouter(h, mw).SetupChi()}
*/
package api
