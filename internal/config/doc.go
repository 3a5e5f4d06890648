// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Package config provides layered configuration loading for the recommender.

Configuration is assembled with Koanf v2 from four sources, each overriding
the one before it:

  - Built-in defaults (defaultConfig)
  - config.json, the flat file used by earlier deployments (API_URL, API_KEY)
  - A YAML file: $CONFIG_PATH, ./config.yaml or /etc/moviepedia/config.yaml
  - Environment variables

# Environment Variables

Upstream (UpstreamConfig):
  - API_URL: Movie backend base URL (required)
  - API_KEY: OMDb API key (required)
  - OMDB_URL: OMDb endpoint (default: http://www.omdbapi.com/)
  - UPSTREAM_HTTP_TIMEOUT: Per-call HTTP timeout (default: 10s)
  - UPSTREAM_CONCURRENCY: Parallel detail lookups per request (default: 8)
  - OMDB_RATE_LIMIT / OMDB_BURST: OMDb request throttle (default: 10/s, burst 5)
  - CIRCUIT_BREAKER_*: Breaker tuning around OMDb

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 5000)
  - REQUEST_TIMEOUT: Whole-request deadline (default: 30s)

Cache (CacheConfig):
  - CACHE_TYPE: memory or badger (default: memory)
  - CACHE_PATH: BadgerDB directory (default: /data/cache)
  - CACHE_TTL: Entry lifetime (default: 24h)

Security (SecurityConfig):
  - CORS_ORIGINS: Comma-separated allowed origins
  - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP limit (default: 60 per 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    return err
	}
	srv := &http.Server{Addr: cfg.Server.Addr()}
*/
package config
