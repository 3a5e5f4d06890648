// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every optional setting
//  2. Legacy File: config.json with API_URL / API_KEY keys (optional)
//  3. Config File: YAML file (config.yaml, or CONFIG_PATH) (optional)
//  4. Environment Variables: Override any setting
//
// The loaded *Config is passed explicitly to the constructors that need it;
// nothing in the service reads configuration from package state.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal().Err(err).Msg("Failed to load config")
//	}
//	client := upstream.NewOMDbClient(cfg.Upstream)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Upstream  UpstreamConfig  `koanf:"upstream"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// RequestTimeout bounds a whole recommendation request, including every
	// upstream lookup it triggers.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig holds settings for the movie backend and the OMDb API.
type UpstreamConfig struct {
	// APIURL is the movie backend base URL (liked lists and the catalog).
	APIURL string `koanf:"api_url" validate:"required"`

	// APIKey is the OMDb API key.
	APIKey string `koanf:"api_key" validate:"required"`

	OMDbURL string `koanf:"omdb_url" validate:"required"`

	HTTPTimeout time.Duration `koanf:"http_timeout" validate:"gt=0"`

	// Concurrency bounds parallel detail lookups per request.
	Concurrency int `koanf:"concurrency" validate:"min=1,max=64"`

	// OMDbRateLimit is requests per second across the process. Zero disables throttling.
	OMDbRateLimit float64 `koanf:"omdb_rate_limit" validate:"gte=0"`
	OMDbBurst     int     `koanf:"omdb_burst" validate:"min=1"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker around OMDb lookups.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests" validate:"min=1"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	MinRequests  uint32        `koanf:"min_requests" validate:"min=1"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// CacheConfig holds the movie detail cache settings
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Type     string        `koanf:"type" validate:"oneof=memory badger"`
	Path     string        `koanf:"path"`
	TTL      time.Duration `koanf:"ttl" validate:"gt=0"`
	Capacity int           `koanf:"capacity" validate:"min=1"`

	// MaintenanceInterval is how often expired entries are dropped and the
	// Badger value log is garbage collected.
	MaintenanceInterval time.Duration `koanf:"maintenance_interval" validate:"gt=0"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// RecommendConfig holds settings for background catalog warming.
type RecommendConfig struct {
	// WarmCatalog periodically resolves the whole catalog so request-time
	// lookups hit the cache.
	WarmCatalog  bool          `koanf:"warm_catalog"`
	WarmInterval time.Duration `koanf:"warm_interval" validate:"gt=0"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
