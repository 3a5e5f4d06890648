// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moviepedia/config.yaml",
	"/etc/moviepedia/config.yml",
}

// LegacyConfigPath is the flat JSON file used by earlier deployments:
//
//	{"API_URL": "https://backend.example.com", "API_KEY": "omdb-key"}
var LegacyConfigPath = "config.json"

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultCORSOrigins are the front-ends allowed to call the API out of the box.
var DefaultCORSOrigins = []string{
	"https://moviepedia.virajdeveloper.online",
	"http://localhost:5174",
	"http://localhost:90",
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config files and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Upstream: UpstreamConfig{
			APIURL:        "",
			APIKey:        "",
			OMDbURL:       "http://www.omdbapi.com/",
			HTTPTimeout:   10 * time.Second,
			Concurrency:   8,
			OMDbRateLimit: 10,
			OMDbBurst:     5,
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Cache: CacheConfig{
			Enabled:  true,
			Type:     "memory",
			Path:     "/data/cache",
			TTL:      24 * time.Hour,
			Capacity: 10000,

			MaintenanceInterval: 10 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:       append([]string(nil), DefaultCORSOrigins...),
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Recommend: RecommendConfig{
			WarmCatalog:  false, // Opt-in: a warm run costs one OMDb call per uncached catalog movie
			WarmInterval: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults
//  2. Legacy config.json (API_URL, API_KEY)
//  3. YAML config file
//  4. Environment variables
//
// Precedence is ENV > YAML > legacy JSON > defaults. The result is validated
// before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Legacy flat JSON file (optional)
	if err := loadLegacyFile(k, LegacyConfigPath); err != nil {
		return nil, err
	}

	// Layer 3: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 4: Load environment variables (highest priority)
	// API_URL -> upstream.api_url, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// legacyKeys maps keys of the flat JSON file onto koanf paths.
var legacyKeys = map[string]string{
	"API_URL": "upstream.api_url",
	"API_KEY": "upstream.api_key",
}

// loadLegacyFile merges the recognized keys of a flat JSON file into k.
// A missing file is not an error.
func loadLegacyFile(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	legacy := koanf.New(".")
	if err := legacy.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy config file %s: %w", path, err)
	}

	for key, target := range legacyKeys {
		if v := legacy.String(key); v != "" {
			if err := k.Set(target, v); err != nil {
				return fmt.Errorf("failed to set %s: %w", target, err)
			}
		}
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Upstream mappings (API_URL and API_KEY match the legacy deployment)
	"api_url":                      "upstream.api_url",
	"api_key":                      "upstream.api_key",
	"omdb_url":                     "upstream.omdb_url",
	"upstream_http_timeout":        "upstream.http_timeout",
	"upstream_concurrency":         "upstream.concurrency",
	"omdb_rate_limit":              "upstream.omdb_rate_limit",
	"omdb_burst":                   "upstream.omdb_burst",
	"circuit_breaker_enabled":      "upstream.breaker.enabled",
	"circuit_breaker_max_requests": "upstream.breaker.max_requests",
	"circuit_breaker_interval":     "upstream.breaker.interval",
	"circuit_breaker_timeout":      "upstream.breaker.timeout",
	"circuit_breaker_min_requests": "upstream.breaker.min_requests",
	"circuit_breaker_failure_rate": "upstream.breaker.failure_ratio",

	// Server mappings
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"request_timeout":       "server.request_timeout",

	// Cache mappings
	"cache_enabled":              "cache.enabled",
	"cache_type":                 "cache.type",
	"cache_path":                 "cache.path",
	"cache_ttl":                  "cache.ttl",
	"cache_capacity":             "cache.capacity",
	"cache_maintenance_interval": "cache.maintenance_interval",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Recommendation mappings
	"warm_catalog":          "recommend.warm_catalog",
	"catalog_warm_interval": "recommend.warm_interval",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - API_URL -> upstream.api_url
//   - HTTP_PORT -> server.port
//   - CACHE_TYPE -> cache.type
//
// Unmapped variables return "" and are skipped, so unrelated environment
// variables never pollute the config.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
