// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package config

import (
	"fmt"
	"net/url"

	"github.com/tomtom215/moviepedia-recommender/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	// The backend may be mounted under a path prefix.
	if err := validateHTTPURL(c.Upstream.APIURL, "API_URL", urlRules{allowPath: true}); err != nil {
		return err
	}
	// OMDb lookups add i and apikey to whatever query the base URL carries.
	if err := validateHTTPURL(c.Upstream.OMDbURL, "OMDB_URL", urlRules{allowPath: true, allowQuery: true}); err != nil {
		return err
	}

	if c.Cache.Enabled && c.Cache.Type == "badger" && c.Cache.Path == "" {
		return fmt.Errorf("CACHE_PATH is required when CACHE_TYPE=badger")
	}

	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if err := validateHTTPURL(origin, "CORS_ORIGINS", urlRules{}); err != nil {
			return err
		}
	}

	return nil
}

// urlRules relaxes validateHTTPURL for a particular setting.
type urlRules struct {
	allowPath  bool
	allowQuery bool
}

// validateHTTPURL validates that a URL is properly formatted for HTTP/HTTPS services.
// Scheme must be http or https and a host is required. Paths other than "/"
// and query parameters are rejected unless the rules allow them.
func validateHTTPURL(rawURL, fieldName string, rules urlRules) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if !rules.allowPath && parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if !rules.allowQuery && parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
