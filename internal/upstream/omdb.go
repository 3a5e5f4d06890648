// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
omdb.go - OMDb detail lookups

Resolves one IMDb id to title, plot and poster through the OMDb API
(GET {omdb_url}?i={id}&apikey={key}). Outbound calls share a process-wide
token bucket so request fan-out cannot exceed the key's quota.

API Reference: https://www.omdbapi.com/
*/

package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moviepedia-recommender/internal/config"
	"github.com/tomtom215/moviepedia-recommender/internal/logging"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// MovieLookup resolves a movie id to its details.
// OMDbClient, BreakerLookup and CachedLookup all implement it.
type MovieLookup interface {
	Lookup(ctx context.Context, id string) (models.LookupResult, error)
}

// Ensure OMDbClient implements MovieLookup
var _ MovieLookup = (*OMDbClient)(nil)

// OMDbClient provides access to the OMDb API.
type OMDbClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// omdbResponse is the subset of the OMDb answer the recommender uses.
type omdbResponse struct {
	Response string `json:"Response"`
	Title    string `json:"Title"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	Error    string `json:"Error"`
}

// NewOMDbClient creates an OMDb client from upstream configuration.
// A zero OMDbRateLimit disables throttling.
func NewOMDbClient(cfg config.UpstreamConfig) (*OMDbClient, error) {
	base, err := url.Parse(cfg.OMDbURL)
	if err != nil {
		return nil, fmt.Errorf("invalid OMDb URL: %w", err)
	}

	limit := rate.Inf
	if cfg.OMDbRateLimit > 0 {
		limit = rate.Limit(cfg.OMDbRateLimit)
	}
	burst := cfg.OMDbBurst
	if burst < 1 {
		burst = 1
	}

	return &OMDbClient{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		httpClient: newHTTPClient(cfg.HTTPTimeout),
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

// Lookup fetches details for one IMDb id.
//
// The result is Found only when OMDb answers Response=True with a non-empty
// plot; every other well-formed answer is NotFound. Transport failures,
// non-200 statuses and undecodable bodies are errors.
func (c *OMDbClient) Lookup(ctx context.Context, id string) (models.LookupResult, error) {
	if strings.TrimSpace(id) == "" {
		return models.NotFound(id), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.LookupResult{}, fmt.Errorf("omdb rate limiter: %w", ctxErr)
		}
		// Wait refuses early when the next token lands after the deadline.
		return models.LookupResult{}, fmt.Errorf("omdb lookup %s: %w", id, ErrRateBudgetExceeded)
	}

	fullURL := c.lookupURL(id)
	logging.Ctx(ctx).Trace().Str("url", logging.RedactURL(fullURL)).Msg("OMDb lookup")

	resp, err := doGet(ctx, c.httpClient, UpstreamOMDb, fullURL)
	if err != nil {
		// The transport error embeds the URL, which carries the API key.
		return models.LookupResult{}, fmt.Errorf("omdb request for %s failed: %w", id, redactURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.LookupResult{}, statusError(UpstreamOMDb, resp)
	}

	var data omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.LookupResult{}, fmt.Errorf("failed to decode omdb response for %s: %w", id, err)
	}

	if data.Response != "True" || data.Plot == "" {
		logging.Ctx(ctx).Debug().Str("imdb_id", id).Str("reason", data.Error).Msg("OMDb has no usable data")
		return models.NotFound(id), nil
	}

	return models.Found(models.MovieRecord{
		ID:     id,
		Title:  data.Title,
		Plot:   data.Plot,
		Poster: data.Poster,
	}), nil
}

// lookupURL builds the request URL for id, keeping any query already on the base.
func (c *OMDbClient) lookupURL(id string) string {
	u := *c.baseURL
	q := u.Query()
	q.Set("i", id)
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String()
}

// redactURLError strips the API key from a *url.Error.
func redactURLError(err error) error {
	if uerr, ok := err.(*url.Error); ok {
		return &url.Error{Op: uerr.Op, URL: logging.RedactURL(uerr.URL), Err: uerr.Err}
	}
	return err
}
