// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviepedia-recommender/internal/config"
	"github.com/tomtom215/moviepedia-recommender/internal/logging"
)

// maxCatalogBody bounds the catalog document read into memory.
const maxCatalogBody = 32 << 20

// CatalogClient lists the catalog from the movie backend's home endpoint.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// catalogItem is one entry of the home listing. Only imdbID is used.
type catalogItem struct {
	IMDbID string `json:"imdbID"`
}

// NewCatalogClient creates a client for {APIURL}/api/Home.
func NewCatalogClient(cfg config.UpstreamConfig) *CatalogClient {
	return &CatalogClient{
		baseURL:    strings.TrimSuffix(cfg.APIURL, "/"),
		httpClient: newHTTPClient(cfg.HTTPTimeout),
	}
}

// CatalogMovieIDs returns the ids of every catalog movie in listing order.
//
// A non-200 answer yields an empty catalog rather than an error, so a
// degraded backend produces no recommendations instead of a failure.
// Entries without an imdbID are skipped.
func (c *CatalogClient) CatalogMovieIDs(ctx context.Context) ([]string, error) {
	resp, err := doGet(ctx, c.httpClient, UpstreamBackend, c.baseURL+"/api/Home")
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		logging.Ctx(ctx).Warn().
			Err(statusError(UpstreamBackend, resp)).
			Msg("Catalog unavailable, treating as empty")
		return []string{}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	items, err := decodeCatalog(body)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	skipped := 0
	for _, item := range items {
		id := strings.TrimSpace(item.IMDbID)
		if id == "" {
			skipped++
			continue
		}
		ids = append(ids, id)
	}
	if skipped > 0 {
		logging.Ctx(ctx).Debug().Int("skipped", skipped).Msg("Catalog entries without imdbID")
	}
	return ids, nil
}

// decodeCatalog accepts either a bare array or an object wrapping it in "movies".
func decodeCatalog(body []byte) ([]catalogItem, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' {
		var wrapped struct {
			Movies []catalogItem `json:"movies"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode catalog: %w", err)
		}
		return wrapped.Movies, nil
	}

	var items []catalogItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return items, nil
}
