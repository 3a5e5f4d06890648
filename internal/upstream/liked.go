// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviepedia-recommender/internal/config"
	"github.com/tomtom215/moviepedia-recommender/internal/logging"
)

// LikedClient reads a user's liked movie ids from the movie backend.
type LikedClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewLikedClient creates a client for {APIURL}/api/liked/{userId}.
func NewLikedClient(cfg config.UpstreamConfig) *LikedClient {
	return &LikedClient{
		baseURL:    strings.TrimSuffix(cfg.APIURL, "/"),
		httpClient: newHTTPClient(cfg.HTTPTimeout),
	}
}

// LikedMovieIDs returns the user's liked movie ids in backend order.
//
// The backend answers 404 when the user has liked nothing; that is reported
// as an empty list, not an error. Blank ids are dropped.
func (c *LikedClient) LikedMovieIDs(ctx context.Context, userID string) ([]string, error) {
	endpoint := c.baseURL + "/api/liked/" + url.PathEscape(userID)

	resp, err := doGet(ctx, c.httpClient, UpstreamBackend, endpoint)
	if err != nil {
		return nil, fmt.Errorf("liked movies request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		logging.Ctx(ctx).Debug().Str("user_id", userID).Msg("No liked movies for user")
		return []string{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(UpstreamBackend, resp)
	}

	var raw []string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode liked movies: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
