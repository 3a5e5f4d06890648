// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/moviepedia-recommender/internal/metrics"
)

// Upstream names used in metrics labels and errors.
const (
	UpstreamBackend = "backend"
	UpstreamOMDb    = "omdb"
)

const (
	userAgent = "moviepedia-recommender/1.0"

	// maxErrorBody caps how much of an error response ends up in an error string.
	maxErrorBody = 512

	defaultHTTPTimeout = 10 * time.Second
)

// newHTTPClient returns the client shared by one upstream.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// doGet performs a GET and records its status and latency.
func doGet(ctx context.Context, client *http.Client, upstream, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := client.Do(req)
	status := 0
	if err == nil {
		status = resp.StatusCode
	}
	metrics.RecordUpstreamRequest(upstream, status, time.Since(start))

	return resp, err
}

// statusError drains up to maxErrorBody bytes of resp into a StatusError.
func statusError(upstream string, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &StatusError{Upstream: upstream, StatusCode: resp.StatusCode}
	}
	return &StatusError{
		Upstream:   upstream,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
