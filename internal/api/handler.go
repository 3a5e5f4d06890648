// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package api

import (
	"context"
	"time"

	"github.com/tomtom215/moviepedia-recommender/internal/recommend"
)

// Recommender produces recommendations for one user.
// *recommend.Service implements it.
type Recommender interface {
	RecommendForUser(ctx context.Context, userID string) (*recommend.Result, error)
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	recommender    Recommender
	requestTimeout time.Duration
	startTime      time.Time
}

// NewHandler creates a Handler. A zero requestTimeout leaves requests
// bounded only by the client and server timeouts.
func NewHandler(recommender Recommender, requestTimeout time.Duration) *Handler {
	return &Handler{
		recommender:    recommender,
		requestTimeout: requestTimeout,
		startTime:      time.Now(),
	}
}
