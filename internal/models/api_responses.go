// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package models

// RecommendationResponse is the success body of the recommend endpoint.
// Recommendations is always a non-nil slice so that it encodes as [].
type RecommendationResponse struct {
	Recommendations []Recommendation `json:"Recommendations"`
}

// NewRecommendationResponse wraps recs, replacing nil with an empty slice.
func NewRecommendationResponse(recs []Recommendation) RecommendationResponse {
	if recs == nil {
		recs = []Recommendation{}
	}
	return RecommendationResponse{Recommendations: recs}
}

// ErrorResponse is the body returned on failures.
// Message is deliberately generic for server errors; causes are only logged.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// RankRequest is the offline ranking input accepted by the CLI.
type RankRequest struct {
	Liked   []MovieRecord `json:"liked"`
	Catalog []MovieRecord `json:"catalog"`
}
