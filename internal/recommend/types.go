// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package recommend

import (
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// DefaultTopK is the number of catalog movies selected per liked movie.
const DefaultTopK = 5

// Vector is a dense TF-IDF row indexed by vocabulary position.
type Vector []float64

// CatalogIndex maps a catalog title to its id and poster.
//
// Keyed by title: when two catalog movies share a title the later one
// overwrites the earlier.
type CatalogIndex map[string]models.CatalogEntry

// ScoredRecommendation is a recommendation with its cosine score against
// the liked movie that selected it.
type ScoredRecommendation struct {
	models.Recommendation
	Score float64 `json:"score"`
}

// Stats describes the shape of one ranking run.
type Stats struct {
	LikedDocuments   int `json:"liked_documents"`
	CatalogDocuments int `json:"catalog_documents"`
	VocabularySize   int `json:"vocabulary_size"`
	Candidates       int `json:"candidates"`
	Unique           int `json:"unique"`

	// ShortCircuit names why ranking stopped early, empty when it ran fully.
	ShortCircuit string `json:"short_circuit,omitempty"`
}

// Short-circuit reasons reported in Stats.
const (
	ShortCircuitNoLiked         = "no_liked_plots"
	ShortCircuitNoCatalog       = "no_catalog_plots"
	ShortCircuitEmptyVocabulary = "empty_vocabulary"
)

// Result is the output of Engine.Rank.
type Result struct {
	// Recommendations is the deduplicated final list, never nil.
	Recommendations []models.Recommendation `json:"recommendations"`

	// PerLiked holds the top-K list of each liked movie, in liked order.
	PerLiked [][]ScoredRecommendation `json:"per_liked,omitempty"`

	Stats Stats `json:"stats"`
}

func emptyResult(stats Stats) *Result {
	return &Result{
		Recommendations: []models.Recommendation{},
		Stats:           stats,
	}
}
