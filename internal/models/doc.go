// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Package models defines the data structures shared by the recommender packages.

Key Components:

  - MovieRecord: Movie metadata resolved from the detail service (id, title, plot, poster)
  - LookupResult: Outcome of a single detail lookup (found or not found)
  - CatalogEntry: Display attributes stored in the title-keyed catalog index
  - Recommendation: A single recommended catalog movie
  - RecommendationResponse / ErrorResponse / HealthResponse: HTTP payloads

Records are request-scoped values. Nothing in this package is persisted except
LookupResult, which the detail cache may store.

Usage Example:

	import "github.com/tomtom215/moviepedia-recommender/internal/models"

	rec := models.MovieRecord{
	    ID:     "tt0133093",
	    Title:  "The Matrix",
	    Plot:   "A computer hacker learns about the true nature of reality.",
	    Poster: "https://example.com/matrix.jpg",
	}
	if rec.HasPlot() {
	    // participates in vectorization
	}

JSON field names follow the wire format consumed by the Moviepedia frontend:
recommendations use "title", "imdbID" and "poster", and the response wrapper
uses the capitalized "Recommendations" key.
*/
package models
