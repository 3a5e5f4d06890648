// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package recommend

import (
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// Deduplicate keeps the first recommendation for each IMDb id.
// Output follows first-encounter order and is never nil.
func Deduplicate(recs []models.Recommendation) []models.Recommendation {
	seen := make(map[string]struct{}, len(recs))
	out := make([]models.Recommendation, 0, len(recs))

	for _, rec := range recs {
		if _, dup := seen[rec.IMDbID]; dup {
			continue
		}
		seen[rec.IMDbID] = struct{}{}
		out = append(out, rec)
	}

	return out
}
