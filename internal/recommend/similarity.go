// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package recommend

import (
	"sort"
)

// CosineSimilarity returns dot(a, b) / (|a| * |b|) clamped to [0, 1].
// A zero-norm input yields 0. Vectors of different length are compared over
// their common prefix.
func CosineSimilarity(a, b Vector) float64 {
	return cosineWithNorms(a, b, a.Norm(), b.Norm())
}

func cosineWithNorms(a, b Vector, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}

	sim := dot / (normA * normB)
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	default:
		return sim
	}
}

// ScoreMatrix computes the L x C cosine matrix between liked and catalog vectors.
func ScoreMatrix(liked, catalog []Vector) [][]float64 {
	catalogNorms := make([]float64, len(catalog))
	for j, c := range catalog {
		catalogNorms[j] = c.Norm()
	}

	scores := make([][]float64, len(liked))
	for i, l := range liked {
		likedNorm := l.Norm()
		row := make([]float64, len(catalog))
		for j, c := range catalog {
			row[j] = cosineWithNorms(l, c, likedNorm, catalogNorms[j])
		}
		scores[i] = row
	}
	return scores
}

// TopK returns the indices of the k highest scores in descending order.
// Equal scores keep their original index order.
func TopK(scores []float64, k int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	if k < 0 {
		k = 0
	}
	if k < len(idx) {
		idx = idx[:k]
	}
	return idx
}
