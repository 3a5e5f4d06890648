// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// Note: This package has no dependencies on other internal packages except
// models. Upstream clients plug in through the interfaces in service.go.

// Engine ranks catalog movies against liked movies by plot similarity.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	vectorizer *Vectorizer
	topK       int
	logger     zerolog.Logger
}

// NewEngine creates an engine selecting DefaultTopK movies per liked movie.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		vectorizer: NewVectorizer(),
		topK:       DefaultTopK,
		logger:     logger.With().Str("component", "recommend").Logger(),
	}
}

// Rank runs corpus building, vectorization, similarity and deduplication.
//
// Missing liked or catalog plots and an all-stop-word corpus yield an empty
// result rather than an error.
func (e *Engine) Rank(ctx context.Context, liked, catalog []models.MovieRecord) (*Result, error) {
	start := time.Now()

	corpus := BuildCorpus(liked, catalog)
	stats := Stats{
		LikedDocuments:   len(corpus.LikedPlots),
		CatalogDocuments: len(corpus.CatalogPlots),
	}

	switch {
	case len(corpus.LikedPlots) == 0:
		stats.ShortCircuit = ShortCircuitNoLiked
	case len(corpus.CatalogPlots) == 0:
		stats.ShortCircuit = ShortCircuitNoCatalog
	}
	if stats.ShortCircuit != "" {
		e.logger.Debug().
			Str("reason", stats.ShortCircuit).
			Int("liked", stats.LikedDocuments).
			Int("catalog", stats.CatalogDocuments).
			Msg("nothing to rank")
		return emptyResult(stats), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tfidf, err := e.vectorizer.FitTransform(corpus.Documents())
	if errors.Is(err, ErrEmptyVocabulary) {
		stats.ShortCircuit = ShortCircuitEmptyVocabulary
		e.logger.Warn().
			Int("documents", stats.LikedDocuments+stats.CatalogDocuments).
			Msg("plots contain no vocabulary terms")
		return emptyResult(stats), nil
	}
	if err != nil {
		return nil, fmt.Errorf("vectorize corpus: %w", err)
	}
	stats.VocabularySize = len(tfidf.Vocabulary)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	split := corpus.Split()
	scores := ScoreMatrix(tfidf.Vectors[:split], tfidf.Vectors[split:])

	perLiked := make([][]ScoredRecommendation, len(scores))
	candidates := make([]models.Recommendation, 0, len(scores)*e.topK)
	for i, row := range scores {
		top := TopK(row, e.topK)
		list := make([]ScoredRecommendation, 0, len(top))
		for _, j := range top {
			rec := corpus.recommendationAt(j)
			list = append(list, ScoredRecommendation{Recommendation: rec, Score: row[j]})
			candidates = append(candidates, rec)
		}
		perLiked[i] = list
	}

	recs := Deduplicate(candidates)
	stats.Candidates = len(candidates)
	stats.Unique = len(recs)

	e.logger.Debug().
		Int("liked", stats.LikedDocuments).
		Int("catalog", stats.CatalogDocuments).
		Int("vocabulary", stats.VocabularySize).
		Int("candidates", stats.Candidates).
		Int("unique", stats.Unique).
		Dur("duration", time.Since(start)).
		Msg("ranking complete")

	return &Result{
		Recommendations: recs,
		PerLiked:        perLiked,
		Stats:           stats,
	}, nil
}
