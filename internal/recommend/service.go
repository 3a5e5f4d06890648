// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// LikedSource returns the ids of movies a user has liked, in service order.
type LikedSource interface {
	LikedMovieIDs(ctx context.Context, userID string) ([]string, error)
}

// CatalogSource returns the ids of movies in the home catalog.
type CatalogSource interface {
	CatalogMovieIDs(ctx context.Context) ([]string, error)
}

// DetailResolver resolves movie ids to records. Ids without usable data are
// omitted from the result; the returned records keep input order.
type DetailResolver interface {
	Resolve(ctx context.Context, ids []string) ([]models.MovieRecord, error)
}

// Service gathers a user's liked set and the catalog, then ranks them.
type Service struct {
	engine   *Engine
	liked    LikedSource
	catalog  CatalogSource
	resolver DetailResolver
	logger   zerolog.Logger
}

// NewService wires the engine to its upstream collaborators.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(engine *Engine, liked LikedSource, catalog CatalogSource, resolver DetailResolver, logger zerolog.Logger) *Service {
	return &Service{
		engine:   engine,
		liked:    liked,
		catalog:  catalog,
		resolver: resolver,
		logger:   logger.With().Str("component", "recommend-service").Logger(),
	}
}

// RecommendForUser builds recommendations for userID.
// The catalog is not fetched when the user has no liked movie with a plot.
func (s *Service) RecommendForUser(ctx context.Context, userID string) (*Result, error) {
	likedIDs, err := s.liked.LikedMovieIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch liked movies: %w", err)
	}

	liked, err := s.resolver.Resolve(ctx, likedIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve liked movies: %w", err)
	}
	if !anyPlot(liked) {
		s.logger.Debug().
			Str("user_id", userID).
			Int("liked_ids", len(likedIDs)).
			Msg("no liked movies with plots")
		return emptyResult(Stats{ShortCircuit: ShortCircuitNoLiked}), nil
	}

	catalogIDs, err := s.catalog.CatalogMovieIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	catalog, err := s.resolver.Resolve(ctx, catalogIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog movies: %w", err)
	}

	result, err := s.engine.Rank(ctx, liked, catalog)
	if err != nil {
		return nil, fmt.Errorf("rank catalog: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("liked", len(liked)).
		Int("catalog", len(catalog)).
		Int("recommendations", len(result.Recommendations)).
		Msg("recommendations generated")

	return result, nil
}

//nolint:gocritic // rangeValCopy: MovieRecord is small
func anyPlot(recs []models.MovieRecord) bool {
	for _, r := range recs {
		if r.HasPlot() {
			return true
		}
	}
	return false
}
