// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviepedia-recommender/internal/metrics"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// CatalogLister lists the ids of the home catalog.
type CatalogLister interface {
	CatalogMovieIDs(ctx context.Context) ([]string, error)
}

// DetailResolver resolves ids through the cached lookup chain.
type DetailResolver interface {
	Resolve(ctx context.Context, ids []string) ([]models.MovieRecord, error)
}

// CatalogWarmerConfig holds configuration for the catalog warmer.
type CatalogWarmerConfig struct {
	// WarmOnStartup runs one pass as soon as the service starts.
	WarmOnStartup bool

	// Interval is how often the catalog is re-resolved. Default: 30m
	Interval time.Duration

	// RunTimeout bounds a single pass. Default: 10m
	RunTimeout time.Duration
}

// CatalogWarmerService periodically resolves every catalog movie so that
// request-time detail lookups are served from the cache.
type CatalogWarmerService struct {
	catalog  CatalogLister
	resolver DetailResolver
	config   CatalogWarmerConfig
	logger   zerolog.Logger
	name     string
}

// NewCatalogWarmerService creates a new catalog warmer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogWarmerService(catalog CatalogLister, resolver DetailResolver, cfg CatalogWarmerConfig, logger zerolog.Logger) *CatalogWarmerService {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 10 * time.Minute
	}
	return &CatalogWarmerService{
		catalog:  catalog,
		resolver: resolver,
		config:   cfg,
		logger:   logger.With().Str("service", "catalog-warmer").Logger(),
		name:     "catalog-warmer",
	}
}

// Serve implements suture.Service. A failed pass is logged and retried on
// the next tick; it never makes the service exit.
func (s *CatalogWarmerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("warm_on_startup", s.config.WarmOnStartup).
		Dur("interval", s.config.Interval).
		Msg("catalog warmer starting")

	if s.config.WarmOnStartup {
		if err := s.warm(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("initial catalog warm failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog warmer shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.warm(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn().Err(err).Msg("scheduled catalog warm failed")
			}
		}
	}
}

// warm runs one pass and records it in the catalog_warm_* metrics.
func (s *CatalogWarmerService) warm(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	start := time.Now()
	resolved, err := s.warmOnce(runCtx)
	metrics.RecordCatalogWarm(time.Since(start), resolved, err)
	if err != nil {
		return err
	}

	s.logger.Info().
		Int("resolved", resolved).
		Dur("duration", time.Since(start)).
		Msg("catalog warm complete")
	return nil
}

func (s *CatalogWarmerService) warmOnce(ctx context.Context) (int, error) {
	ids, err := s.catalog.CatalogMovieIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list catalog: %w", err)
	}
	records, err := s.resolver.Resolve(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("resolve catalog: %w", err)
	}
	return len(records), nil
}

// String returns the service name for logging.
func (s *CatalogWarmerService) String() string {
	return s.name
}
