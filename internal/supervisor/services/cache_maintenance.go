// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviepedia-recommender/internal/cache"
	"github.com/tomtom215/moviepedia-recommender/internal/metrics"
)

// CacheMaintenanceService runs periodic housekeeping on the detail cache:
// expired LRU entries are dropped and the Badger value log is garbage
// collected. Each pass refreshes the cache_entries and cache_evictions_total
// metrics.
type CacheMaintenanceService struct {
	store     cache.Maintainer
	cacheType string
	interval  time.Duration
	logger    zerolog.Logger

	// lastEvictions is the cumulative eviction count of the previous pass.
	lastEvictions int64
}

// NewCacheMaintenanceService creates the maintenance service. A non-positive
// interval falls back to 10 minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheMaintenanceService(store cache.Maintainer, cacheType string, interval time.Duration, logger zerolog.Logger) *CacheMaintenanceService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheMaintenanceService{
		store:     store,
		cacheType: cacheType,
		interval:  interval,
		logger:    logger.With().Str("service", "cache-maintenance").Str("cache_type", cacheType).Logger(),
	}
}

// Serve implements suture.Service. Pass failures are logged and retried on
// the next tick.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cache maintenance starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache maintenance shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.maintain(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn().Err(err).Msg("cache maintenance pass failed")
			}
		}
	}
}

func (s *CacheMaintenanceService) maintain(ctx context.Context) error {
	stats, err := s.store.Maintain(ctx)
	if err != nil {
		return err
	}

	newEvictions := stats.Evictions - s.lastEvictions
	s.lastEvictions = stats.Evictions
	metrics.RecordCacheMaintenance(s.cacheType, stats.Entries, newEvictions)

	s.logger.Debug().
		Int("entries", stats.Entries).
		Int("expired", stats.Expired).
		Int64("evictions", newEvictions).
		Float64("hit_rate", stats.HitRate()).
		Msg("cache maintenance complete")
	return nil
}

// String returns the service name for logging.
func (s *CacheMaintenanceService) String() string {
	return "cache-maintenance"
}
