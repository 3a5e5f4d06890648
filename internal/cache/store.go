// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package cache

import (
	"context"
	"fmt"
	"time"
)

// Store is a string-keyed cache of V values with a backend-wide TTL.
type Store[V any] interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) (V, bool, error)

	// Set stores value under key with the configured TTL.
	Set(ctx context.Context, key string, value V) error

	// Close releases backend resources.
	Close() error
}

// Maintainer is a Store that needs periodic housekeeping.
type Maintainer interface {
	// Maintain drops expired entries, reclaims backend space and reports
	// the store's counters after the pass.
	Maintain(ctx context.Context) (Stats, error)
}

// Type selects a Store backend.
type Type string

const (
	// TypeMemory is the in-process LRU (default, lost on restart).
	TypeMemory Type = "memory"

	// TypeBadger persists entries to a BadgerDB directory.
	TypeBadger Type = "badger"
)

// Config configures NewStore.
type Config struct {
	Type Type

	// TTL applies to every entry.
	TTL time.Duration

	// Capacity bounds the memory backend.
	Capacity int

	// Path is the BadgerDB directory. Empty runs Badger in memory.
	Path string
}

// Stats reports cache effectiveness. Backends that do not track hits and
// misses leave them zero.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int

	// Expired is the number of entries dropped by the last Maintain pass.
	Expired int
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// NewStore builds the backend named by cfg.Type.
func NewStore[V any](cfg Config) (Store[V], error) {
	switch cfg.Type {
	case TypeMemory, "":
		return NewLRU[V](cfg.Capacity, cfg.TTL), nil
	case TypeBadger:
		store, err := NewBadgerStore[V](cfg.Path, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}

// Verify interface implementations at compile time
var (
	_ Store[string] = (*LRU[string])(nil)
	_ Store[string] = (*BadgerStore[string])(nil)

	_ Maintainer = (*LRU[string])(nil)
	_ Maintainer = (*BadgerStore[string])(nil)
)
