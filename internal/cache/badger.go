// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// badgerKeyPrefix namespaces cache keys inside the database.
const badgerKeyPrefix = "movie:"

// BadgerStore is a Store persisted in BadgerDB. Values are JSON encoded and
// expire through Badger's native entry TTL.
type BadgerStore[V any] struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerStore opens a BadgerDB at path, or an in-memory instance when
// path is empty.
//
//	store, err := cache.NewBadgerStore[models.LookupResult]("/data/cache", 24*time.Hour)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
func NewBadgerStore[V any](path string, ttl time.Duration) (*BadgerStore[V], error) {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil                // Suppress BadgerDB internal logs
	opts.ValueLogFileSize = 16 << 20 // Plots are small; 16MB instead of 1GB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for cache: %w", err)
	}

	return &BadgerStore[V]{db: db, ttl: ttl}, nil
}

// Get implements Store.
func (s *BadgerStore[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var value V
	if err := ctx.Err(); err != nil {
		return value, false, err
	}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &value)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		var zero V
		return zero, false, nil
	}
	if err != nil {
		var zero V
		return zero, false, fmt.Errorf("get cache entry %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *BadgerStore[V]) Set(ctx context.Context, key string, value V) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(badgerKeyPrefix+key), data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
}

// RunGC reclaims value log space. Nothing to collect is not an error.
func (s *BadgerStore[V]) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// Maintain implements Maintainer. Badger drops expired entries itself during
// compaction, so a pass only rewrites the value log and counts live keys.
func (s *BadgerStore[V]) Maintain(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	if err := s.RunGC(); err != nil {
		return Stats{}, fmt.Errorf("badger value log gc: %w", err)
	}

	entries, err := s.countEntries()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Entries: entries}, nil
}

// countEntries counts unexpired cache keys without reading values.
func (s *BadgerStore[V]) countEntries() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return count, nil
}

// Close implements Store.
func (s *BadgerStore[V]) Close() error {
	return s.db.Close()
}
