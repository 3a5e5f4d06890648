// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package upstream

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/moviepedia-recommender/internal/logging"
	"github.com/tomtom215/moviepedia-recommender/internal/metrics"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

const defaultConcurrency = 8

// Resolver turns movie ids into records with a bounded number of lookups in
// flight.
type Resolver struct {
	lookup      MovieLookup
	concurrency int
}

// NewResolver creates a resolver issuing at most concurrency lookups at once.
func NewResolver(lookup MovieLookup, concurrency int) *Resolver {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &Resolver{lookup: lookup, concurrency: concurrency}
}

// Resolve looks up every id and returns the Found records in input order.
//
// NotFound ids and per-id lookup failures are dropped: one broken movie must
// not fail the whole request. Failures are logged once per call with a count.
// If ctx ends before all lookups finish, Resolve returns ctx's error. It also
// fails with ErrRateBudgetExceeded once the OMDb rate limit cannot finish the
// remaining lookups before ctx's deadline, rather than returning a partial list.
func (r *Resolver) Resolve(ctx context.Context, ids []string) ([]models.MovieRecord, error) {
	if len(ids) == 0 {
		return []models.MovieRecord{}, nil
	}

	results := make([]models.LookupResult, len(ids))
	var (
		mu       sync.Mutex
		failures int
		first    lookupFailure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := r.lookup.Lookup(gctx, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
					return ctxErr
				}
				if errors.Is(err, ErrRateBudgetExceeded) {
					return err
				}
				metrics.RecordMovieLookup(metrics.OutcomeError)
				mu.Lock()
				if failures == 0 {
					first = lookupFailure{id: id, err: err}
				}
				failures++
				mu.Unlock()
				return nil
			}

			if res.OK() {
				metrics.RecordMovieLookup(metrics.OutcomeFound)
			} else {
				metrics.RecordMovieLookup(metrics.OutcomeNotFound)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The parent may end between the last lookup and Wait returning.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if failures > 0 {
		logging.Ctx(ctx).Warn().
			Err(first.err).
			Str("first_imdb_id", first.id).
			Int("failed", failures).
			Int("requested", len(ids)).
			Msg("Movie lookups failed, continuing without them")
	}

	records := make([]models.MovieRecord, 0, len(ids))
	for _, res := range results {
		if res.OK() {
			records = append(records, res.Record)
		}
	}
	return records, nil
}

// lookupFailure remembers the first failed id for the summary log.
type lookupFailure struct {
	id  string
	err error
}
