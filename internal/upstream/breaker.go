// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package upstream

import (
	"context"
	"errors"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moviepedia-recommender/internal/config"
	"github.com/tomtom215/moviepedia-recommender/internal/logging"
	"github.com/tomtom215/moviepedia-recommender/internal/metrics"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// BreakerLookup wraps a MovieLookup with the circuit breaker pattern so an
// unavailable or slow OMDb stops receiving traffic for a while.
//
// A NotFound result is a successful call. Context cancellations are excluded
// from the breaker counts: they describe the caller, not the upstream.
//
// DETERMINISM NOTE: gobreaker uses real time for its interval and timeout.
// Tests exercise tripping through ReadyToTrip, never through waiting.
type BreakerLookup struct {
	next MovieLookup
	cb   *gobreaker.CircuitBreaker[models.LookupResult]
	name string
}

// Ensure BreakerLookup implements MovieLookup
var _ MovieLookup = (*BreakerLookup)(nil)

// NewBreakerLookup creates a breaker named name around next.
// With the default configuration the circuit:
// - allows 3 requests in half-open state
// - resets counts every minute while closed
// - waits 2 minutes before half-opening
// - opens at a 60% failure rate over at least 10 requests
func NewBreakerLookup(name string, next MovieLookup, cfg config.BreakerConfig) *BreakerLookup {
	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	minRequests := cfg.MinRequests
	failureRatio := cfg.FailureRatio

	cb := gobreaker.NewCircuitBreaker[models.LookupResult](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}

			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := ratio >= failureRatio

			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	})

	return &BreakerLookup{next: next, cb: cb, name: name}
}

// Lookup implements MovieLookup with circuit breaker protection.
// While the circuit is open it fails fast with gobreaker.ErrOpenState.
func (b *BreakerLookup) Lookup(ctx context.Context, id string) (models.LookupResult, error) {
	result, err := b.cb.Execute(func() (models.LookupResult, error) {
		return b.next.Lookup(ctx, id)
	})

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Ctx(ctx).Debug().Err(err).Str("imdb_id", id).Msg("[CIRCUIT BREAKER] Request rejected")
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "excluded").Inc()
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			counts := b.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		}
		return models.LookupResult{}, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// State returns the current breaker state as "closed", "half-open" or "open".
func (b *BreakerLookup) State() string {
	return stateToString(b.cb.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
