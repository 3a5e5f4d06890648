// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package upstream

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnexpectedStatus matches every StatusError through errors.Is.
var ErrUnexpectedStatus = errors.New("unexpected upstream status")

// ErrRateBudgetExceeded reports that the OMDb rate limit cannot issue another
// request before the caller's deadline. It wraps context.DeadlineExceeded so
// the circuit breaker ignores it and the resolver aborts instead of dropping
// the movie.
var ErrRateBudgetExceeded = fmt.Errorf("omdb rate limit exceeds request deadline: %w", context.DeadlineExceeded)

// StatusError reports a non-success HTTP status from an upstream service.
type StatusError struct {
	Upstream   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Upstream, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Upstream, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrUnexpectedStatus) match.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
