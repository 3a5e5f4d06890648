// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package services

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/moviepedia-recommender/internal/metrics"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

type stubCatalog struct {
	ids   []string
	err   error
	calls atomic.Int32
}

func (s *stubCatalog) CatalogMovieIDs(_ context.Context) ([]string, error) {
	s.calls.Add(1)
	return s.ids, s.err
}

type stubResolver struct {
	mu       sync.Mutex
	received [][]string
}

func (s *stubResolver) Resolve(_ context.Context, ids []string) ([]models.MovieRecord, error) {
	s.mu.Lock()
	s.received = append(s.received, ids)
	s.mu.Unlock()

	out := make([]models.MovieRecord, 0, len(ids))
	for _, id := range ids {
		if id == "tt-missing" {
			continue
		}
		out = append(out, models.MovieRecord{ID: id, Plot: "plot"})
	}
	return out, nil
}

func (s *stubResolver) batches() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.received...)
}

var _ suture.Service = (*CatalogWarmerService)(nil)

func TestNewCatalogWarmerService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewCatalogWarmerService(&stubCatalog{}, &stubResolver{}, CatalogWarmerConfig{}, zerolog.Nop())
	if svc.config.Interval != 30*time.Minute {
		t.Errorf("Interval = %v, want 30m", svc.config.Interval)
	}
	if svc.config.RunTimeout != 10*time.Minute {
		t.Errorf("RunTimeout = %v, want 10m", svc.config.RunTimeout)
	}
	if svc.String() != "catalog-warmer" {
		t.Errorf("String() = %q", svc.String())
	}
}

// The warm tests share the global catalog_warm_runs_total counter and so
// run sequentially.

func TestCatalogWarmer_WarmOnce(t *testing.T) {
	catalog := &stubCatalog{ids: []string{"tt1", "tt-missing", "tt2"}}
	resolver := &stubResolver{}
	svc := NewCatalogWarmerService(catalog, resolver, CatalogWarmerConfig{}, zerolog.Nop())

	success := metrics.CatalogWarmRuns.WithLabelValues("success")
	before := testutil.ToFloat64(success)

	if err := svc.warm(context.Background()); err != nil {
		t.Fatalf("warm() error = %v", err)
	}

	if got := resolver.batches(); !reflect.DeepEqual(got, [][]string{{"tt1", "tt-missing", "tt2"}}) {
		t.Errorf("resolved batches = %v", got)
	}
	if got := testutil.ToFloat64(success) - before; got != 1 {
		t.Errorf("success runs delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CatalogMovies); got != 2 {
		t.Errorf("catalog movies gauge = %v, want 2", got)
	}
}

func TestCatalogWarmer_ListFailure(t *testing.T) {
	catalog := &stubCatalog{err: errors.New("connection refused")}
	resolver := &stubResolver{}
	svc := NewCatalogWarmerService(catalog, resolver, CatalogWarmerConfig{}, zerolog.Nop())

	failed := metrics.CatalogWarmRuns.WithLabelValues("error")
	before := testutil.ToFloat64(failed)

	if err := svc.warm(context.Background()); err == nil {
		t.Fatal("warm() error = nil, want list failure")
	}
	if len(resolver.batches()) != 0 {
		t.Error("resolver called after catalog listing failed")
	}
	if got := testutil.ToFloat64(failed) - before; got != 1 {
		t.Errorf("error runs delta = %v, want 1", got)
	}
}

func TestCatalogWarmer_ServeWarmsOnStartupAndOnTick(t *testing.T) {
	catalog := &stubCatalog{ids: []string{"tt1"}}
	resolver := &stubResolver{}
	svc := NewCatalogWarmerService(catalog, resolver, CatalogWarmerConfig{
		WarmOnStartup: true,
		Interval:      20 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for catalog.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if got := catalog.calls.Load(); got < 3 {
		t.Errorf("catalog listed %d times, want at least 3", got)
	}
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestCatalogWarmer_FailuresDoNotStopService(t *testing.T) {
	catalog := &stubCatalog{err: errors.New("backend down")}
	svc := NewCatalogWarmerService(catalog, &stubResolver{}, CatalogWarmerConfig{
		WarmOnStartup: true,
		Interval:      10 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
	}
	if got := catalog.calls.Load(); got < 2 {
		t.Errorf("catalog listed %d times, want retries after failure", got)
	}
}
