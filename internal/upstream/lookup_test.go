// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package upstream

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moviepedia-recommender/internal/cache"
	"github.com/tomtom215/moviepedia-recommender/internal/config"
	"github.com/tomtom215/moviepedia-recommender/internal/metrics"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// fakeLookup answers from a fixed table and counts calls.
type fakeLookup struct {
	mu      sync.Mutex
	results map[string]models.LookupResult
	errs    map[string]error
	delay   time.Duration
	calls   atomic.Int64

	inFlight    atomic.Int64
	maxInFlight atomic.Int64
}

func (f *fakeLookup) Lookup(ctx context.Context, id string) (models.LookupResult, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return models.LookupResult{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[id]; ok {
		return models.LookupResult{}, err
	}
	if res, ok := f.results[id]; ok {
		return res, nil
	}
	return models.NotFound(id), nil
}

func found(id, title string) models.LookupResult {
	return models.Found(models.MovieRecord{ID: id, Title: title, Plot: title + " plot"})
}

// ============================================================================
// Resolver
// ============================================================================

func TestResolver_PreservesOrderAndDropsMisses(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{
		results: map[string]models.LookupResult{
			"tt1": found("tt1", "One"),
			"tt2": found("tt2", "Two"),
			"tt4": found("tt4", "Four"),
		},
		errs:  map[string]error{"tt3": errors.New("omdb exploded")},
		delay: time.Millisecond,
	}

	records, err := NewResolver(lookup, 2).Resolve(context.Background(), []string{"tt4", "tt3", "tt1", "tt9", "tt2"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if want := []string{"tt4", "tt1", "tt2"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("Resolve() ids = %v, want %v", ids, want)
	}
}

func TestResolver_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{delay: 5 * time.Millisecond}
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = fmt.Sprintf("tt%d", i)
	}

	if _, err := NewResolver(lookup, 3).Resolve(context.Background(), ids); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := lookup.maxInFlight.Load(); got > 3 {
		t.Errorf("max in flight = %d, want <= 3", got)
	}
	if got := lookup.calls.Load(); got != 20 {
		t.Errorf("calls = %d, want 20", got)
	}
}

func TestResolver_Empty(t *testing.T) {
	t.Parallel()

	records, err := NewResolver(&fakeLookup{}, 0).Resolve(context.Background(), nil)
	if err != nil || records == nil || len(records) != 0 {
		t.Errorf("Resolve(nil) = %v, %v; want empty non-nil slice", records, err)
	}
}

func TestResolver_ContextCanceled(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{delay: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewResolver(lookup, 2).Resolve(ctx, []string{"tt1", "tt2", "tt3", "tt4"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Resolve() error = %v, want DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Resolve() took %v after cancellation", elapsed)
	}
}

func TestResolver_RecordsLookupOutcomes(t *testing.T) {
	lookup := &fakeLookup{
		results: map[string]models.LookupResult{"tt1": found("tt1", "One")},
		errs:    map[string]error{"tt2": errors.New("fail")},
	}

	before := map[string]float64{}
	for _, o := range []string{metrics.OutcomeFound, metrics.OutcomeNotFound, metrics.OutcomeError} {
		before[o] = testutil.ToFloat64(metrics.MovieLookups.WithLabelValues(o))
	}

	if _, err := NewResolver(lookup, 1).Resolve(context.Background(), []string{"tt1", "tt2", "tt3"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	for _, o := range []string{metrics.OutcomeFound, metrics.OutcomeNotFound, metrics.OutcomeError} {
		if got := testutil.ToFloat64(metrics.MovieLookups.WithLabelValues(o)) - before[o]; got < 1 {
			t.Errorf("movie_lookups_total{outcome=%q} delta = %v, want >= 1", o, got)
		}
	}
}

// ============================================================================
// CachedLookup
// ============================================================================

func TestCachedLookup_CachesFoundAndNotFound(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{results: map[string]models.LookupResult{"tt1": found("tt1", "One")}}
	store := cache.NewLRU[models.LookupResult](100, time.Hour)
	cached := NewCachedLookup(lookup, store, "test-memory")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := cached.Lookup(ctx, "tt1")
		if err != nil || !got.OK() || got.Record.Title != "One" {
			t.Fatalf("Lookup(tt1) = %+v, %v", got, err)
		}
		got, err = cached.Lookup(ctx, "tt404")
		if err != nil || got.OK() {
			t.Fatalf("Lookup(tt404) = %+v, %v", got, err)
		}
	}

	if calls := lookup.calls.Load(); calls != 2 {
		t.Errorf("upstream calls = %d, want 2", calls)
	}
	if hits := testutil.ToFloat64(metrics.CacheHits.WithLabelValues("test-memory")); hits != 4 {
		t.Errorf("cache hits = %v, want 4", hits)
	}
}

func TestCachedLookup_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{errs: map[string]error{"tt1": errors.New("timeout")}}
	cached := NewCachedLookup(lookup, cache.NewLRU[models.LookupResult](10, time.Hour), "test-errors")

	for i := 0; i < 2; i++ {
		if _, err := cached.Lookup(context.Background(), "tt1"); err == nil {
			t.Fatal("Lookup() error = nil, want error")
		}
	}
	if calls := lookup.calls.Load(); calls != 2 {
		t.Errorf("upstream calls = %d, want 2", calls)
	}
}

// brokenStore fails every operation.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (models.LookupResult, bool, error) {
	return models.LookupResult{}, false, errors.New("disk gone")
}
func (brokenStore) Set(context.Context, string, models.LookupResult) error {
	return errors.New("disk gone")
}
func (brokenStore) Close() error { return nil }

func TestCachedLookup_StoreFailureFallsThrough(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{results: map[string]models.LookupResult{"tt1": found("tt1", "One")}}
	cached := NewCachedLookup(lookup, brokenStore{}, "test-broken")

	got, err := cached.Lookup(context.Background(), "tt1")
	if err != nil || !got.OK() {
		t.Errorf("Lookup() = %+v, %v; want upstream result", got, err)
	}
}

func TestCachedLookup_BadgerStore(t *testing.T) {
	t.Parallel()

	store, err := cache.NewBadgerStore[models.LookupResult]("", time.Hour)
	if err != nil {
		t.Fatalf("NewBadgerStore() error = %v", err)
	}
	defer store.Close()

	lookup := &fakeLookup{results: map[string]models.LookupResult{"tt1": found("tt1", "One")}}
	cached := NewCachedLookup(lookup, store, "test-badger")

	first, err := cached.Lookup(context.Background(), "tt1")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	second, err := cached.Lookup(context.Background(), "tt1")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if first != second || lookup.calls.Load() != 1 {
		t.Errorf("second lookup = %+v after %d calls, want cached %+v", second, lookup.calls.Load(), first)
	}
}

// ============================================================================
// BreakerLookup
// ============================================================================

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  4,
		FailureRatio: 0.5,
	}
}

func TestBreakerLookup_OpensOnFailures(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{errs: map[string]error{"bad": errors.New("503")}}
	b := NewBreakerLookup("test-opens", lookup, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _ = b.Lookup(ctx, "bad")
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	_, err := b.Lookup(ctx, "good")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Lookup() while open error = %v, want ErrOpenState", err)
	}
	if calls := lookup.calls.Load(); calls != 4 {
		t.Errorf("upstream calls = %d, want 4 (open circuit must not call through)", calls)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-opens")); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-opens", "rejected")); got != 1 {
		t.Errorf("rejected requests = %v, want 1", got)
	}
}

func TestBreakerLookup_NotFoundIsSuccess(t *testing.T) {
	t.Parallel()

	b := NewBreakerLookup("test-notfound", &fakeLookup{}, testBreakerConfig())
	for i := 0; i < 10; i++ {
		res, err := b.Lookup(context.Background(), "tt-missing")
		if err != nil || res.OK() {
			t.Fatalf("Lookup() = %+v, %v", res, err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerLookup_IgnoresCancellation(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{delay: time.Second}
	b := NewBreakerLookup("test-cancel", lookup, testBreakerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 6; i++ {
		if _, err := b.Lookup(ctx, "tt1"); !errors.Is(err, context.Canceled) {
			t.Fatalf("Lookup() error = %v, want context.Canceled", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed after cancellations", b.State())
	}
}

func TestStateHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		str   string
		num   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
		{gobreaker.State(99), "unknown", -1},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %q, want %q", tt.state, got, tt.str)
		}
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v, want %v", tt.state, got, tt.num)
		}
	}
}

func TestNewMovieLookup_Chain(t *testing.T) {
	t.Parallel()

	cfg := testUpstreamConfig("http://omdb.example.com")

	cfg.Breaker = testBreakerConfig()
	lookup, err := NewMovieLookup(cfg, cache.NewLRU[models.LookupResult](10, time.Hour), "memory")
	if err != nil {
		t.Fatalf("NewMovieLookup() error = %v", err)
	}
	cached, ok := lookup.(*CachedLookup)
	if !ok {
		t.Fatalf("outer lookup = %T, want *CachedLookup", lookup)
	}
	if _, ok := cached.next.(*BreakerLookup); !ok {
		t.Errorf("middle lookup = %T, want *BreakerLookup", cached.next)
	}

	cfg.Breaker.Enabled = false
	lookup, err = NewMovieLookup(cfg, nil, "")
	if err != nil {
		t.Fatalf("NewMovieLookup() error = %v", err)
	}
	if _, ok := lookup.(*OMDbClient); !ok {
		t.Errorf("bare lookup = %T, want *OMDbClient", lookup)
	}
}

// ============================================================================
// OMDb rate limit vs request deadline
// ============================================================================

func TestOMDbClient_RateWaitPastDeadline(t *testing.T) {
	t.Parallel()

	server := newOMDbServer(t, map[string]string{
		"tt1": `{"Response":"True","Title":"One","Plot":"One plot"}`,
	})
	t.Cleanup(server.Close)

	cfg := testUpstreamConfig(server.URL)
	cfg.OMDbRateLimit = 0.5
	client, err := NewOMDbClient(cfg)
	if err != nil {
		t.Fatalf("NewOMDbClient() error = %v", err)
	}

	if _, err := client.Lookup(context.Background(), "tt1"); err != nil {
		t.Fatalf("first Lookup() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = client.Lookup(ctx, "tt1")
	if !errors.Is(err, ErrRateBudgetExceeded) {
		t.Errorf("Lookup() error = %v, want ErrRateBudgetExceeded", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Lookup() error = %v, want it to match context.DeadlineExceeded", err)
	}

	canceled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = client.Lookup(canceled, "tt1")
	if !errors.Is(err, context.Canceled) || errors.Is(err, ErrRateBudgetExceeded) {
		t.Errorf("Lookup() on canceled ctx error = %v, want context.Canceled only", err)
	}
}

func TestResolver_RateBudgetKeepsBreakerClosed(t *testing.T) {
	t.Parallel()

	omdb := newOMDbServer(t, nil)
	t.Cleanup(omdb.Close)

	cfg := testUpstreamConfig(omdb.URL)
	cfg.OMDbRateLimit = 5
	cfg.Breaker = testBreakerConfig()
	lookup, err := NewMovieLookup(cfg, nil, "")
	if err != nil {
		t.Fatalf("NewMovieLookup() error = %v", err)
	}
	breaker, ok := lookup.(*BreakerLookup)
	if !ok {
		t.Fatalf("lookup = %T, want *BreakerLookup", lookup)
	}

	ids := make([]string, 30)
	for i := range ids {
		ids[i] = fmt.Sprintf("tt%d", i)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	start := time.Now()
	records, err := NewResolver(lookup, 4).Resolve(ctx, ids)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Resolve() = %d records, error %v; want a deadline error instead of a partial catalog", len(records), err)
	}
	if records != nil {
		t.Errorf("Resolve() records = %d, want nil on error", len(records))
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Resolve() took %v, want it to stop near the deadline", elapsed)
	}
	if breaker.State() != "closed" {
		t.Fatalf("breaker State() = %q after rate limit waits, want closed", breaker.State())
	}

	res, err := lookup.Lookup(context.Background(), "tt-next")
	if err != nil {
		t.Fatalf("Lookup() after throttled resolve error = %v, want the request to reach OMDb", err)
	}
	if res.OK() {
		t.Errorf("Lookup() = %+v, want NotFound from the fake OMDb", res)
	}
}
