// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Package services provides suture.Service wrappers for recommender components.

HTTPServerService:
  - Runs *http.Server.ListenAndServe under supervision
  - Graceful Shutdown with a bounded timeout on context cancellation
  - http.ErrServerClosed is treated as a clean stop

CatalogWarmerService:
  - Periodically lists the home catalog and resolves every id
  - Fills the OMDb detail cache so recommendation requests avoid cold lookups
  - Failed passes are logged and retried on the next tick
  - Each pass is recorded in the catalog_warm_* metrics

CacheMaintenanceService:
  - Drops expired LRU entries or runs Badger value log GC on a ticker
  - Publishes cache_entries and cache_evictions_total after each pass

All implement fmt.Stringer so suture log events name the service.
*/
package services
