// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Package supervisor provides process supervision for the recommender using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("moviepedia-recommender")
	├── DataSupervisor ("data-layer")
	│   ├── CacheMaintenanceService (if cache.enabled)
	│   └── CatalogWarmerService (if recommend.warm_catalog)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A warmer that keeps failing backs off inside the data layer while the API
keeps serving.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, timeout, logger))
	if cfg.Recommend.WarmCatalog {
	    tree.AddDataService(services.NewCatalogWarmerService(catalog, resolver, warmCfg, logger))
	}
	err = tree.Serve(ctx) // blocks until ctx is canceled

Supervisor events (start, failure, backoff) are logged through sutureslog,
which writes to the zerolog global logger via the logging slog bridge.

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Once it exceeds FailureThreshold the supervisor waits FailureBackoff before
the next restart. Services must return promptly when their context is
canceled; ShutdownTimeout bounds how long the tree waits for them and
UnstoppedServiceReport lists the ones that did not stop.
*/
package supervisor
