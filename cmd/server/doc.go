// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

/*
Command moviepedia-recommender serves plot-similarity movie recommendations.

For a user it fetches the liked movie ids from the movie backend, resolves
their plots through OMDb, does the same for the backend's home catalog, and
ranks catalog movies by TF-IDF cosine similarity of the plots.

# Commands

	moviepedia-recommender [serve]   run the HTTP API (default)
	moviepedia-recommender rank -i request.json [--details]
	moviepedia-recommender version

The persistent --config flag points at a YAML configuration file and takes
precedence over CONFIG_PATH.

# Application Architecture

	RootSupervisor ("moviepedia-recommender")
	├── DataSupervisor ("data-layer")
	│   ├── CacheMaintenanceService (CACHE_ENABLED=true)
	│   └── CatalogWarmerService (WARM_CATALOG=true)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Component initialization order:

 1. Configuration: koanf v2 with defaults, legacy config.json, YAML and env
 2. Logging: zerolog from the logging section
 3. Detail cache: memory LRU or BadgerDB (CACHE_TYPE)
 4. Lookup chain: cache -> circuit breaker -> rate limited OMDb client
 5. Engine and service, chi router, supervisor tree

# Configuration

The legacy deployment variables still work:

	export API_URL=http://movie-backend:8080
	export API_KEY=your-omdb-key
	./moviepedia-recommender

A config.json holding {"API_URL": ..., "API_KEY": ...} in the working
directory is read as well. Every setting can also come from YAML; see the
config package for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
accepting connections and waits up to server.shutdown_timeout for in-flight
requests, then the detail cache is closed.
*/
package main
