// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

// Package recommend implements the plot-similarity recommendation engine.
//
// # Pipeline
//
// A request flows through four pure stages:
//
//   - Corpus: liked plots followed by catalog plots, with a title-keyed catalog index
//   - TF-IDF: one L2-normalized vector per document over a shared vocabulary
//   - Similarity: cosine score for every (liked, catalog) pair, top 5 per liked movie
//   - Dedupe: per-liked lists merged, unique by IMDb id, first occurrence wins
//
// # Design Principles
//
//   - Deterministic: identical inputs produce identical rankings (stable sort tie-break)
//   - Request-scoped: vectors and matrices are built and discarded per call
//   - Single-threaded: the engine holds no shared mutable state
//
// Upstream data gathering lives behind the LikedSource, CatalogSource and
// DetailResolver interfaces so that this package has no dependency on the
// HTTP clients.
//
// # Usage
//
//	engine := recommend.NewEngine(logger)
//	result, err := engine.Rank(ctx, liked, catalog)
//	if err != nil {
//	    return err
//	}
//	for _, rec := range result.Recommendations {
//	    fmt.Println(rec.Title, rec.IMDbID)
//	}
package recommend
