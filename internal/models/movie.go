// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package models

// MovieRecord is the metadata of one movie as returned by the detail service.
type MovieRecord struct {
	// ID is the external catalog key (an IMDb identifier such as "tt0133093").
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Plot is the short plot summary used for text similarity.
	Plot string `json:"plot"`

	// Poster is the poster image URL.
	Poster string `json:"poster"`
}

// HasPlot reports whether the record carries a non-empty plot.
func (m MovieRecord) HasPlot() bool {
	return m.Plot != ""
}

// IsRankable reports whether the record can participate as a catalog candidate.
// Catalog movies need both a title and a plot.
func (m MovieRecord) IsRankable() bool {
	return m.Title != "" && m.Plot != ""
}

// LookupStatus classifies the outcome of a detail lookup.
type LookupStatus int

const (
	// LookupNotFound means the service had no usable data for the id.
	LookupNotFound LookupStatus = iota
	// LookupFound means Record holds usable metadata.
	LookupFound
)

// String returns a human-readable name for the status.
func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// LookupResult is the result of resolving one movie id.
// A NotFound result is a normal outcome, not an error.
type LookupResult struct {
	Record MovieRecord  `json:"record"`
	Status LookupStatus `json:"status"`
}

// Found wraps a record as a successful lookup.
func Found(rec MovieRecord) LookupResult {
	return LookupResult{Record: rec, Status: LookupFound}
}

// NotFound returns the result for an id without usable data.
func NotFound(id string) LookupResult {
	return LookupResult{Record: MovieRecord{ID: id}, Status: LookupNotFound}
}

// OK reports whether the lookup produced a record.
func (r LookupResult) OK() bool {
	return r.Status == LookupFound
}

// CatalogEntry holds the display attributes kept per catalog title.
type CatalogEntry struct {
	ID     string `json:"id"`
	Poster string `json:"poster"`
}

// Recommendation is a single recommended catalog movie.
type Recommendation struct {
	Title  string `json:"title"`
	IMDbID string `json:"imdbID"`
	Poster string `json:"poster"`
}
