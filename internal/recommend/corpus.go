// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package recommend

import (
	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// Corpus is the ordered document set of one ranking request.
// Row i < Split() belongs to LikedTitles[i]; row Split()+j belongs to CatalogTitles[j].
type Corpus struct {
	LikedPlots    []string
	LikedTitles   []string
	CatalogPlots  []string
	CatalogTitles []string
	Index         CatalogIndex
}

// BuildCorpus filters liked and catalog records and lays out their plots.
// Liked movies need a plot; catalog movies need a title and a plot.
//
//nolint:gocritic // rangeValCopy: MovieRecord is small
func BuildCorpus(liked, catalog []models.MovieRecord) *Corpus {
	c := &Corpus{
		LikedPlots:    make([]string, 0, len(liked)),
		LikedTitles:   make([]string, 0, len(liked)),
		CatalogPlots:  make([]string, 0, len(catalog)),
		CatalogTitles: make([]string, 0, len(catalog)),
		Index:         make(CatalogIndex, len(catalog)),
	}

	for _, m := range liked {
		if !m.HasPlot() {
			continue
		}
		c.LikedPlots = append(c.LikedPlots, m.Plot)
		c.LikedTitles = append(c.LikedTitles, m.Title)
	}

	for _, m := range catalog {
		if !m.IsRankable() {
			continue
		}
		c.CatalogPlots = append(c.CatalogPlots, m.Plot)
		c.CatalogTitles = append(c.CatalogTitles, m.Title)
		c.Index[m.Title] = models.CatalogEntry{ID: m.ID, Poster: m.Poster}
	}

	return c
}

// Documents returns liked plots followed by catalog plots.
func (c *Corpus) Documents() []string {
	docs := make([]string, 0, len(c.LikedPlots)+len(c.CatalogPlots))
	docs = append(docs, c.LikedPlots...)
	return append(docs, c.CatalogPlots...)
}

// Split is the number of liked rows at the head of Documents.
func (c *Corpus) Split() int {
	return len(c.LikedPlots)
}

// Empty reports whether either side has no usable plot.
func (c *Corpus) Empty() bool {
	return len(c.LikedPlots) == 0 || len(c.CatalogPlots) == 0
}

// recommendationAt resolves catalog row j through the title index.
func (c *Corpus) recommendationAt(j int) models.Recommendation {
	title := c.CatalogTitles[j]
	entry := c.Index[title]
	return models.Recommendation{
		Title:  title,
		IMDbID: entry.ID,
		Poster: entry.Poster,
	}
}
