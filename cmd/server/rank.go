// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/moviepedia-recommender/internal/models"
	"github.com/tomtom215/moviepedia-recommender/internal/recommend"
)

func newRankCommand() *cobra.Command {
	var input string
	var details bool

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank a catalog against liked movies offline",
		Long: `Reads {"liked":[...],"catalog":[...]} of movie records with id, title,
plot and poster, and prints the recommendation response the API would return
for the same data. No upstream service is contacted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readRankRequest(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}

			engine := recommend.NewEngine(zerolog.Nop())
			result, err := engine.Rank(cmd.Context(), req.Liked, req.Catalog)
			if err != nil {
				return fmt.Errorf("rank: %w", err)
			}

			if details {
				return writeJSON(cmd, result)
			}
			return writeJSON(cmd, models.NewRecommendationResponse(result.Recommendations))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Ranking input file, - for stdin")
	cmd.Flags().BoolVar(&details, "details", false, "Print per-liked scores and corpus statistics")
	return cmd
}

func readRankRequest(stdin io.Reader, path string) (*models.RankRequest, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var req models.RankRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return &req, nil
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
