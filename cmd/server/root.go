// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/moviepedia-recommender/internal/config"
	"github.com/tomtom215/moviepedia-recommender/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "moviepedia-recommender",
		Short:         "Plot similarity movie recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if configFlag == "" {
				return nil
			}
			if _, err := os.Stat(configFlag); err != nil {
				return fmt.Errorf("config file: %w", err)
			}
			return os.Setenv(config.ConfigPathEnvVar, configFlag)
		},
		// Running the binary without a subcommand serves the API.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (YAML)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newRankCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig loads configuration and initializes the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "moviepedia-recommender %s\n", version)
			return err
		},
	}
}
