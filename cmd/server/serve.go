// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/moviepedia-recommender/internal/api"
	"github.com/tomtom215/moviepedia-recommender/internal/cache"
	"github.com/tomtom215/moviepedia-recommender/internal/config"
	"github.com/tomtom215/moviepedia-recommender/internal/logging"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
	"github.com/tomtom215/moviepedia-recommender/internal/recommend"
	"github.com/tomtom215/moviepedia-recommender/internal/supervisor"
	"github.com/tomtom215/moviepedia-recommender/internal/supervisor/services"
	"github.com/tomtom215/moviepedia-recommender/internal/upstream"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the recommendation API (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

// appStack holds the wired components shared by the HTTP server and the
// catalog warmer.
type appStack struct {
	handler  http.Handler
	catalog  *upstream.CatalogClient
	resolver *upstream.Resolver
	store    cache.Store[models.LookupResult]
}

// Close releases the detail cache.
func (s *appStack) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// buildStack wires config into the upstream clients, the engine and the router.
func buildStack(cfg *config.Config) (*appStack, error) {
	var store cache.Store[models.LookupResult]
	if cfg.Cache.Enabled {
		s, err := cache.NewStore[models.LookupResult](cache.Config{
			Type:     cache.Type(cfg.Cache.Type),
			TTL:      cfg.Cache.TTL,
			Capacity: cfg.Cache.Capacity,
			Path:     cfg.Cache.Path,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s detail cache: %w", cfg.Cache.Type, err)
		}
		store = s
	}

	lookup, err := upstream.NewMovieLookup(cfg.Upstream, store, cfg.Cache.Type)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("build movie lookup: %w", err)
	}

	catalog := upstream.NewCatalogClient(cfg.Upstream)
	resolver := upstream.NewResolver(lookup, cfg.Upstream.Concurrency)
	service := recommend.NewService(
		recommend.NewEngine(logging.WithComponent("recommend")),
		upstream.NewLikedClient(cfg.Upstream),
		catalog,
		resolver,
		logging.WithComponent("recommend"),
	)

	handler := api.NewHandler(service, cfg.Server.RequestTimeout)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))

	return &appStack{
		handler:  api.NewRouter(handler, mw).SetupChi(),
		catalog:  catalog,
		resolver: resolver,
		store:    store,
	}, nil
}

func runServe(parent context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("api_url", logging.RedactURL(cfg.Upstream.APIURL)).
		Bool("cache", cfg.Cache.Enabled).
		Str("cache_type", cfg.Cache.Type).
		Bool("circuit_breaker", cfg.Upstream.Breaker.Enabled).
		Msg("Starting recommender with supervisor tree")

	stack, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := stack.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing detail cache")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           stack.handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	if m, ok := stack.store.(cache.Maintainer); ok {
		tree.AddDataService(services.NewCacheMaintenanceService(m, cfg.Cache.Type, cfg.Cache.MaintenanceInterval, logging.WithComponent("cache")))
	}

	if cfg.Recommend.WarmCatalog {
		tree.AddDataService(services.NewCatalogWarmerService(stack.catalog, stack.resolver, services.CatalogWarmerConfig{
			WarmOnStartup: true,
			Interval:      cfg.Recommend.WarmInterval,
		}, logging.WithComponent("catalog-warmer")))
		logging.Info().Dur("interval", cfg.Recommend.WarmInterval).Msg("Catalog warmer added to supervisor tree")
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	// suture sends exactly one value and never closes the channel.
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
		return serveErr
	}

	logging.Info().Msg("Recommender stopped gracefully")
	return nil
}
