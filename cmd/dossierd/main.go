// Command dossierd serves profile reconciliation over HTTP.
//
// Endpoints:
//
//	POST /v1/reconcile          reconcile a posted aggregator payload
//	GET  /v1/lookup?type=&q=    query the upstream aggregator and reconcile
//	POST /v1/enrich             fill account photos of a posted profile
//	GET  /healthz
//	GET  /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codeGROOVE-dev/dossier/pkg/config"
	"github.com/codeGROOVE-dev/dossier/pkg/dispatch"
	"github.com/codeGROOVE-dev/dossier/pkg/enrich"
	"github.com/codeGROOVE-dev/dossier/pkg/httpcache"
	"github.com/codeGROOVE-dev/dossier/pkg/reconcile"
	"github.com/codeGROOVE-dev/dossier/pkg/server"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfgPath := flag.String("config", "", "config file (default: user config dir/dossier/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	if err := serve(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func serve(cfg config.Config, logger *slog.Logger) error {
	recOpts := []reconcile.Option{
		reconcile.WithWeights(cfg.Scoring),
		reconcile.WithMaxEntries(cfg.MaxEntries),
	}

	cache := httpcache.Null()
	if !cfg.NoCache {
		c, err := httpcache.Open(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			cache = c
		}
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warn("failed to close cache", "error", err)
		}
	}()
	pages := httpcache.New(httpcache.WithCache(cache), httpcache.WithLogger(logger))

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithReconcileOptions(recOpts...),
		server.WithMaxEntries(cfg.MaxEntries),
		server.WithEnricher(enrich.New(pages,
			enrich.WithLogger(logger),
			enrich.WithConcurrency(cfg.Enrich.Concurrency),
			enrich.WithTimeout(cfg.Enrich.Timeout))),
	}
	if cfg.UpstreamURL != "" {
		// Upstream answers are cached by the dispatcher, not on disk.
		client := httpcache.New(httpcache.WithLogger(logger), httpcache.WithMinDelay(0), httpcache.WithTimeout(30*time.Second))
		up, err := dispatch.NewHTTPUpstream(cfg.UpstreamURL, client)
		if err != nil {
			return err
		}
		opts = append(opts, server.WithDispatcher(dispatch.New(up,
			dispatch.WithTTL(cfg.QueryTTL),
			dispatch.WithLogger(logger),
			dispatch.WithReconcileOptions(recOpts...))))
	} else {
		logger.Warn("no upstream_url configured, /v1/lookup is disabled")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(opts...).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		return err
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
