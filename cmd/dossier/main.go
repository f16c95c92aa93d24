// Command dossier reconciles an aggregated lookup payload into one
// canonical profile and prints it as JSON.
//
// Usage:
//
//	dossier result.json
//	curl -s "$UPSTREAM/search?type=phone&q=4125550100" | dossier -enrich -
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/codeGROOVE-dev/dossier/pkg/config"
	"github.com/codeGROOVE-dev/dossier/pkg/enrich"
	"github.com/codeGROOVE-dev/dossier/pkg/httpcache"
	"github.com/codeGROOVE-dev/dossier/pkg/merge"
	"github.com/codeGROOVE-dev/dossier/pkg/reconcile"
)

func main() {
	cfgPath := flag.String("config", "", "config file (default: user config dir/dossier/config.yaml)")
	debug := flag.Bool("debug", false, "enable debug logging")
	doEnrich := flag.Bool("enrich", false, "fetch profile pages to fill missing account photos")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching for -enrich")
	cacheTTL := flag.Duration("cache-ttl", 0, "HTTP cache time-to-live (default from config)")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Usage: dossier [options] [file|-]")
		fmt.Fprintln(os.Stderr, "\nReads standard input when no file is given.")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	level := cfg.Level()
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if *noCache {
		cfg.NoCache = true
	}
	if *cacheTTL > 0 {
		cfg.CacheTTL = *cacheTTL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, flag.Arg(0), *doEnrich, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}
}

func run(ctx context.Context, cfg config.Config, input string, doEnrich bool, logger *slog.Logger) error {
	data, err := read(input)
	if err != nil {
		return err
	}
	p, err := reconcile.Reconcile(data,
		reconcile.WithLogger(logger),
		reconcile.WithWeights(cfg.Scoring),
		reconcile.WithMaxEntries(cfg.MaxEntries))
	if err != nil {
		return err
	}

	if doEnrich {
		cache := openCache(cfg, logger)
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("failed to close cache", "error", err)
			}
		}()
		client := httpcache.New(httpcache.WithCache(cache), httpcache.WithLogger(logger))
		e := enrich.New(client,
			enrich.WithLogger(logger),
			enrich.WithConcurrency(cfg.Enrich.Concurrency),
			enrich.WithTimeout(cfg.Enrich.Timeout))
		frag, err := e.Avatars(ctx, p)
		if err != nil {
			return fmt.Errorf("enrich: %w", err)
		}
		frag.MaxEntries = cfg.MaxEntries
		p = merge.Apply(p, frag)
		st := client.Stats()
		logger.Debug("enrichment fetches", "hits", st.Hits, "misses", st.Misses)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func read(input string) ([]byte, error) {
	if input == "" || input == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return b, nil
}

func openCache(cfg config.Config, logger *slog.Logger) *httpcache.Cache {
	if cfg.NoCache {
		return httpcache.Null()
	}
	start := time.Now()
	c, err := httpcache.Open(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		return httpcache.Null()
	}
	logger.Debug("HTTP cache initialized", "ttl", cfg.CacheTTL.String(), "took", time.Since(start))
	return c
}
