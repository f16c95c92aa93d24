// Package config loads settings for the dossier binaries from a YAML file
// and DOSSIER_* environment variables. Environment values win.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/codeGROOVE-dev/dossier/pkg/profile"
	"github.com/codeGROOVE-dev/dossier/pkg/score"
)

// Config is the full set of settings.
type Config struct {
	ListenAddr  string        `yaml:"listen_addr"`
	UpstreamURL string        `yaml:"upstream_url"`
	LogLevel    string        `yaml:"log_level"`
	CacheDir    string        `yaml:"cache_dir"`
	QueryTTL    time.Duration `yaml:"query_ttl"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	NoCache     bool          `yaml:"no_cache"`
	MaxEntries  int           `yaml:"max_entries"`
	Enrich      Enrich        `yaml:"enrich"`
	Scoring     score.Weights `yaml:"scoring"`
}

// Enrich configures the avatar enrichment pass.
type Enrich struct {
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		QueryTTL:   10 * time.Minute,
		CacheTTL:   24 * time.Hour,
		MaxEntries: profile.DefaultMaxEntries,
		Enrich: Enrich{
			Timeout:     15 * time.Second,
			Concurrency: 4,
		},
		Scoring: score.DefaultWeights(),
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dossier", "config.yaml")
}

// Load reads path over the defaults and then applies the environment.
// An empty path means DefaultPath, which may be absent; an explicit path
// must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.MaxEntries < 1 {
		errs = append(errs, fmt.Errorf("max_entries must be at least 1, got %d", c.MaxEntries))
	}
	if c.Enrich.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("enrich.concurrency must be at least 1, got %d", c.Enrich.Concurrency))
	}
	if c.QueryTTL < 0 || c.CacheTTL < 0 || c.Enrich.Timeout < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, defaulting to info.
func (c Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

func applyEnv(c *Config) error {
	var errs []error
	str := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(dst *time.Duration, key string) {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	num := func(dst *int, key string) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(dst *bool, key string) {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	str(&c.ListenAddr, "DOSSIER_LISTEN_ADDR")
	str(&c.UpstreamURL, "DOSSIER_UPSTREAM_URL")
	str(&c.LogLevel, "DOSSIER_LOG_LEVEL")
	str(&c.CacheDir, "DOSSIER_CACHE_DIR")
	dur(&c.QueryTTL, "DOSSIER_QUERY_TTL")
	dur(&c.CacheTTL, "DOSSIER_CACHE_TTL")
	flag(&c.NoCache, "DOSSIER_NO_CACHE")
	num(&c.MaxEntries, "DOSSIER_MAX_ENTRIES")
	dur(&c.Enrich.Timeout, "DOSSIER_ENRICH_TIMEOUT")
	num(&c.Enrich.Concurrency, "DOSSIER_ENRICH_CONCURRENCY")
	return errors.Join(errs...)
}
