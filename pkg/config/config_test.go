package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/dossier/pkg/score"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := write(t, `
listen_addr: 127.0.0.1:9000
upstream_url: https://aggregator.internal
query_ttl: 90s
max_entries: 3
enrich:
  concurrency: 8
scoring:
  phone:
    reserved_area: -500
  email:
    providers:
      fastmail.com: 28
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" || cfg.UpstreamURL != "https://aggregator.internal" {
		t.Errorf("addresses = %q, %q", cfg.ListenAddr, cfg.UpstreamURL)
	}
	if cfg.QueryTTL != 90*time.Second {
		t.Errorf("QueryTTL = %v, want 90s", cfg.QueryTTL)
	}
	if cfg.MaxEntries != 3 || cfg.Enrich.Concurrency != 8 {
		t.Errorf("MaxEntries = %d, Concurrency = %d", cfg.MaxEntries, cfg.Enrich.Concurrency)
	}
	if cfg.Enrich.Timeout != 15*time.Second {
		t.Errorf("Enrich.Timeout = %v, want default 15s", cfg.Enrich.Timeout)
	}

	want := score.DefaultWeights()
	want.Phone.ReservedArea = -500
	want.Email.Providers["fastmail.com"] = 28
	if diff := cmp.Diff(want, cfg.Scoring); diff != "" {
		t.Errorf("Scoring mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := write(t, "listen_addr: :9000\nmax_entries: 3\n")
	t.Setenv("DOSSIER_LISTEN_ADDR", ":7000")
	t.Setenv("DOSSIER_MAX_ENTRIES", "7")
	t.Setenv("DOSSIER_CACHE_TTL", "1h30m")
	t.Setenv("DOSSIER_NO_CACHE", "true")
	t.Setenv("DOSSIER_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":7000" || cfg.MaxEntries != 7 || cfg.CacheTTL != 90*time.Minute || !cfg.NoCache {
		t.Errorf("Load = %+v", cfg)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{name: "bad yaml", body: "listen_addr: [", want: "parsing"},
		{name: "bad duration", body: "", env: map[string]string{"DOSSIER_QUERY_TTL": "soon"}, want: "DOSSIER_QUERY_TTL"},
		{name: "bad number", body: "", env: map[string]string{"DOSSIER_MAX_ENTRIES": "five"}, want: "DOSSIER_MAX_ENTRIES"},
		{name: "zero entries", body: "max_entries: 0", want: "max_entries"},
		{name: "bad level", body: "log_level: loud", want: "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(write(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing explicit path succeeded")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}
