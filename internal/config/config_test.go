package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != defaultProvider {
		t.Fatalf("expected default provider %s, got %s", defaultProvider, cfg.Provider)
	}
	if cfg.Reload.Interval != 0 || !cfg.Reload.WatchFiles {
		t.Fatalf("expected no interval and file watching by default, got %+v", cfg.Reload)
	}
	if cfg.Resolver.Threshold != defaultResolverThresh || cfg.Resolver.Metric != defaultResolverMetric {
		t.Fatalf("unexpected resolver defaults %+v", cfg.Resolver)
	}
	if cfg.Resolver.CaseSensitive {
		t.Fatalf("expected case-insensitive matching by default")
	}
	if cfg.Resolver.SuggestionLimit != defaultSuggestionLimit {
		t.Fatalf("expected suggestion limit %d, got %d", defaultSuggestionLimit, cfg.Resolver.SuggestionLimit)
	}
	if cfg.Query.PowerplayBase != defaultPowerplayBase {
		t.Fatalf("expected literal powerplay base, got %s", cfg.Query.PowerplayBase)
	}
	if cfg.Data.CacheTTL != defaultCacheTTL || cfg.Data.RetryAttempts != defaultRetryAttempts {
		t.Fatalf("unexpected data defaults %+v", cfg.Data)
	}
	if cfg.Metrics.ServiceName != defaultServiceName || !cfg.Metrics.Enabled {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
	if cfg.Log.Level != defaultLogLevel || cfg.Log.Format != defaultLogFormat {
		t.Fatalf("unexpected log defaults %+v", cfg.Log)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envProvider, "remote")
	t.Setenv(envMatchesURL, "http://example.com/matches.csv")
	t.Setenv(envDeliveriesURL, "http://example.com/deliveries.csv")
	t.Setenv(envReloadInterval, "45s")
	t.Setenv(envWatchFiles, "false")
	t.Setenv(envResolverThresh, "0.75")
	t.Setenv(envResolverMetric, "jaro-winkler")
	t.Setenv(envResolverCase, "true")
	t.Setenv(envPowerplayBase, "one")
	t.Setenv(envEditionsFile, "configs/editions.yaml")
	t.Setenv(envDefaultEdition, "classic")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envAdminToken, "secret")

	cfg := Load()

	if cfg.Port != "5000" || cfg.Provider != "remote" {
		t.Fatalf("unexpected port/provider %s/%s", cfg.Port, cfg.Provider)
	}
	if cfg.Data.MatchesURL != "http://example.com/matches.csv" || cfg.Data.DeliveriesURL != "http://example.com/deliveries.csv" {
		t.Fatalf("unexpected urls %+v", cfg.Data)
	}
	if cfg.Reload.Interval != 45*time.Second || cfg.Reload.WatchFiles {
		t.Fatalf("unexpected reload config %+v", cfg.Reload)
	}
	if cfg.Resolver.Threshold != 0.75 || cfg.Resolver.Metric != "jaro-winkler" || !cfg.Resolver.CaseSensitive {
		t.Fatalf("unexpected resolver config %+v", cfg.Resolver)
	}
	if cfg.Query.PowerplayBase != "one" {
		t.Fatalf("expected powerplay base one, got %s", cfg.Query.PowerplayBase)
	}
	if cfg.Views.EditionsFile != "configs/editions.yaml" || cfg.Views.DefaultEdition != "classic" {
		t.Fatalf("unexpected views config %+v", cfg.Views)
	}
	if cfg.Log.Format != "json" {
		t.Fatalf("expected json log format, got %s", cfg.Log.Format)
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("expected admin token, got %q", cfg.AdminToken)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv(envCacheTTL, "not-a-duration")
	t.Setenv(envResolverThresh, "1.5")
	t.Setenv(envSuggestionLimit, "-2")

	cfg := Load()

	if cfg.Data.CacheTTL != defaultCacheTTL {
		t.Fatalf("expected default cache ttl on invalid value, got %s", cfg.Data.CacheTTL)
	}
	if cfg.Resolver.Threshold != defaultResolverThresh {
		t.Fatalf("expected default threshold on out-of-range value, got %v", cfg.Resolver.Threshold)
	}
	if cfg.Resolver.SuggestionLimit != defaultSuggestionLimit {
		t.Fatalf("expected default suggestion limit, got %d", cfg.Resolver.SuggestionLimit)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("IPL_DOTENV_TEST=from-file\nPORT_DOTENV_KEEP=file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PORT_DOTENV_KEEP", "env")
	t.Setenv("IPL_DOTENV_TEST", "")
	os.Unsetenv("IPL_DOTENV_TEST")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("IPL_DOTENV_TEST") })

	if got := os.Getenv("IPL_DOTENV_TEST"); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
	if got := os.Getenv("PORT_DOTENV_KEEP"); got != "env" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}
