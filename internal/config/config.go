package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port       string
	Provider   string
	AdminToken string
	Data       DataConfig
	Reload     ReloadConfig
	Resolver   ResolverConfig
	Query      QueryConfig
	Views      ViewsConfig
	Log        LogConfig
	Metrics    MetricsConfig
}

// ReloadConfig controls when the dataset is reloaded after startup.
type ReloadConfig struct {
	Interval   Duration
	WatchFiles bool
}

// ResolverConfig controls fuzzy name matching.
type ResolverConfig struct {
	Threshold       float64
	Metric          string
	CaseSensitive   bool
	SuggestionLimit int
}

// QueryConfig controls aggregation details.
type QueryConfig struct {
	PowerplayBase string
}

// ViewsConfig points at optional extra editions.
type ViewsConfig struct {
	EditionsFile   string
	DefaultEdition string
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:       envOrDefault(envPort, defaultPort),
		AdminToken: envOrDefault(envAdminToken, ""),
		Provider:   envOrDefault(envProvider, defaultProvider),
		Data:       loadData(),
		Reload: ReloadConfig{
			Interval:   durationEnvOrDefault(envReloadInterval, 0),
			WatchFiles: boolEnvOrDefault(envWatchFiles, defaultWatchFiles),
		},
		Resolver: ResolverConfig{
			Threshold:       floatEnvOrDefault(envResolverThresh, defaultResolverThresh),
			Metric:          envOrDefault(envResolverMetric, defaultResolverMetric),
			CaseSensitive:   boolEnvOrDefault(envResolverCase, false),
			SuggestionLimit: intEnvOrDefault(envSuggestionLimit, defaultSuggestionLimit),
		},
		Query: QueryConfig{
			PowerplayBase: envOrDefault(envPowerplayBase, defaultPowerplayBase),
		},
		Views: ViewsConfig{
			EditionsFile:   envOrDefault(envEditionsFile, ""),
			DefaultEdition: envOrDefault(envDefaultEdition, ""),
		},
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(),
	}
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
