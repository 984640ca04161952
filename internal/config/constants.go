package config

import "time"

const (
	envPort            = "PORT"
	envProvider        = "PROVIDER"
	envMatchesPath     = "MATCHES_PATH"
	envDeliveriesPath  = "DELIVERIES_PATH"
	envMatchesURL      = "MATCHES_URL"
	envDeliveriesURL   = "DELIVERIES_URL"
	envSQLitePath      = "SQLITE_PATH"
	envDatabaseURL     = "DATABASE_URL"
	envCachePath       = "CACHE_PATH"
	envCacheTTL        = "CACHE_TTL"
	envRetryAttempts   = "PROVIDER_RETRY_ATTEMPTS"
	envRetryInitial    = "PROVIDER_RETRY_INITIAL"
	envReloadInterval  = "RELOAD_INTERVAL"
	envWatchFiles      = "WATCH_FILES"
	envResolverThresh  = "RESOLVER_THRESHOLD"
	envResolverMetric  = "RESOLVER_METRIC"
	envResolverCase    = "RESOLVER_CASE_SENSITIVE"
	envSuggestionLimit = "SUGGESTION_LIMIT"
	envPowerplayBase   = "POWERPLAY_OVER_BASE"
	envEditionsFile    = "EDITIONS_FILE"
	envDefaultEdition  = "DEFAULT_EDITION"
	envAdminToken      = "ADMIN_TOKEN"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort            = "4000"
	defaultProvider        = "fixture"
	defaultCachePath       = "data/cache.db"
	defaultCacheTTL        = 24 * Duration(time.Hour)
	defaultRetryAttempts   = 3
	defaultRetryInitial    = 500 * Duration(time.Millisecond)
	defaultWatchFiles      = true
	defaultResolverThresh  = 0.5
	defaultResolverMetric  = "ratcliff-obershelp"
	defaultSuggestionLimit = 5
	defaultPowerplayBase   = "literal"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "ipl-stats-service"
)
