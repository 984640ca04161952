package config

// DataConfig locates the matches and deliveries datasets for each provider.
type DataConfig struct {
	MatchesPath    string
	DeliveriesPath string
	MatchesURL     string
	DeliveriesURL  string
	SQLitePath     string
	DatabaseURL    string
	CachePath      string
	CacheTTL       Duration
	RetryAttempts  int
	RetryInitial   Duration
}

func loadData() DataConfig {
	return DataConfig{
		MatchesPath:    envOrDefault(envMatchesPath, "data/matches.csv"),
		DeliveriesPath: envOrDefault(envDeliveriesPath, "data/deliveries.csv"),
		MatchesURL:     envOrDefault(envMatchesURL, ""),
		DeliveriesURL:  envOrDefault(envDeliveriesURL, ""),
		SQLitePath:     envOrDefault(envSQLitePath, "data/ipl.db"),
		DatabaseURL:    envOrDefault(envDatabaseURL, ""),
		CachePath:      envOrDefault(envCachePath, defaultCachePath),
		CacheTTL:       durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		RetryAttempts:  intEnvOrDefault(envRetryAttempts, defaultRetryAttempts),
		RetryInitial:   durationEnvOrDefault(envRetryInitial, defaultRetryInitial),
	}
}
