package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4351,
			Host: "localhost",
		},
		API: APIConfig{
			URL:            "http://localhost:5000",
			TimeoutSeconds: 30,
		},
		Analysis: AnalysisConfig{
			LongMAPeriod:  50,
			ShortMAPeriod: 20,
			StartDate:     "2010-01-01",
			InitialSum:    1000.0,
			GrowthTarget:  10.0,
			RowsPerPage:   5,
			DebounceMs:    300,
		},
		Cache: CacheConfig{
			TTLSeconds: 300,
			MaxEntries: 256,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console", "file"},
			File:    "logs/signal-portal.log",
		},
	}
}
