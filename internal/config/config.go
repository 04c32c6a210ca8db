// Package config loads the portal configuration with priority:
// defaults -> config files -> SIGNAL_* environment -> flags.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	API      APIConfig      `toml:"api"`
	Analysis AnalysisConfig `toml:"analysis"`
	Cache    CacheConfig    `toml:"cache"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// APIConfig points at the analytics backend.
type APIConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// AnalysisConfig carries the form defaults and presentation tuning.
type AnalysisConfig struct {
	LongMAPeriod  int     `toml:"long_ma_period"`
	ShortMAPeriod int     `toml:"short_ma_period"`
	StartDate     string  `toml:"start_date"`
	InitialSum    float64 `toml:"initial_sum"`
	GrowthTarget  float64 `toml:"growth_target"`
	RowsPerPage   int     `toml:"rows_per_page"`
	DebounceMs    int     `toml:"debounce_ms"`
}

// CacheConfig tunes the ticker suggestion cache.
type CacheConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
	MaxEntries int `toml:"max_entries"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level   string   `toml:"level"`
	Outputs []string `toml:"outputs"`
	File    string   `toml:"file"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies SIGNAL_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("SIGNAL_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SIGNAL_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if url := os.Getenv("SIGNAL_API_URL"); url != "" {
		config.API.URL = url
	}
	if timeout := os.Getenv("SIGNAL_API_TIMEOUT_SECONDS"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			config.API.TimeoutSeconds = t
		}
	}
	if level := os.Getenv("SIGNAL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if file := os.Getenv("SIGNAL_LOG_FILE"); file != "" {
		config.Logging.File = file
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
