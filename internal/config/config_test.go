package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 4351 {
		t.Errorf("expected default port 4351, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host localhost, got %s", cfg.Server.Host)
	}
	if cfg.API.URL != "http://localhost:5000" {
		t.Errorf("expected default API URL http://localhost:5000, got %s", cfg.API.URL)
	}
	if cfg.Analysis.LongMAPeriod != 50 {
		t.Errorf("expected default long MA period 50, got %d", cfg.Analysis.LongMAPeriod)
	}
	if cfg.Analysis.ShortMAPeriod != 20 {
		t.Errorf("expected default short MA period 20, got %d", cfg.Analysis.ShortMAPeriod)
	}
	if cfg.Analysis.StartDate != "2010-01-01" {
		t.Errorf("expected default start date 2010-01-01, got %s", cfg.Analysis.StartDate)
	}
	if cfg.Analysis.InitialSum != 1000.0 {
		t.Errorf("expected default initial sum 1000, got %v", cfg.Analysis.InitialSum)
	}
	if cfg.Analysis.GrowthTarget != 10.0 {
		t.Errorf("expected default growth target 10, got %v", cfg.Analysis.GrowthTarget)
	}
	if cfg.Analysis.RowsPerPage != 5 {
		t.Errorf("expected default rows per page 5, got %d", cfg.Analysis.RowsPerPage)
	}
	if cfg.Analysis.DebounceMs != 300 {
		t.Errorf("expected default debounce 300ms, got %d", cfg.Analysis.DebounceMs)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles with no files should not error: %v", err)
	}
	if cfg.Server.Port != 4351 {
		t.Errorf("expected default port 4351, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "test.toml")

	content := `
[server]
port = 9090
host = "0.0.0.0"

[api]
url = "http://analytics:5000"
timeout_seconds = 10

[analysis]
long_ma_period = 40
rows_per_page = 10

[logging]
level = "debug"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host 0.0.0.0, got %s", cfg.Server.Host)
	}
	if cfg.API.URL != "http://analytics:5000" {
		t.Errorf("expected API URL http://analytics:5000, got %s", cfg.API.URL)
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Errorf("expected API timeout 10, got %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Analysis.LongMAPeriod != 40 {
		t.Errorf("expected long MA period 40, got %d", cfg.Analysis.LongMAPeriod)
	}
	if cfg.Analysis.RowsPerPage != 10 {
		t.Errorf("expected rows per page 10, got %d", cfg.Analysis.RowsPerPage)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFiles_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "partial.toml")

	// Only override port; everything else should stay default
	content := `
[server]
port = 3000
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Server.Port)
	}
	// Host should remain the default
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host localhost, got %s", cfg.Server.Host)
	}
	// Analysis defaults untouched
	if cfg.Analysis.StartDate != "2010-01-01" {
		t.Errorf("expected default start date, got %s", cfg.Analysis.StartDate)
	}
}

func TestLoadFromFiles_MultipleFiles(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	baseContent := `
[server]
port = 3000
host = "base-host"
`
	if err := os.WriteFile(base, []byte(baseContent), 0644); err != nil {
		t.Fatal(err)
	}

	override := filepath.Join(dir, "override.toml")
	overrideContent := `
[server]
port = 4000
`
	if err := os.WriteFile(override, []byte(overrideContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(base, override)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	// Port should be overridden by the second file
	if cfg.Server.Port != 4000 {
		t.Errorf("expected port 4000 from override, got %d", cfg.Server.Port)
	}
	// Host should come from the base file
	if cfg.Server.Host != "base-host" {
		t.Errorf("expected host base-host from base, got %s", cfg.Server.Host)
	}
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/config.toml")
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFromFiles_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(tomlPath, []byte("[server\nport ="), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromFiles(tomlPath)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "env.toml")
	content := `
[server]
port = 3000

[logging]
level = "warn"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SIGNAL_SERVER_PORT", "8088")
	t.Setenv("SIGNAL_SERVER_HOST", "env-host")
	t.Setenv("SIGNAL_API_URL", "http://env-api:5000")
	t.Setenv("SIGNAL_LOG_LEVEL", "debug")

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	// Env overrides the file
	if cfg.Server.Port != 8088 {
		t.Errorf("expected env port 8088, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "env-host" {
		t.Errorf("expected env host, got %s", cfg.Server.Host)
	}
	if cfg.API.URL != "http://env-api:5000" {
		t.Errorf("expected env API URL, got %s", cfg.API.URL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env log level debug, got %s", cfg.Logging.Level)
	}
}

func TestEnvOverrides_InvalidPortIgnored(t *testing.T) {
	t.Setenv("SIGNAL_SERVER_PORT", "not-a-port")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 4351 {
		t.Errorf("invalid env port should be ignored, got %d", cfg.Server.Port)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 9999, "flag-host")
	if cfg.Server.Port != 9999 {
		t.Errorf("expected flag port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "flag-host" {
		t.Errorf("expected flag host, got %s", cfg.Server.Host)
	}

	// Zero values leave the config untouched
	ApplyFlagOverrides(cfg, 0, "")
	if cfg.Server.Port != 9999 || cfg.Server.Host != "flag-host" {
		t.Error("zero flag values must not override")
	}
}
