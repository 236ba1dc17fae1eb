package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:5000" {
			t.Errorf("expected base URL http://localhost:5000, got %s", config.API.BaseURL)
		}

		if config.API.MaxAttempts != 3 {
			t.Errorf("expected max_attempts 3, got %d", config.API.MaxAttempts)
		}

		if config.API.Timeout() != 10*time.Second {
			t.Errorf("expected 10s timeout, got %v", config.API.Timeout())
		}

		if config.API.Backoff() != time.Second {
			t.Errorf("expected 1s base backoff, got %v", config.API.Backoff())
		}

		if config.Database.Path != "dubplate.db" {
			t.Errorf("expected database path dubplate.db, got %s", config.Database.Path)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.API.BaseURL != defaultConfig.API.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://charts.example.com/api"
timeout_ms = 2500
max_attempts = 5
backoff_ms = 50
max_backoff_ms = 400
cache_ttl_secs = 0

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[platforms.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[platforms.youtube]
api_key = "test_api_key"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://charts.example.com/api" {
			t.Errorf("expected base URL https://charts.example.com/api, got %s", config.API.BaseURL)
		}

		if config.API.Timeout() != 2500*time.Millisecond {
			t.Errorf("expected 2.5s timeout, got %v", config.API.Timeout())
		}

		if config.API.CacheTTL() != 0 {
			t.Errorf("expected zero cache TTL, got %v", config.API.CacheTTL())
		}

		if config.Platforms.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Platforms.Spotify.ClientID)
		}
	})
}
