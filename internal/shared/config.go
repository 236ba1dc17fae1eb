package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API       APIConfig       `toml:"api"`
	Database  DatabaseConfig  `toml:"database"`
	Platforms PlatformsConfig `toml:"platforms"`
}

// APIConfig contains settings for the charts API client.
type APIConfig struct {
	BaseURL      string `toml:"base_url"`
	TimeoutMS    int    `toml:"timeout_ms"`
	MaxAttempts  int    `toml:"max_attempts"`
	BackoffMS    int    `toml:"backoff_ms"`
	MaxBackoffMS int    `toml:"max_backoff_ms"`
	CacheTTLSecs int    `toml:"cache_ttl_secs"`
}

// Timeout returns the per-attempt request timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// Backoff returns the base backoff delay between retry attempts.
func (a APIConfig) Backoff() time.Duration {
	return time.Duration(a.BackoffMS) * time.Millisecond
}

// MaxBackoff returns the backoff delay ceiling.
func (a APIConfig) MaxBackoff() time.Duration {
	return time.Duration(a.MaxBackoffMS) * time.Millisecond
}

// CacheTTL returns the lifetime for cached chart responses. Zero disables expiry.
func (a APIConfig) CacheTTL() time.Duration {
	return time.Duration(a.CacheTTLSecs) * time.Second
}

// PlatformsConfig contains credentials for external platform lookups.
type PlatformsConfig struct {
	Spotify    SpotifyConfig    `toml:"spotify"`
	SoundCloud SoundCloudConfig `toml:"soundcloud"`
	YouTube    YouTubeConfig    `toml:"youtube"`
}

// SpotifyConfig contains Spotify client-credentials settings.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// SoundCloudConfig contains the SoundCloud public API client ID.
type SoundCloudConfig struct {
	ClientID string `toml:"client_id"`
}

// YouTubeConfig contains the YouTube Data API key.
type YouTubeConfig struct {
	APIKey string `toml:"api_key"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
