// Package config handles configuration for the CLI client, layering
// defaults, an optional JSON file, and command-line flags.
package config

import "time"

// Config holds runtime settings for the pharmacy CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
//   - SessionDBPath: path of the local SQLite database holding the session.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerBaseURL  string
	SessionDBPath  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.SessionDBPath = "session.db"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
