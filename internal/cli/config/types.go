// Package config provides configuration management for the tabview CLI.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	// Database is the DuckDB database used to parse uploads; empty means in-memory.
	Database string        `koanf:"database"`
	Verbose  bool          `koanf:"verbose"`
	UI       UIConfig      `koanf:"ui"`
	Session  SessionConfig `koanf:"session"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port        int  `koanf:"port"`
	AutoOpen    bool `koanf:"auto_open"`
	PreviewRows int  `koanf:"preview_rows"`
	MaxUploadMB int  `koanf:"max_upload_mb"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (c UIConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// SessionConfig holds configuration for browser sessions.
type SessionConfig struct {
	Secret      string        `koanf:"secret"`
	IdleTimeout time.Duration `koanf:"idle_timeout"`
	MaxAge      time.Duration `koanf:"max_age"`
}

// Default configuration values.
const (
	DefaultPort          = 8765
	DefaultAutoOpen      = true
	DefaultPreviewRows   = 50
	DefaultMaxUploadMB   = 200
	DefaultSessionSecret = "tabview-dev-secret-change-in-production" //nolint:gosec
	DefaultIdleTimeout   = 2 * time.Hour
	DefaultMaxAge        = 30 * 24 * time.Hour
)

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Port:        DefaultPort,
			AutoOpen:    DefaultAutoOpen,
			PreviewRows: DefaultPreviewRows,
			MaxUploadMB: DefaultMaxUploadMB,
		},
		Session: SessionConfig{
			Secret:      DefaultSessionSecret,
			IdleTimeout: DefaultIdleTimeout,
			MaxAge:      DefaultMaxAge,
		},
	}
}

// UsesDefaultSecret reports whether the session cookies are signed with the
// built-in development secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.Session.Secret == DefaultSessionSecret
}
