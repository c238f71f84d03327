// Package config handles XDG configuration paths and environment settings.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "taskcli"

	// SessionFile is the session database filename.
	SessionFile = "session.db"

	// DefaultBaseURL is used when TASKCLI_API_BASE_URL is not set.
	DefaultBaseURL = "https://localhost:7111"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the base URL of the remote task API.
	BaseURL string

	// Timeout bounds each outbound API call.
	Timeout time.Duration

	// SessionDB is the path of the session database file.
	SessionDB string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config from the environment (optionally a .env file) with
// the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskcli or $HOME/.config/taskcli.
func New(configDir string) (*Config, error) {
	_ = godotenv.Load(".env")

	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{
		Dir:     dir,
		BaseURL: getString("TASKCLI_API_BASE_URL", DefaultBaseURL),
		Timeout: getDuration("TASKCLI_REQUEST_TIMEOUT", 10*time.Second),
	}
	cfg.SessionDB = getString("TASKCLI_SESSION_DB", filepath.Join(dir, SessionFile))
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SessionPath returns the path to the session database file.
func (c *Config) SessionPath() string {
	return c.SessionDB
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
