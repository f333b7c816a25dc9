// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	DatabasePath string
	// EnvFile is the .env file values were read from, empty if none was found.
	EnvFile string
	LogFile string
	LogLevel string

	RefreshInterval      time.Duration
	MilestoneInterval    time.Duration
	TargetDuration       time.Duration
	NotificationsEnabled bool
	HistoryLimit         int
}

// Default values
const (
	defaultRefreshInterval = 10 * time.Millisecond
	minRefreshInterval     = 10 * time.Millisecond
	maxRefreshInterval     = time.Second
	defaultHistoryLimit    = 50
)

// Load reads configuration from the first .env file found and the process
// environment. Environment variables win over file values.
func Load() (*Config, error) {
	envFile := ""
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			envFile = path
			break
		}
	}
	return LoadFrom(envFile)
}

// LoadFrom builds a Config from a specific .env file. An empty path skips the
// file and uses only the environment.
func LoadFrom(envFile string) (*Config, error) {
	values := map[string]string{}
	if envFile != "" {
		read, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		values = read
	}

	env := lookup{file: values}

	cfg := &Config{
		DatabasePath:         env.String("DATABASE_PATH", getDefaultDatabasePath()),
		EnvFile:              envFile,
		LogFile:              env.String("LOG_FILE", ""),
		LogLevel:             env.String("LOG_LEVEL", "info"),
		RefreshInterval:      env.Duration("REFRESH_INTERVAL", defaultRefreshInterval),
		MilestoneInterval:    env.Duration("MILESTONE_INTERVAL", 0),
		TargetDuration:       env.Duration("TARGET_DURATION", 0),
		NotificationsEnabled: env.Bool("NOTIFICATIONS_ENABLED", true),
		HistoryLimit:         env.Int("HISTORY_LIMIT", defaultHistoryLimit),
	}

	cfg.normalize()

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize clamps values into the ranges the UI can honour.
func (c *Config) normalize() {
	c.RefreshInterval = min(max(c.RefreshInterval, minRefreshInterval), maxRefreshInterval)
	c.MilestoneInterval = max(c.MilestoneInterval, 0)
	c.TargetDuration = max(c.TargetDuration, 0)
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = defaultHistoryLimit
	}
}

// ConfigDir returns the directory holding the default database and .env.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "stopwatch-tui")
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "stopwatch-tui", ".env"),
			filepath.Join(home, ".stopwatch-tui", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	dir := ConfigDir()
	if dir == "" {
		return "sessions.db"
	}
	return filepath.Join(dir, "sessions.db")
}

// lookup resolves keys from the process environment, then the .env file.
type lookup struct {
	file map[string]string
}

func (l lookup) raw(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return strings.TrimSpace(l.file[key])
}

// String retrieves a string value or returns the default.
func (l lookup) String(key, defaultValue string) string {
	if value := l.raw(key); value != "" {
		return value
	}
	return defaultValue
}

// Duration retrieves a duration value or returns the default.
// Accepts values like "30s", "1m", "500ms", or bare seconds.
func (l lookup) Duration(key string, defaultValue time.Duration) time.Duration {
	if value := l.raw(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// Bool retrieves a boolean value or returns the default.
func (l lookup) Bool(key string, defaultValue bool) bool {
	if value := l.raw(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// Int retrieves an integer value or returns the default.
func (l lookup) Int(key string, defaultValue int) int {
	if value := l.raw(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
