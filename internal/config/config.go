// Package config loads the CLI and dev store configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the colbertdb CLI configuration.
type Config struct {
	Client    ClientConfig    `yaml:"client"`
	DevServer DevServerConfig `yaml:"dev_server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ClientConfig holds the store connection settings.
type ClientConfig struct {
	URL       string `yaml:"url"`
	APIKey    string `yaml:"api_key"`
	StoreName string `yaml:"store_name"` // default: "default"
	Tracing   bool   `yaml:"tracing"`
}

// DevServerConfig holds the in-memory development store settings.
type DevServerConfig struct {
	Port            int      `yaml:"port"`
	APIKeys         []string `yaml:"api_keys"` // empty = any key accepted
	DefaultK        int      `yaml:"default_k"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// PathEnvVar overrides the config file location.
const PathEnvVar = "COLBERTDB_CONFIG"

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A missing file is not an error: defaults are returned instead.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = nil
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Client.StoreName == "" {
		c.Client.StoreName = "default"
	}
	if c.DevServer.Port <= 0 {
		c.DevServer.Port = 8080
	}
	if c.DevServer.DefaultK <= 0 {
		c.DevServer.DefaultK = 10
	}
	if c.DevServer.ReadTimeoutSec <= 0 {
		c.DevServer.ReadTimeoutSec = 10
	}
	if c.DevServer.WriteTimeoutSec <= 0 {
		c.DevServer.WriteTimeoutSec = 60
	}
	if c.DevServer.ShutdownSec <= 0 {
		c.DevServer.ShutdownSec = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Client.URL != "" {
		u, err := url.Parse(c.Client.URL)
		if err != nil {
			return fmt.Errorf("client.url is invalid: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("client.url must use http or https, got %q", c.Client.URL)
		}
		if u.Host == "" {
			return fmt.Errorf("client.url must include a host, got %q", c.Client.URL)
		}
	}
	if strings.Contains(c.Client.StoreName, "/") {
		return fmt.Errorf("client.store_name must not contain '/', got %q", c.Client.StoreName)
	}
	if c.DevServer.Port > 65535 {
		return fmt.Errorf("dev_server.port must be between 1 and 65535, got %d", c.DevServer.Port)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p
	}

	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
