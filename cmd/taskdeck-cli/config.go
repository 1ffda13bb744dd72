// ABOUTME: Configuration loading for the taskdeck CLI
// ABOUTME: Loads TOML config from XDG path with environment variable expansion

package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server ServerConfig `toml:"server"`
}

type ServerConfig struct {
	URL string `toml:"url"`
}

const defaultServerURL = "http://localhost:8080"

// configDir returns the taskdeck config directory under XDG_CONFIG_HOME
// or ~/.config.
func configDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, "taskdeck")
}

// loadConfig reads the CLI config. A missing file is not an error: the
// defaults apply, and TASKDECK_SERVER overrides the server URL either way.
func loadConfig() (*Config, error) {
	cfg := &Config{Server: ServerConfig{URL: defaultServerURL}}

	path := filepath.Join(configDir(), "cli.toml")
	data, err := os.ReadFile(path)
	if err == nil {
		expanded := expandEnvVars(string(data))
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if env := os.Getenv("TASKDECK_SERVER"); env != "" {
		cfg.Server.URL = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// Validate checks that required config fields are present and valid.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("server.url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url must use http or https scheme")
	}
	return nil
}
