// ABOUTME: Tests for server configuration loading
// ABOUTME: Covers env expansion, duration parsing, defaults, and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

const validConfig = `
server:
  http_addr: ":4001"
database:
  path: "data/taskdeck.db"
auth:
  jwt_secret: "config-test-secret-that-is-32-b!"
  token_ttl: "12h"
  bcrypt_cost: 12
logging:
  level: "debug"
  format: "json"
`

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != ":4001" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, ":4001")
	}
	if cfg.Database.Path != "data/taskdeck.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "data/taskdeck.db")
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("TokenTTL = %v, want 12h", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":4001"
database:
  path: "data/taskdeck.db"
auth:
  jwt_secret: "config-test-secret-that-is-32-b!"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.TokenTTL != DefaultTokenTTL {
		t.Errorf("TokenTTL = %v, want default %v", cfg.Auth.TokenTTL, DefaultTokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want default 10", cfg.Auth.BcryptCost)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want default %q", cfg.Logging.Format, "text")
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TASKDECK_TEST_SECRET", "env-provided-secret-of-32-bytes!")

	path := writeConfig(t, `
server:
  http_addr: ":4001"
database:
  path: "data/taskdeck.db"
auth:
  jwt_secret: "${TASKDECK_TEST_SECRET}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.JWTSecret != "env-provided-secret-of-32-bytes!" {
		t.Errorf("JWTSecret = %q, want expanded env value", cfg.Auth.JWTSecret)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing http_addr",
			content: `
database:
  path: "data/taskdeck.db"
auth:
  jwt_secret: "config-test-secret-that-is-32-b!"
`,
		},
		{
			name: "missing database path",
			content: `
server:
  http_addr: ":4001"
auth:
  jwt_secret: "config-test-secret-that-is-32-b!"
`,
		},
		{
			name: "short jwt secret",
			content: `
server:
  http_addr: ":4001"
database:
  path: "data/taskdeck.db"
auth:
  jwt_secret: "too-short"
`,
		},
		{
			name: "negative token ttl",
			content: `
server:
  http_addr: ":4001"
database:
  path: "data/taskdeck.db"
auth:
  jwt_secret: "config-test-secret-that-is-32-b!"
  token_ttl: "-1h"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() should have failed validation")
			}
		})
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":4001"
database:
  path: "data/taskdeck.db"
auth:
  jwt_secret: "config-test-secret-that-is-32-b!"
  token_ttl: "one day"
`)

	if _, err := Load(path); err == nil {
		t.Error("Load() should have failed on unparseable duration")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for missing file")
	}
}
