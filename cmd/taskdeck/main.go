// ABOUTME: Entry point for the taskdeck API server
// ABOUTME: Serves the task and account HTTP API over SQLite

package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/passi/taskdeck/internal/account"
	"github.com/passi/taskdeck/internal/api"
	"github.com/passi/taskdeck/internal/auth"
	"github.com/passi/taskdeck/internal/config"
	"github.com/passi/taskdeck/internal/store"
	"github.com/passi/taskdeck/internal/task"
)

// Version is set by goreleaser at build time.
var version = "dev"

// getConfigPath returns the path to the server config file.
// Priority: TASKDECK_CONFIG env var > XDG_CONFIG_HOME/taskdeck/server.yaml > ~/.config/taskdeck/server.yaml
func getConfigPath() string {
	if envPath := os.Getenv("TASKDECK_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "server.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "taskdeck", "server.yaml")
}

// getDataPath returns the path to the taskdeck data directory.
// Priority: XDG_DATA_HOME/taskdeck > ~/.local/share/taskdeck
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "taskdeck")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: taskdeck <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve     Start the API server")
		fmt.Println("  init      Create a config file with a fresh signing secret")
		fmt.Println("  health    Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	gray := color.New(color.FgHiBlack)

	gray.Printf("taskdeck %s\n", version)
	green.Print("  ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("  ▶ ")
	fmt.Printf("HTTP:     %s\n", cfg.Server.HTTPAddr)
	green.Print("  ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	fmt.Println()

	logger.Info("starting taskdeck",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"db_path", cfg.Database.Path,
	)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	verifier, err := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return fmt.Errorf("creating token verifier: %w", err)
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	accounts := account.NewService(st, hasher, verifier, cfg.Auth.TokenTTL)
	tasks := task.NewService(st)

	mux := http.NewServeMux()
	api.NewServer(accounts, tasks, verifier).RegisterRoutes(mux)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		logger.Error("server error", "error", serverErr)
	}

	// Fresh context: the original is already canceled by the time we shut down.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdownErr := server.Shutdown(shutdownCtx)

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func runHealth(ctx context.Context) error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/healthz", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

// runInit writes a fresh config file with a random signing secret and
// creates the data directory. Refuses to overwrite an existing config.
func runInit() error {
	configPath := getConfigPath()
	dataPath := getDataPath()
	dbPath := filepath.Join(dataPath, "taskdeck.db")

	green := color.New(color.FgGreen)

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists: %s", configPath)
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return fmt.Errorf("generating signing secret: %w", err)
	}
	jwtSecret := base64.StdEncoding.EncodeToString(secretBytes)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	configContent := fmt.Sprintf(`# taskdeck configuration
# Generated by taskdeck init

server:
  http_addr: "localhost:8080"

database:
  path: "%s"

auth:
  jwt_secret: "%s"
  token_ttl: "24h"

logging:
  level: "info"
  format: "text"
`, dbPath, jwtSecret)

	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	green.Printf("  ✓ Created config: %s\n", configPath)
	green.Printf("  ✓ Data directory: %s\n", dataPath)
	fmt.Println()
	fmt.Println("To start the server:")
	fmt.Println("  taskdeck serve")

	return nil
}
