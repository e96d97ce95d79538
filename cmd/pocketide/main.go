package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/pocketide/internal/config"
	"github.com/user/pocketide/pkg/backend"
	"github.com/user/pocketide/pkg/backend/rest"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "pocketide",
	Short:         "Terminal front end for a cloud-backed code editor",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath,
		"config", filepath.Join(os.Getenv("HOME"), ".pocketide", "config.json"),
		"config file path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel)
	return cfg
}

func setupLogging(logLevel string) {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func newClient(cfg *config.Config) backend.Client {
	return rest.New(&backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
	})
}
