package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/pocketide/internal/catalog"
)

type Config struct {
	BackendURL         string `json:"backend_url"`
	LogLevel           string `json:"log_level"`
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds"`
	Chat               struct {
		Provider              string `json:"provider"`
		Model                 string `json:"model"`
		IncludeProjectContext bool   `json:"include_project_context"`
	} `json:"chat"`
}

func Load(path string) (*Config, error) {
	provider, model := catalog.Default()

	cfg := &Config{
		BackendURL:         "http://localhost:8000",
		LogLevel:           "info",
		HTTPTimeoutSeconds: 60,
	}
	cfg.Chat.Provider = provider
	cfg.Chat.Model = model
	cfg.Chat.IncludeProjectContext = true

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if url := os.Getenv("POCKETIDE_BACKEND_URL"); url != "" {
		cfg.BackendURL = url
	}
	if level := os.Getenv("POCKETIDE_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if !catalog.ValidModel(cfg.Chat.Provider, cfg.Chat.Model) {
		return nil, fmt.Errorf("config chat.model %q not in catalog for provider %q", cfg.Chat.Model, cfg.Chat.Provider)
	}

	return cfg, nil
}

// Save writes the config atomically, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// ListValues returns the config as a flat dot-keyed map for display.
func ListValues(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var nested map[string]any
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return Flatten(nested), nil
}
