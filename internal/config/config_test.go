package config

import (
	"os"
	"path/filepath"
	"testing"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestLoadWritesDefaults(t *testing.T) {
	path := tempConfigPath(t)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BackendURL != "http://localhost:8000" {
		t.Errorf("unexpected default backend url: %s", cfg.BackendURL)
	}
	if cfg.Chat.Provider != "openai" || cfg.Chat.Model != "gpt-5.2" {
		t.Errorf("unexpected default chat selection: %s/%s", cfg.Chat.Provider, cfg.Chat.Model)
	}
	if !cfg.Chat.IncludeProjectContext {
		t.Error("expected project context on by default")
	}

	// Defaults were written to disk.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected defaults written to %s: %v", path, err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := tempConfigPath(t)

	cfg := &Config{
		BackendURL:         "https://ide.example.com",
		LogLevel:           "debug",
		HTTPTimeoutSeconds: 30,
	}
	cfg.Chat.Provider = "anthropic"
	cfg.Chat.Model = "claude-opus-4-5-20251101"
	cfg.Chat.IncludeProjectContext = false

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.BackendURL != cfg.BackendURL || loaded.LogLevel != cfg.LogLevel {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if loaded.Chat.Model != "claude-opus-4-5-20251101" {
		t.Errorf("round trip lost chat model: %s", loaded.Chat.Model)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := tempConfigPath(t)
	t.Setenv("POCKETIDE_BACKEND_URL", "https://override.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BackendURL != "https://override.example.com" {
		t.Errorf("env override ignored: %s", cfg.BackendURL)
	}
}

func TestLoadRejectsOffCatalogModel(t *testing.T) {
	path := tempConfigPath(t)

	cfg := &Config{BackendURL: "http://localhost:8000", LogLevel: "info", HTTPTimeoutSeconds: 60}
	cfg.Chat.Provider = "openai"
	cfg.Chat.Model = "gpt-99"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected off-catalog model to be rejected")
	}
}

func TestFlatten(t *testing.T) {
	nested := map[string]any{
		"backend_url": "http://localhost:8000",
		"chat": map[string]any{
			"provider": "openai",
		},
	}
	flat := Flatten(nested)
	if flat["backend_url"] != "http://localhost:8000" {
		t.Errorf("top-level key lost: %v", flat)
	}
	if flat["chat.provider"] != "openai" {
		t.Errorf("nested key not flattened: %v", flat)
	}
}
