package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/user/pocketide/internal/catalog"
)

// GetValue reads a single dotted key (e.g. "chat.model") from the config file.
func GetValue(path, key string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	v, ok := Flatten(m)[key]
	if !ok {
		return nil, fmt.Errorf("unknown key: %s", key)
	}
	return v, nil
}

// SetValue updates a single dotted key in the config file. The string value
// is coerced to bool or number when it parses as one, and the resulting
// config must still be valid before it is written back.
func SetValue(path, key, value string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	parts := strings.Split(key, ".")
	cur := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			return fmt.Errorf("unknown key: %s", key)
		}
		cur = next
	}
	leaf := parts[len(parts)-1]
	if _, ok := cur[leaf]; !ok {
		return fmt.Errorf("unknown key: %s", key)
	}
	cur[leaf] = coerce(value)

	merged, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(merged, &cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if !catalog.ValidModel(cfg.Chat.Provider, cfg.Chat.Model) {
		return fmt.Errorf("model %q is not available for provider %q", cfg.Chat.Model, cfg.Chat.Provider)
	}
	return Save(path, &cfg)
}

func coerce(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
