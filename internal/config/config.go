// Package config defines the explicit configuration record for the assistant.
// Collaborator clients receive their settings through this record; core logic
// never performs ambient environment lookups. The environment is consulted in
// exactly one place, FromEnv, called at the process edge.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Model configures the LLM collaborator.
type Model struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Name        string  `yaml:"name"`
	TimeoutSecs int     `yaml:"timeout_seconds"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Timeout returns the configured call timeout.
func (m Model) Timeout() time.Duration {
	return time.Duration(m.TimeoutSecs) * time.Second
}

// Store configures the conversation store backend.
type Store struct {
	// Backend selects the implementation: "file", "redis", or "memory".
	Backend string `yaml:"backend"`

	// Path is the base directory for the file backend.
	Path string `yaml:"path"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	// EncryptionKey, when set, enables at-rest encryption of message content.
	// It must be a base64-encoded 32-byte key.
	EncryptionKey string `yaml:"encryption_key"`

	// PIIPatterns are regular expressions whose matches are masked before
	// any message content reaches the backend.
	PIIPatterns []string `yaml:"pii_patterns"`
}

// Config is the top-level configuration record.
type Config struct {
	Model        Model  `yaml:"model"`
	Store        Store  `yaml:"store"`
	BookingsPath string `yaml:"bookings_path"`
	HTTPAddr     string `yaml:"http_addr"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Model: Model{
			Name:        "gpt-4o-mini",
			TimeoutSecs: 60,
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		Store: Store{
			Backend: "file",
			Path:    ".wellspring/threads",
		},
		BookingsPath: ".wellspring/bookings.json",
		HTTPAddr:     ":8080",
		LogLevel:     "info",
	}
}

// Load reads a YAML config file over the defaults.
// A missing file is not an error: defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FromEnv overlays environment variables onto the config. Called once at the
// process edge (after godotenv has loaded any .env file).
func (c Config) FromEnv() Config {
	if v := os.Getenv("WELLSPRING_API_KEY"); v != "" {
		c.Model.APIKey = v
	}
	if v := os.Getenv("WELLSPRING_BASE_URL"); v != "" {
		c.Model.BaseURL = v
	}
	if v := os.Getenv("WELLSPRING_MODEL"); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv("WELLSPRING_STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("WELLSPRING_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("WELLSPRING_REDIS_ADDR"); v != "" {
		c.Store.RedisAddr = v
	}
	if v := os.Getenv("WELLSPRING_ENCRYPTION_KEY"); v != "" {
		c.Store.EncryptionKey = v
	}
	if v := os.Getenv("WELLSPRING_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Store.RedisDB = db
		}
	}
	if v := os.Getenv("WELLSPRING_HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("WELLSPRING_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return c
}
