// Package config provides configuration for the study service.
//
// Values come from an optional TOML file named by STUDYBUDDY_CONFIG, then
// environment variables, which win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xiaot623/gogo/studybuddy/internal/adapter/llm"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int `toml:"http_port"`

	// Completion endpoint
	APIKey  string        `toml:"api_key"`
	BaseURL string        `toml:"base_url"`
	Model   string        `toml:"model"`
	Timeout time.Duration `toml:"-"`
	Mode    string        `toml:"mode"`

	// History
	HistoryBackend string `toml:"history_backend"`

	// WebSocket settings
	PingInterval   time.Duration `toml:"-"`
	WriteTimeout   time.Duration `toml:"-"`
	ReadTimeout    time.Duration `toml:"-"`
	MaxMessageSize int64         `toml:"max_message_size"`

	// Logging
	LogLevel string `toml:"log_level"`

	// Millisecond forms of the durations, as written in the file.
	TimeoutMs      int `toml:"timeout_ms"`
	PingIntervalMs int `toml:"ws_ping_interval_ms"`
	WriteTimeoutMs int `toml:"ws_write_timeout_ms"`
	ReadTimeoutMs  int `toml:"ws_read_timeout_ms"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	cfg := &Config{
		HTTPPort:       8080,
		BaseURL:        llm.DefaultBaseURL,
		Model:          llm.DefaultModel,
		TimeoutMs:      int(llm.DefaultTimeout.Milliseconds()),
		HistoryBackend: "memory",
		PingIntervalMs: 30000,
		WriteTimeoutMs: 10000,
		ReadTimeoutMs:  60000,
		MaxMessageSize: 65536,
		LogLevel:       "info",
	}
	cfg.resolveDurations()
	return cfg
}

// Load loads configuration from the optional file and environment variables.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("STUDYBUDDY_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.APIKey = getEnv("OPENROUTER_API_KEY", cfg.APIKey)
	cfg.BaseURL = getEnv("OPENROUTER_BASE_URL", cfg.BaseURL)
	cfg.Model = getEnv("STUDYBUDDY_MODEL", cfg.Model)
	cfg.Mode = getEnv("STUDYBUDDY_MODE", cfg.Mode)
	cfg.TimeoutMs = getEnvInt("LLM_TIMEOUT_MS", cfg.TimeoutMs)
	cfg.HistoryBackend = getEnv("HISTORY_BACKEND", cfg.HistoryBackend)
	cfg.PingIntervalMs = getEnvInt("WS_PING_INTERVAL_MS", cfg.PingIntervalMs)
	cfg.WriteTimeoutMs = getEnvInt("WS_WRITE_TIMEOUT_MS", cfg.WriteTimeoutMs)
	cfg.ReadTimeoutMs = getEnvInt("WS_READ_TIMEOUT_MS", cfg.ReadTimeoutMs)
	cfg.MaxMessageSize = int64(getEnvInt("WS_MAX_MESSAGE_SIZE", int(cfg.MaxMessageSize)))
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.resolveDurations()
	return cfg, nil
}

// APIKeyConfigured reports whether a credential was supplied.
func (c *Config) APIKeyConfigured() bool {
	return c.APIKey != ""
}

func (c *Config) loadFile(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// validate rejects values that would leave a call unbounded or stop the
// WebSocket keepalive from starting.
func (c *Config) validate() error {
	positive := []struct {
		name  string
		value int64
	}{
		{"timeout_ms", int64(c.TimeoutMs)},
		{"ws_ping_interval_ms", int64(c.PingIntervalMs)},
		{"ws_write_timeout_ms", int64(c.WriteTimeoutMs)},
		{"ws_read_timeout_ms", int64(c.ReadTimeoutMs)},
		{"max_message_size", c.MaxMessageSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("invalid config: %s must be positive, got %d", p.name, p.value)
		}
	}
	return nil
}

func (c *Config) resolveDurations() {
	c.Timeout = time.Duration(c.TimeoutMs) * time.Millisecond
	c.PingInterval = time.Duration(c.PingIntervalMs) * time.Millisecond
	c.WriteTimeout = time.Duration(c.WriteTimeoutMs) * time.Millisecond
	c.ReadTimeout = time.Duration(c.ReadTimeoutMs) * time.Millisecond
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
