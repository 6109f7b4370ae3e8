// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
//
// Values come from environment variables prefixed FAREBOT_, optionally layered
// on top of a YAML file pointed to by FAREBOT_CONFIG. Environment always wins.
type Config struct {
	TelegramToken      string        `yaml:"telegram_token"`
	TravelpayoutsToken string        `yaml:"travelpayouts_token"`
	Currency           string        `yaml:"currency"`
	ResultLimit        int           `yaml:"result_limit"`
	HTTPTimeout        time.Duration `yaml:"http_timeout"`
	OpsAddr            string        `yaml:"ops_addr"`
	LogLevel           string        `yaml:"log_level"`
}

// Load reads configuration from the optional YAML file and the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Currency:    "rub",
		ResultLimit: 5,
		HTTPTimeout: 15 * time.Second,
		OpsAddr:     ":8081",
		LogLevel:    "info",
	}

	if path := os.Getenv("FAREBOT_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.TelegramToken = getEnv("FAREBOT_TELEGRAM_TOKEN", cfg.TelegramToken)
	cfg.TravelpayoutsToken = getEnv("FAREBOT_TRAVELPAYOUTS_TOKEN", cfg.TravelpayoutsToken)
	cfg.Currency = getEnv("FAREBOT_CURRENCY", cfg.Currency)
	cfg.OpsAddr = getEnv("FAREBOT_OPS_ADDR", cfg.OpsAddr)
	cfg.LogLevel = getEnv("FAREBOT_LOG_LEVEL", cfg.LogLevel)
	cfg.ResultLimit = getEnvInt("FAREBOT_RESULT_LIMIT", cfg.ResultLimit)

	if v := os.Getenv("FAREBOT_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FAREBOT_HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}

// Validate checks the fields every mode needs. Transport-specific requirements
// (the Telegram token) are checked by the command that needs them.
func (c *Config) Validate() error {
	if c.TravelpayoutsToken == "" {
		return fmt.Errorf("FAREBOT_TRAVELPAYOUTS_TOKEN is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.ResultLimit <= 0 {
		return fmt.Errorf("result limit must be positive")
	}
	return nil
}

// Level parses LogLevel into a slog.Level, defaulting to Info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
