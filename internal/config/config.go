// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	BotToken         string
	AdminIDs         []int64
	DBPath           string
	GeocodingAPIKey  string
	GeocodingBaseURL string
	Port             string
	SearchLimit      int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	adminIDs, err := parseAdminIDs(getEnv("ADMIN_IDS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_IDS: %w", err)
	}

	cfg := &Config{
		BotToken:         getEnv("BOT_TOKEN", ""),
		AdminIDs:         adminIDs,
		DBPath:           getEnv("DB_PATH", "./data/shopbot.db"),
		GeocodingAPIKey:  getEnv("GEOCODING_API_KEY", ""),
		GeocodingBaseURL: getEnv("GEOCODING_BASE_URL", "https://api.geocod.example.com/v1"),
		Port:             getEnv("PORT", "8080"),
		SearchLimit:      getEnvInt("SEARCH_LIMIT", 5),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.GeocodingAPIKey == "" {
		return fmt.Errorf("GEOCODING_API_KEY cannot be empty")
	}
	if c.GeocodingBaseURL == "" {
		return fmt.Errorf("GEOCODING_BASE_URL cannot be empty")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("SEARCH_LIMIT must be > 0")
	}
	return nil
}

// parseAdminIDs parses a comma-separated list of Telegram user IDs. Empty
// entries are skipped; an empty list is valid and disables addshop entirely.
func parseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
