package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

var (
	errInvalidPort           = errors.New("config: invalid PORT number")
	errConcurrencyOutOfRange = errors.New("config: BATCH_CONCURRENCY must be 1-100")
	errDomainRequired        = errors.New("config: SITE_DOMAIN must not be empty")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port             string
	LogLevel         string
	SiteDomain       string
	RulesPath        string
	BatchConcurrency int
}

// Load reads configuration from environment variables with sensible defaults.
// SiteDomain drives link classification and URL reconstruction; RulesPath is
// optional and falls back to the built-in rule set when empty.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "ERROR"),
		SiteDomain:       getEnv("SITE_DOMAIN", "leapsandrebounds.com"),
		RulesPath:        getEnv("RULES_PATH", ""),
		BatchConcurrency: getEnvAsInt("BATCH_CONCURRENCY", 4),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.BatchConcurrency < 1 || c.BatchConcurrency > 100 {
		return fmt.Errorf("%w: got %d", errConcurrencyOutOfRange, c.BatchConcurrency)
	}

	if c.SiteDomain == "" {
		return errDomainRequired
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
