package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	Search  SearchConfig
	HTTP    HTTPConfig
	Logging LoggingConfig
}

// SearchConfig sets the defaults for driving searches.
type SearchConfig struct {
	Pacing   time.Duration
	Workers  int
	MaxSteps int
}

// HTTPConfig governs the step server in examples/vizweb.
type HTTPConfig struct {
	Host string
	Port int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultHost          = "127.0.0.1"
	defaultPort          = 8080
	defaultLoggingLevel  = "info"
	defaultLoggingFormat = "text"
	defaultWorkers       = 1
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Search: SearchConfig{
			Workers:  parseIntWithDefault("GRIDSEARCH_WORKERS", defaultWorkers),
			MaxSteps: parseIntWithDefault("GRIDSEARCH_MAX_STEPS", 0),
		},
		HTTP: HTTPConfig{
			Host: valueOrDefault("SERVER_HOST", defaultHost),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	if v := os.Getenv("GRIDSEARCH_PACING"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GRIDSEARCH_PACING: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("GRIDSEARCH_PACING must not be negative, got %s", d)
		}
		cfg.Search.Pacing = d
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	return cfg, nil
}

// Addr returns host:port for net.Listen.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
