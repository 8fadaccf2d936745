package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Sim   SimConfig
	Redis RedisConfig
}

// SimConfig holds simulation defaults
type SimConfig struct {
	Board     string // board name: "standard" or "wildwilds"
	Policy    string // policy name: "baseline" or "heuristic"
	Seed      int64
	BatchSize int
	Workers   int
	Verbose   bool
}

// RedisConfig holds Redis-specific configuration. Persistence is optional;
// an empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Sim: SimConfig{
			Board:     getEnvOrDefault("SIM_BOARD", "standard"),
			Policy:    getEnvOrDefault("SIM_POLICY", "heuristic"),
			Seed:      getEnvAsInt64OrDefault("SIM_SEED", 1),
			BatchSize: getEnvAsIntOrDefault("SIM_BATCH_SIZE", 100),
			Workers:   getEnvAsIntOrDefault("SIM_WORKERS", 4),
			Verbose:   os.Getenv("SIM_VERBOSE") == "true",
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
	}

	// Validate required fields
	if cfg.Sim.BatchSize < 1 {
		return nil, fmt.Errorf("SIM_BATCH_SIZE must be positive, got %d", cfg.Sim.BatchSize)
	}
	if cfg.Sim.Workers < 1 {
		return nil, fmt.Errorf("SIM_WORKERS must be positive, got %d", cfg.Sim.Workers)
	}
	switch cfg.Sim.Policy {
	case "baseline", "heuristic":
	default:
		return nil, fmt.Errorf("SIM_POLICY must be baseline or heuristic, got %q", cfg.Sim.Policy)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
