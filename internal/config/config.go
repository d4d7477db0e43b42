package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds server and adapter settings. A YAML file supplies the base
// values; environment variables override it so deployments can tweak a
// single knob without editing the file.
type Config struct {
	Port          string `yaml:"port"`
	DatabaseURL   string `yaml:"database_url"`
	RedisURL      string `yaml:"redis_url"`
	GoogleAPIKey  string `yaml:"google_api_key"`
	SolverSeed    int64  `yaml:"solver_seed"`
	CacheTTLHours int    `yaml:"cache_ttl_hours"`
}

// Load reads the optional YAML config file at path and applies environment
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Config{
		Port:          "8080",
		CacheTTLHours: 24,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// env-only configuration
		case err != nil:
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
			}
		}
	}

	cfg.Port = Get("PORT", cfg.Port)
	cfg.DatabaseURL = Get("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = Get("REDIS_URL", cfg.RedisURL)
	cfg.GoogleAPIKey = Get("GOOGLE_API_KEY", cfg.GoogleAPIKey)

	if v := os.Getenv("SOLVER_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("load config: parse SOLVER_SEED %q: %w", v, err)
		}
		cfg.SolverSeed = seed
	}

	return cfg, nil
}

// Get returns an environment variable or the fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
