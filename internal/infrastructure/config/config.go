// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	ownName := cfg.Reconciler.OwnCompanyName
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Reconciler    ReconcilerConfig    `yaml:"reconciler"`
	Storage       StorageConfig       `yaml:"storage"`
	API           APIConfig           `yaml:"api"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ReconcilerConfig holds matching engine settings.
// OwnCompanyName and StopWords are deliberately configurable so the same
// deployment can serve different organizations and locales.
type ReconcilerConfig struct {
	OwnCompanyName string   `yaml:"own_company_name"`
	StopWords      []string `yaml:"stop_words"`
	NameThreshold  float64  `yaml:"name_threshold"`
	ScoreThreshold float64  `yaml:"score_threshold"`
	DateWindowDays int      `yaml:"date_window_days"`
}

// StorageConfig holds record store configuration
type StorageConfig struct {
	Driver       string `yaml:"driver"` // "sqlite" (default) or "postgres"
	DatabasePath string `yaml:"database_path"`
	PostgresDSN  string `yaml:"postgres_dsn"`
}

// APIConfig holds HTTP server settings
type APIConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${RECONCILE_PG_DSN})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	return &Config{
		Reconciler: ReconcilerConfig{
			OwnCompanyName: getEnv("RECONCILE_COMPANY_NAME", "Example Company Oy"),
			StopWords:      getEnvList("RECONCILE_STOP_WORDS", []string{"oy", "oyj", "ltd", "tmi", "inc", "oy.", "oy,"}),
		},
		Storage: StorageConfig{
			Driver:       getEnv("RECONCILE_DB_DRIVER", "sqlite"),
			DatabasePath: getEnv("RECONCILE_DB_PATH", "reconcile.db"),
			PostgresDSN:  os.Getenv("RECONCILE_PG_DSN"),
		},
		API: APIConfig{
			Port:           getEnvInt("RECONCILE_API_PORT", 8080),
			AllowedOrigins: getEnvList("RECONCILE_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from the specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvList retrieves a comma-separated environment variable with a fallback default
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
