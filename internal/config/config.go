package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full server configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	DocsPath  string          `mapstructure:"docspath"`
	// ExamplesPath points at the directory of example payload JSON files
	ExamplesPath string `mapstructure:"examplespath"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	CORSOrigin string `mapstructure:"corsorigin"`
}

// DatabaseConfig holds Postgres connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	Name           string `mapstructure:"name"`
	MigrationsPath string `mapstructure:"migrationspath"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requestsperminute"`
	Burst             int `mapstructure:"burst"`
}

// Load loads configuration from a .env file (optional) and ORGDIR_-prefixed
// environment variables, e.g. ORGDIR_DATABASE_HOST -> database.host.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.corsorigin", "http://localhost:5173")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "orgdir")
	v.SetDefault("database.password", "orgdir")
	v.SetDefault("database.name", "orgdir")
	v.SetDefault("database.migrationspath", "migrations")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("ratelimit.requestsperminute", 120)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("docspath", "docs/api.md")
	v.SetDefault("examplespath", "resources/examples")

	// 1. Load from .env file (if exists)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	// 2. Load from environment variables. Viper's AutomaticEnv doesn't work
	// well with Unmarshal when keys aren't known up front, so we iterate the
	// environment and populate viper ourselves.
	const prefix = "ORGDIR_"
	for _, envStr := range os.Environ() {
		pair := strings.SplitN(envStr, "=", 2)
		key, value := pair[0], pair[1]

		if strings.HasPrefix(key, prefix) {
			// ORGDIR_DATABASE_HOST -> database.host
			propKey := strings.TrimPrefix(key, prefix)
			propKey = strings.ToLower(strings.ReplaceAll(propKey, "_", "."))
			propKey = strings.TrimPrefix(propKey, ".")

			v.Set(propKey, value)
		}
	}

	// 3. Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
