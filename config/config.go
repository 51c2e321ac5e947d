package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
	Nutrition NutritionConfig
	Tracing   TracingConfig
	USDA      USDAConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig selects the storage backend for foods and categories
type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // "sqlite", "postgres" or "memory"
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	LogQueries  bool   `mapstructure:"log_queries"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// NutritionConfig bounds the calculation endpoints
type NutritionConfig struct {
	MaxCompareFoods      int `mapstructure:"max_compare_foods"`
	MaxRecipeIngredients int `mapstructure:"max_recipe_ingredients"`
	Parallelism          int `mapstructure:"parallelism"`
}

// TracingConfig controls the OpenTelemetry tracer provider
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Exporter    string  `mapstructure:"exporter"` // "stdout"
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// USDAConfig holds USDA API configuration. Only the seed importer needs a key.
type USDAConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutribase/")

	// NUTRIBASE_SERVER_PORT -> server.port
	v.SetEnvPrefix("NUTRIBASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "nutribase.db")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.log_queries", false)

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("nutrition.max_compare_foods", 10)
	v.SetDefault("nutrition.max_recipe_ingredients", 100)
	v.SetDefault("nutrition.parallelism", 4)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Database.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("database driver must be 'sqlite', 'postgres' or 'memory', got: %s", config.Database.Driver)
	}

	if config.Database.Driver == "postgres" && config.Database.DSN == "" {
		return fmt.Errorf("database DSN is required when driver is 'postgres' (set NUTRIBASE_DATABASE_DSN)")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.Nutrition.Parallelism < 1 {
		return fmt.Errorf("nutrition parallelism must be at least 1, got: %d", config.Nutrition.Parallelism)
	}

	if config.Nutrition.MaxCompareFoods < 1 || config.Nutrition.MaxRecipeIngredients < 1 {
		return fmt.Errorf("nutrition limits must be at least 1")
	}

	if config.Tracing.Enabled {
		if config.Tracing.Exporter != "stdout" {
			return fmt.Errorf("tracing exporter must be 'stdout', got: %s", config.Tracing.Exporter)
		}
		if config.Tracing.SampleRatio < 0 || config.Tracing.SampleRatio > 1 {
			return fmt.Errorf("tracing sample ratio must be between 0 and 1, got: %g", config.Tracing.SampleRatio)
		}
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/', got: %s", config.Metrics.Path)
	}

	return nil
}

// loadEnvFile reads KEY=VALUE pairs from ./.env. Variables already present
// in the environment win.
func loadEnvFile() error {
	f, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}

	return scanner.Err()
}
