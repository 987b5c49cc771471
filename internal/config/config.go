package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Events    EventsConfig    `mapstructure:"events"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port               string   `mapstructure:"port"`
	Env                string   `mapstructure:"env"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute"`
}

// DatabaseConfig selects the activity store
type DatabaseConfig struct {
	// Driver is postgres, sqlite or memory
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// AnalyticsConfig tunes the insight views
type AnalyticsConfig struct {
	// Timezone is the IANA zone calendar days and hours are evaluated in
	Timezone        string `mapstructure:"timezone"`
	RecentLimit     int    `mapstructure:"recent_limit"`
	HistoryPageSize int    `mapstructure:"history_page_size"`
	TopLimit        int    `mapstructure:"top_limit"`
}

// AuthConfig holds bearer token verification settings
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// EventsConfig configures activity change events. No brokers disables publishing.
type EventsConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Load reads configuration from defaults, an optional config.yaml and
// ENERGY_* environment variables, in increasing order of precedence.
// A .env file in the working directory is loaded into the environment first;
// variables already set are not overridden.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.cors_allowed_origins", []string{})
	v.SetDefault("server.rate_limit_per_minute", 300)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "energy.db")
	v.SetDefault("analytics.timezone", "UTC")
	v.SetDefault("analytics.recent_limit", 5)
	v.SetDefault("analytics.history_page_size", 20)
	v.SetDefault("analytics.top_limit", 3)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", "energy.activities")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("ENERGY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional unprefixed names used by hosting platforms
	v.BindEnv("server.port", "ENERGY_SERVER_PORT", "PORT")
	v.BindEnv("database.dsn", "ENERGY_DATABASE_DSN", "DATABASE_URL")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

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

	config.Server.CORSAllowedOrigins = splitList(config.Server.CORSAllowedOrigins)
	config.Events.Brokers = splitList(config.Events.Brokers)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// splitList accepts both YAML lists and a single comma separated env value.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the %s driver", c.Database.Driver)
		}
	case "memory":
	default:
		return fmt.Errorf("database.driver must be postgres, sqlite or memory, got %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("ENERGY_AUTH_JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 bytes in production")
	}

	if c.Analytics.RecentLimit < 1 {
		return fmt.Errorf("analytics.recent_limit must be positive")
	}
	if c.Analytics.HistoryPageSize < 1 || c.Analytics.HistoryPageSize > 100 {
		return fmt.Errorf("analytics.history_page_size must be between 1 and 100")
	}
	if c.Analytics.TopLimit < 1 {
		return fmt.Errorf("analytics.top_limit must be positive")
	}

	if len(c.Events.Brokers) > 0 && c.Events.Topic == "" {
		return fmt.Errorf("events.topic is required when events.brokers is set")
	}
	return nil
}
