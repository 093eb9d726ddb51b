// Package config loads the application settings from the environment.
//
// Values come from process environment variables (and a `.env` file when one
// exists) through viper, are decoded into typed structs and validated so the
// application fails fast on bad settings.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// Database drivers understood by the database package.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration object.
type Config struct {
	Port     string `validate:"required"`
	Env      string `validate:"required,oneof=development production test"`
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	Log      LogConfig
}

// DatabaseConfig selects the persistence backend.
type DatabaseConfig struct {
	Driver string `validate:"required,oneof=sqlite postgres memory"`
	DSN    string `validate:"required_unless=Driver memory"`
	Seed   bool
}

// RabbitMQConfig enables product/order events when URL is set.
type RabbitMQConfig struct {
	URL   string
	Queue string `validate:"required_with=URL"`
}

// Enabled reports whether events should be published.
func (c RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

// AuthConfig controls the JWT guard on mutating routes.
type AuthConfig struct {
	Enabled   bool
	JWTSecret string        `validate:"required_if=Enabled true"`
	TokenTTL  time.Duration `validate:"gt=0"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level  string `validate:"required,oneof=trace debug info warn error"`
	Format string `validate:"required,oneof=console json"`
	File   string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "productos.db")
	v.SetDefault("DB_SEED", false)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_FILE", "")
}

// Load reads every key from v (defaults plus environment) and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := &Config{
		Port: v.GetString("APP_PORT"),
		Env:  v.GetString("APP_ENV"),
		Database: DatabaseConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
			Seed:   v.GetBool("DB_SEED"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("RABBITMQ_QUEUE"),
		},
		Auth: AuthConfig{
			Enabled:   v.GetBool("AUTH_ENABLED"),
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  v.GetDuration("JWT_TTL"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File:   v.GetString("LOG_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of the whole tree.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction reports whether the application runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
