// Package config loads process configuration from the environment. A .env
// file in the working directory is read first.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Port          int    `env:"PORT" envDefault:"8080"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DB            DBConfig
	JWT           JWTConfig
	Weather       WeatherConfig
}

type DBConfig struct {
	Host     string `env:"BLUEPRINT_DB_HOST" envDefault:"localhost"`
	Port     string `env:"BLUEPRINT_DB_PORT" envDefault:"5432"`
	Database string `env:"BLUEPRINT_DB_DATABASE"`
	Username string `env:"BLUEPRINT_DB_USERNAME"`
	Password string `env:"BLUEPRINT_DB_PASSWORD"`
	Schema   string `env:"BLUEPRINT_DB_SCHEMA" envDefault:"public"`
}

// DSN builds the key/value connection string understood by pgx.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable search_path=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, c.Schema)
}

type JWTConfig struct {
	// SecretKey is base64 encoded in the environment.
	SecretKey string        `env:"JWT_SECRET_KEY,required"`
	TokenTTL  time.Duration `env:"JWT_TOKEN_TTL" envDefault:"60m"`
}

// Key decodes the signing key.
func (c JWTConfig) Key() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("decode JWT_SECRET_KEY: %w", err)
	}
	if len(key) < 32 {
		return nil, errors.New("JWT_SECRET_KEY must decode to at least 32 bytes")
	}
	return key, nil
}

type WeatherConfig struct {
	URL        string        `env:"WEATHER_URL" envDefault:"https://f-api.github.io/f-api/weather.json"`
	Timeout    time.Duration `env:"WEATHER_TIMEOUT" envDefault:"3s"`
	MaxRetries uint64        `env:"WEATHER_MAX_RETRIES" envDefault:"2"`
	Fallback   string        `env:"WEATHER_FALLBACK" envDefault:"Unknown"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if _, err := c.JWT.Key(); err != nil {
		return err
	}
	if c.JWT.TokenTTL <= 0 {
		return errors.New("JWT_TOKEN_TTL must be positive")
	}
	if c.Weather.Timeout <= 0 {
		return errors.New("WEATHER_TIMEOUT must be positive")
	}
	return nil
}
