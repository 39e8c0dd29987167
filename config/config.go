// Package config reads the binaries' settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8083"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"atelier.db"`
	PostgresDSN string `env:"POSTGRES_DSN"`
	StoreCache  bool   `env:"STORE_CACHE" envDefault:"true"`

	SentryDSN string `env:"SENTRY_DSN"`

	LoggerLevel  string `env:"LOGGER_LEVEL" envDefault:"info"`
	LoggerAsJSON bool   `env:"LOGGER_AS_JSON" envDefault:"false"`

	ImageEncodeTimeout time.Duration `env:"IMAGE_ENCODE_TIMEOUT" envDefault:"5s"`
	ImageMaxBytes      int64         `env:"IMAGE_MAX_BYTES" envDefault:"10485760"`
}

// Load reads an optional .env file (or the files named) and then the
// process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be set for the sqlite driver")
		}
	case DriverPostgres:
		if cfg.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN must be set for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.ImageMaxBytes <= 0 {
		return errors.New("IMAGE_MAX_BYTES must be positive")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (cfg *Config) DSN() string {
	if cfg.DBDriver == DriverPostgres {
		return cfg.PostgresDSN
	}
	return cfg.SQLitePath
}
