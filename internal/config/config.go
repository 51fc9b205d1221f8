package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the API server.
type Config struct {
	Addr                string        `env:"TASKFLOW_ADDR" envDefault:":5001"`
	DatabaseURL         string        `env:"DATABASE_URL" envDefault:"taskflow.db"`
	SecretKey           string        `env:"SECRET_KEY"`
	TokenTTL            time.Duration `env:"TASKFLOW_TOKEN_TTL" envDefault:"168h"`
	MaintenanceInterval time.Duration `env:"TASKFLOW_MAINTENANCE_INTERVAL" envDefault:"24h"`
}

// Load reads configuration from the environment, after loading an optional
// .env file. The signing secret has no default: rotating it invalidates all
// issued tokens, so it must be an explicit deployment decision.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 168 * time.Hour
	}

	return cfg, nil
}
