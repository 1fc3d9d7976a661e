package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration, read from the environment.
// DATABASE_URL decides the backend: a postgres:// URL selects PostgreSQL,
// anything else is treated as a SQLite path (":memory:" included).
type Config struct {
	DatabaseURL string `env:"DATABASE_URL" envDefault:"secrethouse.db"`
	RatesPath   string `env:"RATES_PATH" envDefault:"configs/rates.json"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"12h"`

	// Bcrypt hash of the admin password, not the password itself.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH,required,notEmpty"`

	// Drafts older than this are dropped by the session janitor.
	DraftTTL time.Duration `env:"DRAFT_TTL" envDefault:"24h"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
