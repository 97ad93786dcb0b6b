package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env           string `env:"ENV" envDefault:"development"`
	Port          string `env:"PORT" envDefault:"5000"`
	DBURL         string `env:"DB_URL" envDefault:"postgres://postgres:1@localhost:5432/auth_db?sslmode=disable"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"your_jwt_secret_key"`
	SessionExpiry int    `env:"SESSION_EXPIRY_MIN" envDefault:"60"`
	KeyExpiry     int    `env:"KEY_EXPIRY_MIN" envDefault:"5"`
	CORSOrigin    string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
	LogLevel      int    `env:"LOG_LEVEL" envDefault:"0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SecureCookies reports whether session cookies must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.Env == "production"
}
