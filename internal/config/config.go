// Package config loads server configuration from the environment. A local
// .env file is read first when present, so development settings do not have
// to live in the shell profile.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port int `env:"PORT" envDefault:"8080"`
	// BaseURL is the externally visible URL used to build the navigation
	// links embedded in payloads. Defaults to http://localhost:{Port}.
	BaseURL string `env:"BASE_URL"`
	// JWTSecret signs access tokens. Must be at least 16 characters; leave
	// empty only in development, where a fixed insecure secret is used.
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"15m"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"`
}

// Load reads .env (if any) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	return cfg, nil
}
