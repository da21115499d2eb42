// Command server runs the crowdlib REST API: an in-memory crowdsourced
// commenting service for a small library catalogue. main reads configuration,
// builds the logger and hands over to the server package; state is seeded on
// startup and lost on exit.
package main

import (
	"log/slog"
	"os"

	"github.com/fzaki/crowdlib/internal/config"
	"github.com/fzaki/crowdlib/internal/server"
)

// devJWTSecret is used when JWT_SECRET is unset, so the server is usable out
// of the box. Never rely on it outside local development.
const devJWTSecret = "crowdlib-insecure-dev-secret"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, using the insecure development secret")
		cfg.JWTSecret = devJWTSecret
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
