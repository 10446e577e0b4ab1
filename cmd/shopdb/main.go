package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/johnwards/shopdb/internal/config"
	"github.com/johnwards/shopdb/internal/logging"
	"github.com/johnwards/shopdb/internal/runner"
)

func main() {
	// A missing .env file is fine; the environment and defaults still apply.
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel))

	// Failures are logged by the runner; the process exits 0 either way.
	runner.New(cfg, slog.Default(), os.Stdout).Run(context.Background())
}
