package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"newscanvas/internal/app"
	"newscanvas/internal/config"
	"newscanvas/internal/logging"
)

func main() {
	daemon := flag.Bool("daemon", false, "keep running and post on the configured cron schedule")
	flag.Parse()

	// Credentials may live in a local .env file; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		logger.Error("startup configuration invalid", "error", err)
		os.Exit(1)
	}

	application := app.New(cfg, logger)

	if !*daemon {
		application.Run(context.Background())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.RunDaemon(ctx); err != nil {
		logger.Error("daemon stopped", "error", err)
		os.Exit(1)
	}
}
