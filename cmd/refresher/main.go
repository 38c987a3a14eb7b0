package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"wasup-chucks/internal/config"
	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/server"
)

const (
	appName    = "wasup-chucks"
	appVersion = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotEnv(); err != nil {
		logging.Error(logging.NewLogger(logging.Config{}), "failed to read .env", err)
		return 1
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: appName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "failed to start refresher", err)
		return 1
	}
	srv.Run(ctx, stop)
	return 0
}
