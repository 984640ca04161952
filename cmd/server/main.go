package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/ipl-stats-service/internal/config"
	"github.com/preston-bernstein/ipl-stats-service/internal/logging"
	"github.com/preston-bernstein/ipl-stats-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	bootstrap := logging.NewLogger(logging.Config{})
	if err := config.LoadDotEnv(); err != nil {
		logging.Warn(bootstrap, "failed to read .env", logging.FieldError, err)
	}

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}
