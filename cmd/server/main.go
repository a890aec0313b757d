package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/bazaarbuddy/internal/logging"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		logging.NewJSONLogger(os.Stderr, "info").Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
