package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/routing"
)

func main() {
	cfg, err := config.Load() // env from START or .env, then the environment
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logger.Load(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Error("close", "error", err)
		}
	}()

	a.RunBackground(ctx)

	srv := routing.NewServer(cfg.HTTPAddr, a.Handler())
	if err := routing.StartServer(ctx, srv, logger); err != nil {
		logger.Error("server failed", "error", err)
		return
	}
	logger.Info("server stopped")
}
