// Command storectl runs maintenance tasks against the storefront database.
package main

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/logger"
)

func loadServices(ctx context.Context) (*services, func(), error) {
	cfg, err := config.LoadCatalog()
	if err != nil {
		return nil, nil, err
	}
	log := logger.Load(cfg.LogLevel, cfg.LogFormat)

	a, err := app.Catalog(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := a.Close(context.Background()); err != nil {
			log.Error("close", "error", err)
		}
	}
	return &services{
		Categories: a.Categories,
		Products:   a.Products,
		Users:      a.Users,
		Sessions:   a.AttachSessions,
	}, closeFn, nil
}

func main() {
	if err := newRootCmd(loadServices).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
