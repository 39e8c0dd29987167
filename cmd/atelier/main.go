package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"atelierapi/config"
	"atelierapi/dbhelper"
	"atelierapi/logger"
	"atelierapi/services"

	"github.com/getsentry/sentry-go"
)

// app is the wardrobe opened for one command invocation.
type app struct {
	items         *services.ItemRepository
	outfits       *services.OutfitRepository
	encoder       services.ImageEncoder
	encodeTimeout time.Duration
	close         func() error
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.LoggerLevel, cfg.LoggerAsJSON); err != nil {
		return nil, err
	}
	if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Environment: cfg.Env}); err != nil {
		return nil, fmt.Errorf("sentry.Init: %w", err)
	}

	s, closeStore, err := dbhelper.OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	items := services.NewItemRepository(ctx, s)
	return &app{
		items:         items,
		outfits:       services.NewOutfitRepository(ctx, s, items),
		encoder:       services.DataURLEncoder{MaxBytes: cfg.ImageMaxBytes},
		encodeTimeout: cfg.ImageEncodeTimeout,
		close: func() error {
			sentry.Flush(2 * time.Second)
			logger.Sync()
			return closeStore()
		},
	}, nil
}

func main() {
	if err := newRootCmd(openApp).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
