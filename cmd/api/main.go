package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atelierapi/config"
	"atelierapi/controllers"
	"atelierapi/dbhelper"
	"atelierapi/logger"
	"atelierapi/services"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so the deferred flushes and closes happen.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(cfg.LoggerLevel, cfg.LoggerAsJSON); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	err = sentry.Init(sentry.ClientOptions{
		// empty DSN disables reporting
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Env,
		Release:          "atelierapi@1.0.0",
		Debug:            false,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	s, closeStore, err := dbhelper.OpenStore(cfg)
	if err != nil {
		logger.Error("failed to open store", logger.ErrorF(err))
		return err
	}
	defer closeStore()

	ctx := context.Background()
	items := services.NewItemRepository(ctx, s)
	outfits := services.NewOutfitRepository(ctx, s, items)

	e := controllers.SetupServer(
		items, outfits,
		services.DataURLEncoder{MaxBytes: cfg.ImageMaxBytes},
		cfg.ImageEncodeTimeout,
	)
	e.Use(middleware.BodyLimit("20M"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return serve(e, cfg.HTTPAddr, quit)
}

// serve runs e until a signal arrives on quit or the listener fails.
func serve(e *echo.Echo, addr string, quit <-chan os.Signal) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", logger.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("http server stopped", logger.ErrorF(err))
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown", logger.ErrorF(err))
	}
	return nil
}
