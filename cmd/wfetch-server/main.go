package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/wfetch/internal/api/http"
	"github.com/i474232898/wfetch/internal/config"
	"github.com/i474232898/wfetch/internal/logging"
	"github.com/i474232898/wfetch/internal/store"
	"github.com/i474232898/wfetch/internal/weather"
	"github.com/i474232898/wfetch/internal/weather/providers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	app, err := newApp(cfg, log)
	if err != nil {
		return err
	}

	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("config", cfg.ConfigPath))
		if err := app.Listen(cfg.Addr); err != nil {
			log.Error("fiber server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	return nil
}

// newApp builds the Fiber app over the configured provider and config file.
func newApp(cfg *config.AppConfig, log *zap.Logger) (*fiber.App, error) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider, err := providers.New(cfg.Provider, httpClient, cfg.ProviderBaseURL(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider: %w", err)
	}

	service := weather.NewService(store.NewFileStore(cfg.ConfigPath), provider, log)

	app := fiber.New(fiber.Config{
		AppName:               "wfetch",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(httpapi.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, service, cfg.DisplayUnits())
	return app, nil
}
