package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/i474232898/wfetch/internal/cli"
	"github.com/i474232898/wfetch/internal/config"
	"github.com/i474232898/wfetch/internal/location"
	"github.com/i474232898/wfetch/internal/logging"
	"github.com/i474232898/wfetch/internal/store"
	"github.com/i474232898/wfetch/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(cli.ExitError)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to build logger: %v\n", err)
		os.Exit(cli.ExitError)
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider, err := providers.New(cfg.Provider, httpClient, cfg.ProviderBaseURL(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}

	app := &cli.App{
		Store:    store.NewFileStore(cfg.ConfigPath),
		Provider: provider,
		Prompter: location.NewTerminalPrompter(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logger,
		Units:    cfg.DisplayUnits(),
	}

	code := app.Run(context.Background(), os.Args[1:])
	_ = logger.Sync()
	os.Exit(code)
}
