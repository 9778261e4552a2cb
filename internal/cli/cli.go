package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/i474232898/wfetch/internal/location"
	"github.com/i474232898/wfetch/internal/report"
	"github.com/i474232898/wfetch/internal/store"
	"github.com/i474232898/wfetch/internal/weather"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const keyRemediation = `Please get your api key here https://www.weatherapi.com/
and run ` + "`wfetch --api-key <api_key>`"

const locationRemediation = "Run `wfetch --setup` to search for and save your location."

const usage = `Usage: wfetch [flags]

Prints the current weather for your saved location.

Flags:
  -k, --api-key <KEY>   store the weatherapi.com API key
  -s, --setup           search for and save your location
  -u, --units <UNITS>   display units: c, f or k
  -cl, --clear          delete the config file
  -h, --help            show this help
`

// ConfigStore is the configuration file as seen by the CLI.
type ConfigStore interface {
	weather.Store
	Clear() error
}

// App holds everything one invocation needs. Only Run decides exit codes and
// what is printed for an error.
type App struct {
	Store    ConfigStore
	Provider weather.Provider
	Prompter location.Prompter
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *zap.Logger
	Units    weather.Units
}

type options struct {
	apiKey    string
	apiKeySet bool
	setup     bool
	clear     bool
	help      bool
	units     string
}

func (a *App) parse(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("wfetch", flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	fs.Usage = func() { fmt.Fprint(a.Stderr, usage) }

	fs.StringVar(&opts.apiKey, "api-key", "", "store the weatherapi.com API key")
	fs.StringVar(&opts.apiKey, "k", "", "store the weatherapi.com API key")
	fs.BoolVar(&opts.setup, "setup", false, "search for and save your location")
	fs.BoolVar(&opts.setup, "s", false, "search for and save your location")
	fs.BoolVar(&opts.clear, "clear", false, "delete the config file")
	fs.BoolVar(&opts.clear, "cl", false, "delete the config file")
	fs.BoolVar(&opts.help, "help", false, "show this help")
	fs.BoolVar(&opts.help, "h", false, "show this help")
	fs.StringVar(&opts.units, "units", "", "display units: c, f or k")
	fs.StringVar(&opts.units, "u", "", "display units: c, f or k")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "api-key" || f.Name == "k" {
			opts.apiKeySet = true
		}
	})
	return opts, nil
}

// Run executes one invocation and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}

	opts, err := a.parse(args)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	if opts.help {
		fmt.Fprint(a.Stdout, usage)
		return ExitOK
	}

	units := a.Units
	if opts.units != "" {
		if units, err = weather.ParseUnits(opts.units); err != nil {
			fmt.Fprintf(a.Stderr, "Error: %v\n", err)
			return ExitUsage
		}
	}

	if opts.clear {
		return a.clear()
	}

	if opts.apiKeySet {
		if err := a.Store.SetField("api_key", opts.apiKey); err != nil {
			return a.fail(err)
		}
		a.Logger.Debug("api key stored")
		fmt.Fprintln(a.Stdout, "API key saved.")
	}

	if opts.setup {
		if code := a.setup(ctx); code != ExitOK {
			return code
		}
	}

	if opts.apiKeySet || opts.setup {
		return ExitOK
	}

	return a.fetch(ctx, units)
}

func (a *App) clear() int {
	if err := a.Store.Clear(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(a.Stderr, "Error: nothing to clear: %v\n", err)
		} else {
			fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		}
		return ExitError
	}
	fmt.Fprintln(a.Stdout, "Configuration cleared.")
	return ExitOK
}

func (a *App) setup(ctx context.Context) int {
	svc := weather.NewService(a.Store, a.Provider, a.Logger)
	rec, err := svc.Credentials()
	if err != nil {
		return a.fail(err)
	}

	resolver := location.NewResolver(a.Provider, a.Prompter, a.Store, a.Logger)
	loc, err := resolver.Resolve(ctx, rec.APIKey)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.Stdout, "Location set to %s\n", loc.Label())
	return ExitOK
}

func (a *App) fetch(ctx context.Context, units weather.Units) int {
	svc := weather.NewService(a.Store, a.Provider, a.Logger)
	rec, err := svc.Current(ctx, units)
	if err != nil {
		return a.fail(err)
	}
	if err := report.Write(a.Stdout, rec); err != nil {
		a.Logger.Warn("write report", zap.Error(err))
		return ExitError
	}
	return ExitOK
}

// fail prints the remediation for configuration errors and the cause for
// everything else.
func (a *App) fail(err error) int {
	a.Logger.Debug("invocation failed", zap.Error(err))

	switch {
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintf(a.Stderr, "Error: config file not found\n%s\n", keyRemediation)
	case errors.Is(err, weather.ErrMissingCredential):
		fmt.Fprintf(a.Stderr, "Error: no API key configured\n%s\n", keyRemediation)
	case errors.Is(err, weather.ErrMissingLocation):
		fmt.Fprintf(a.Stderr, "Error: no location configured\n%s\n", locationRemediation)
	case errors.Is(err, location.ErrNoMatches):
		fmt.Fprintf(a.Stderr, "Error: %v\nTry a broader search, e.g. just the city name.\n", err)
	default:
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
	}
	return ExitError
}
