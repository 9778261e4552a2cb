package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/wfetch/internal/store"
	"github.com/i474232898/wfetch/internal/weather"
	"github.com/i474232898/wfetch/internal/weather/providers"
)

var validate = validator.New()

// AppConfig is the process environment configuration. The user's credential
// and location live in the config file, not here.
type AppConfig struct {
	// ConfigPath is where the JSON config record lives.
	ConfigPath string `validate:"required"`

	// Units is the default display unit system.
	Units string `validate:"required,oneof=c f k celsius fahrenheit kelvin metric imperial standard C F K Celsius Fahrenheit Kelvin"`

	// Provider names the weather service: weatherapi or openweathermap.
	Provider string `validate:"required,oneof=weatherapi openweathermap"`

	WeatherAPIBaseURL  string `validate:"required,url"`
	OpenWeatherBaseURL string `validate:"required,url"`

	// HTTPTimeout of zero keeps the transport default.
	HTTPTimeout time.Duration `validate:"gte=0"`

	Debug bool

	// Addr is the listen address of the HTTP server binary.
	Addr string `validate:"required"`
}

// Load reads configuration from environment with sensible defaults. A .env
// file in the working directory is honoured when present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &AppConfig{}

	cfg.ConfigPath = os.Getenv("WFETCH_CONFIG")
	if cfg.ConfigPath == "" {
		path, err := store.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.ConfigPath = path
	}

	cfg.Units = getenvDefault("WFETCH_UNITS", "celsius")
	cfg.Provider = getenvDefault("WFETCH_PROVIDER", providers.WeatherAPI)
	cfg.WeatherAPIBaseURL = getenvDefault("WEATHERAPI_BASE_URL", providers.DefaultWeatherAPIBaseURL)
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", providers.DefaultOpenWeatherBaseURL)

	timeout, err := time.ParseDuration(getenvDefault("WFETCH_HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WFETCH_HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Debug = getenvBool("WFETCH_DEBUG", false)
	cfg.Addr = getenvDefault("WFETCH_ADDR", ":8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DisplayUnits parses the configured default units.
func (c *AppConfig) DisplayUnits() weather.Units {
	u, err := weather.ParseUnits(c.Units)
	if err != nil {
		return weather.Celsius
	}
	return u
}

// ProviderBaseURL is the API root of the selected provider.
func (c *AppConfig) ProviderBaseURL() string {
	if c.Provider == providers.OpenWeather {
		return c.OpenWeatherBaseURL
	}
	return c.WeatherAPIBaseURL
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
