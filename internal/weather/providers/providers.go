package providers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/i474232898/wfetch/internal/weather"
)

// Provider names accepted by New.
const (
	WeatherAPI  = "weatherapi"
	OpenWeather = "openweathermap"
)

// New builds the named provider. An empty baseURL selects the provider's
// public endpoint.
func New(name string, client *http.Client, baseURL string, logger *zap.Logger) (weather.Provider, error) {
	switch name {
	case WeatherAPI, "":
		return NewWeatherAPIProvider(client, baseURL, logger), nil
	case OpenWeather:
		return NewOpenWeatherProvider(client, baseURL, logger), nil
	}
	return nil, fmt.Errorf("unknown weather provider %q", name)
}
