package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/wfetch/internal/common"
	"github.com/i474232898/wfetch/internal/weather"
)

// DefaultWeatherAPIBaseURL is the weatherapi.com v1 root.
const DefaultWeatherAPIBaseURL = "https://api.weatherapi.com/v1"

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewWeatherAPIProvider(client *http.Client, baseURL string, logger *zap.Logger) *WeatherAPIProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if baseURL == "" {
		baseURL = DefaultWeatherAPIBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WeatherAPIProvider{
		name:    "weatherapi",
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: cb,
		logger:  logger,
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) get(ctx context.Context, endpoint string, values url.Values) (*http.Response, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	p.logger.Debug("weatherapi request", zap.String("endpoint", endpoint), zap.String("q", values.Get("q")))
	return doRequest(ctx, p.client, p.circuit, buildRequest)
}

// Search returns the candidates matching a free-text query, in the order the
// service ranks them. An empty slice is a valid answer.
func (p *WeatherAPIProvider) Search(ctx context.Context, apiKey, query string) ([]weather.Location, error) {
	if apiKey == "" {
		return nil, weather.ErrMissingCredential
	}

	values := url.Values{}
	values.Set("key", apiKey)
	values.Set("q", query)

	resp, err := p.get(ctx, "search.json", values)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", weather.ErrFetch, query, err)
	}

	var locations []weather.Location
	if err := decodeJSON(resp, &locations); err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", weather.ErrFetch, query, err)
	}
	if locations == nil {
		locations = []weather.Location{}
	}
	if err := validate.Var(locations, "dive"); err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", weather.ErrFetch, query, err)
	}

	p.logger.Debug("weatherapi search done", zap.String("q", query), zap.Int("candidates", len(locations)))
	return locations, nil
}

type currentPayload struct {
	Location struct {
		Name      string `json:"name" validate:"required"`
		Region    string `json:"region"`
		Country   string `json:"country"`
		Localtime string `json:"localtime" validate:"required"`
	} `json:"location"`
	Current struct {
		TempC      *float64 `json:"temp_c" validate:"required"`
		TempF      *float64 `json:"temp_f"`
		FeelslikeC *float64 `json:"feelslike_c"`
		FeelslikeF *float64 `json:"feelslike_f"`
		WindKph    float64  `json:"wind_kph"`
		WindMph    float64  `json:"wind_mph"`
		Humidity   int      `json:"humidity" validate:"gte=0,lte=100"`
		PrecipMm   float64  `json:"precip_mm"`
		PressureMb float64  `json:"pressure_mb"`
		Condition  struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// FetchCurrent requests current conditions for a location reference obtained
// from Search.
func (p *WeatherAPIProvider) FetchCurrent(ctx context.Context, apiKey, reference string) (weather.WeatherSnapshot, error) {
	if apiKey == "" {
		return weather.WeatherSnapshot{}, weather.ErrMissingCredential
	}
	if reference == "" {
		return weather.WeatherSnapshot{}, weather.ErrMissingLocation
	}

	values := url.Values{}
	values.Set("key", apiKey)
	values.Set("q", reference)

	resp, err := p.get(ctx, "current.json", values)
	if err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: %w", weather.ErrFetch, err)
	}

	var payload currentPayload
	if err := decodeJSON(resp, &payload); err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: %w", weather.ErrFetch, err)
	}
	if err := validate.Struct(payload); err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: unexpected payload: %w", weather.ErrFetch, err)
	}

	return weather.WeatherSnapshot{
		LocationName:  payload.Location.Name,
		Region:        payload.Location.Region,
		Country:       payload.Location.Country,
		TemperatureC:  payload.Current.TempC,
		TemperatureF:  payload.Current.TempF,
		FeelsLikeC:    payload.Current.FeelslikeC,
		FeelsLikeF:    payload.Current.FeelslikeF,
		LocalTime:     payload.Location.Localtime,
		WindKph:       payload.Current.WindKph,
		WindMph:       payload.Current.WindMph,
		HumidityPct:   payload.Current.Humidity,
		PrecipMM:      payload.Current.PrecipMm,
		PressureMb:    payload.Current.PressureMb,
		ConditionText: payload.Current.Condition.Text,
		Condition:     mapWeatherAPICondition(payload.Current.Condition.Text),
	}, nil
}

func mapWeatherAPICondition(text string) weather.Condition {
	switch {
	case text == "":
		return weather.ConditionUnknown
	case common.HasAny(text, "thunder", "storm"):
		return weather.ConditionStorm
	case common.HasAny(text, "snow", "sleet", "blizzard", "ice pellets"):
		return weather.ConditionSnow
	case common.HasAny(text, "rain", "shower", "drizzle"):
		return weather.ConditionRain
	case common.HasAny(text, "mist", "fog", "haze"):
		return weather.ConditionMist
	case common.HasAny(text, "cloud", "overcast"):
		return weather.ConditionCloudy
	case common.HasAny(text, "sunny", "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionUnknown
	}
}
