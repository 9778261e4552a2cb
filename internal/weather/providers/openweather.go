package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/wfetch/internal/weather"
)

// DefaultOpenWeatherBaseURL is the OpenWeatherMap API root.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org"

const (
	searchLimit  = 5
	kphPerMS     = 3.6
	mphPerMS     = 2.2369362921
	localTimeFmt = "2006-01-02 15:04"
)

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
// It requests standard units, so temperatures arrive in Kelvin and location
// references are "lat,lon" pairs.
type OpenWeatherProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewOpenWeatherProvider(client *http.Client, baseURL string, logger *zap.Logger) *OpenWeatherProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: cb,
		logger:  logger,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) get(ctx context.Context, path string, values url.Values) (*http.Response, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	p.logger.Debug("openweather request", zap.String("path", path))
	return doRequest(ctx, p.client, p.circuit, buildRequest)
}

type geoCandidate struct {
	Name    string  `json:"name" validate:"required"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon     float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Search uses the direct geocoding endpoint.
func (p *OpenWeatherProvider) Search(ctx context.Context, apiKey, query string) ([]weather.Location, error) {
	if apiKey == "" {
		return nil, weather.ErrMissingCredential
	}

	values := url.Values{}
	values.Set("appid", apiKey)
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(searchLimit))

	resp, err := p.get(ctx, "/geo/1.0/direct", values)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", weather.ErrFetch, query, err)
	}

	var candidates []geoCandidate
	if err := decodeJSON(resp, &candidates); err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", weather.ErrFetch, query, err)
	}
	if err := validate.Var(candidates, "dive"); err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", weather.ErrFetch, query, err)
	}

	locations := make([]weather.Location, 0, len(candidates))
	for i, c := range candidates {
		locations = append(locations, weather.Location{
			ID:      int64(i + 1),
			Name:    c.Name,
			Region:  c.State,
			Country: c.Country,
			Lat:     c.Lat,
			Lon:     c.Lon,
			URL:     coordinateReference(c.Lat, c.Lon),
		})
	}
	return locations, nil
}

func coordinateReference(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', 4, 64) + "," + strconv.FormatFloat(lon, 'f', 4, 64)
}

func parseCoordinateReference(ref string) (lat, lon string, err error) {
	parts := strings.Split(ref, ",")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("location reference %q is not lat,lon", ref)
	}
	for _, part := range parts {
		if _, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err != nil {
			return "", "", fmt.Errorf("location reference %q is not lat,lon", ref)
		}
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

type owmPayload struct {
	Name     string `json:"name" validate:"required"`
	Dt       int64  `json:"dt" validate:"required"`
	Timezone int    `json:"timezone"`
	Sys      struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      *float64 `json:"temp" validate:"required"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  int      `json:"humidity" validate:"gte=0,lte=100"`
		Pressure  float64  `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
	Snow struct {
		OneH float64 `json:"1h"`
	} `json:"snow"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// FetchCurrent requests current conditions for a "lat,lon" reference.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, apiKey, reference string) (weather.WeatherSnapshot, error) {
	if apiKey == "" {
		return weather.WeatherSnapshot{}, weather.ErrMissingCredential
	}
	if reference == "" {
		return weather.WeatherSnapshot{}, weather.ErrMissingLocation
	}
	lat, lon, err := parseCoordinateReference(reference)
	if err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: %w", weather.ErrFetch, err)
	}

	values := url.Values{}
	values.Set("appid", apiKey)
	values.Set("lat", lat)
	values.Set("lon", lon)
	values.Set("units", "standard")

	resp, err := p.get(ctx, "/data/2.5/weather", values)
	if err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: %w", weather.ErrFetch, err)
	}

	var payload owmPayload
	if err := decodeJSON(resp, &payload); err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: %w", weather.ErrFetch, err)
	}
	if err := validate.Struct(payload); err != nil {
		return weather.WeatherSnapshot{}, fmt.Errorf("%w: unexpected payload: %w", weather.ErrFetch, err)
	}

	local := time.Unix(payload.Dt, 0).In(time.FixedZone("", payload.Timezone))

	var text string
	if len(payload.Weather) > 0 {
		text = payload.Weather[0].Description
	}

	return weather.WeatherSnapshot{
		LocationName:  payload.Name,
		Country:       payload.Sys.Country,
		TemperatureK:  payload.Main.Temp,
		FeelsLikeK:    payload.Main.FeelsLike,
		LocalTime:     local.Format(localTimeFmt),
		WindKph:       payload.Wind.Speed * kphPerMS,
		WindMph:       payload.Wind.Speed * mphPerMS,
		HumidityPct:   payload.Main.Humidity,
		PrecipMM:      payload.Rain.OneH + payload.Snow.OneH,
		PressureMb:    payload.Main.Pressure,
		ConditionText: text,
		Condition:     mapOpenWeatherCondition(payload.Weather),
	}, nil
}

func mapOpenWeatherCondition(items []struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}) weather.Condition {
	if len(items) == 0 {
		return weather.ConditionUnknown
	}
	switch items[0].Main {
	case "Clear":
		return weather.ConditionClear
	case "Clouds":
		return weather.ConditionCloudy
	case "Rain", "Drizzle":
		return weather.ConditionRain
	case "Snow":
		return weather.ConditionSnow
	case "Thunderstorm":
		return weather.ConditionStorm
	case "Mist", "Fog", "Haze", "Smoke", "Dust":
		return weather.ConditionMist
	default:
		return weather.ConditionUnknown
	}
}
