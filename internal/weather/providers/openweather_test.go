package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/i474232898/wfetch/internal/weather"
)

const owmCurrentBody = `{
  "coord": {"lon": 2.3488, "lat": 48.8534},
  "weather": [{"id": 803, "main": "Clouds", "description": "broken clouds"}],
  "main": {"temp": 291.15, "feels_like": 290.15, "pressure": 1015, "humidity": 64},
  "wind": {"speed": 3.0},
  "rain": {"1h": 0.2},
  "dt": 1714563000,
  "sys": {"country": "FR"},
  "timezone": 7200,
  "name": "Paris"
}`

const owmGeoBody = `[
  {"name": "Paris", "lat": 48.8588897, "lon": 2.3200410, "country": "FR", "state": "Ile-de-France"},
  {"name": "Paris", "lat": 33.6617962, "lon": -95.5555130, "country": "US", "state": "Texas"}
]`

func TestOpenWeatherFetchCurrent(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/data/2.5/weather" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("appid") != testAPIKey || q.Get("lat") != "48.8589" || q.Get("lon") != "2.3200" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("units") != "standard" {
			t.Errorf("expected standard units, got %q", q.Get("units"))
		}
		w.Write([]byte(owmCurrentBody))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(&http.Client{}, srv.URL, nil)
	snap, err := p.FetchCurrent(context.Background(), testAPIKey, "48.8589,2.3200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected one request, got %d", calls)
	}

	if snap.TemperatureK == nil || *snap.TemperatureK != 291.15 {
		t.Errorf("expected kelvin temperature, got %v", snap.TemperatureK)
	}
	if snap.TemperatureC != nil || snap.TemperatureF != nil {
		t.Errorf("only kelvin should be native")
	}
	if snap.LocalTime != "2024-05-01 13:30" {
		t.Errorf("expected local time in the location's zone, got %q", snap.LocalTime)
	}
	if snap.WindKph < 10.79 || snap.WindKph > 10.81 {
		t.Errorf("expected ~10.8 kph, got %v", snap.WindKph)
	}
	if snap.Condition != weather.ConditionCloudy || snap.ConditionText != "broken clouds" {
		t.Errorf("unexpected condition %q/%q", snap.Condition, snap.ConditionText)
	}

	rec := weather.ToUnits(snap, weather.Celsius)
	if rec.Temperature < 17.99 || rec.Temperature > 18.01 {
		t.Errorf("expected 18.0 C derived from kelvin, got %v", rec.Temperature)
	}
}

func TestOpenWeatherFetchCurrentBadReference(t *testing.T) {
	p := NewOpenWeatherProvider(&http.Client{}, "http://127.0.0.1:0", nil)

	_, err := p.FetchCurrent(context.Background(), testAPIKey, "paris-ile-de-france-france")
	if !errors.Is(err, weather.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestOpenWeatherFetchCurrentUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(&http.Client{}, srv.URL, nil)
	_, err := p.FetchCurrent(context.Background(), "bad", "48.8589,2.3200")
	if !errors.Is(err, weather.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid API key.") {
		t.Errorf("expected provider message in %q", err)
	}
}

func TestOpenWeatherSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/1.0/direct" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "Paris" {
			t.Errorf("unexpected q %q", r.URL.Query().Get("q"))
		}
		w.Write([]byte(owmGeoBody))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(&http.Client{}, srv.URL, nil)
	locations, err := p.Search(context.Background(), testAPIKey, "Paris")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(locations))
	}
	if got := locations[0].Label(); got != "Paris, Ile-de-France, FR" {
		t.Errorf("unexpected label %q", got)
	}
	if locations[0].URL != "48.8589,2.3200" {
		t.Errorf("unexpected reference %q", locations[0].URL)
	}
	if locations[1].URL != "33.6618,-95.5555" {
		t.Errorf("unexpected reference %q", locations[1].URL)
	}
}

func TestOpenWeatherSearchEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(&http.Client{}, srv.URL, nil)
	locations, err := p.Search(context.Background(), testAPIKey, "Atlantis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locations == nil || len(locations) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", locations)
	}
}

func TestNewProvider(t *testing.T) {
	for name, want := range map[string]string{
		"":          "weatherapi",
		WeatherAPI:  "weatherapi",
		OpenWeather: "openweathermap",
	} {
		p, err := New(name, nil, "", nil)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", name, err)
		}
		if p.Name() != want {
			t.Errorf("%q: expected %s, got %s", name, want, p.Name())
		}
	}

	if _, err := New("darksky", nil, "", nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}
