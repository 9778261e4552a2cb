package weather

import (
	"fmt"
	"strings"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// ConfigRecord is the persisted user configuration.
// QueryLocation is an opaque reference returned by the search endpoint and
// stays empty until setup completes.
type ConfigRecord struct {
	APIKey        string `json:"API_KEY" validate:"required"`
	QueryLocation string `json:"QUERY_LOCATION,omitempty"`
}

// Location is a single search candidate. Only URL outlives a setup session.
type Location struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name" validate:"required"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	URL     string  `json:"url" validate:"required"`
}

// Label renders the candidate the way it is offered for selection.
func (l Location) Label() string {
	return FormatLocation(l.Name, l.Region, l.Country)
}

// WeatherSnapshot is one fetch's parsed current-conditions payload.
// Temperature fields are nil when the provider did not supply that unit.
type WeatherSnapshot struct {
	LocationName string `json:"locationName"`
	Region       string `json:"region"`
	Country      string `json:"country"`

	TemperatureC *float64 `json:"temperatureC,omitempty"`
	TemperatureF *float64 `json:"temperatureF,omitempty"`
	TemperatureK *float64 `json:"temperatureK,omitempty"`
	FeelsLikeC   *float64 `json:"feelsLikeC,omitempty"`
	FeelsLikeF   *float64 `json:"feelsLikeF,omitempty"`
	FeelsLikeK   *float64 `json:"feelsLikeK,omitempty"`

	LocalTime     string    `json:"localTime"` // "YYYY-MM-DD H:MM"
	WindKph       float64   `json:"windKph"`
	WindMph       float64   `json:"windMph"`
	HumidityPct   int       `json:"humidityPct"`
	PrecipMM      float64   `json:"precipMm"`
	PressureMb    float64   `json:"pressureMb"`
	ConditionText string    `json:"conditionText"`
	Condition     Condition `json:"condition"`
}

// Units selects the display unit system.
type Units int

const (
	Celsius Units = iota
	Fahrenheit
	Kelvin
)

func (u Units) String() string {
	switch u {
	case Celsius:
		return "celsius"
	case Fahrenheit:
		return "fahrenheit"
	case Kelvin:
		return "kelvin"
	default:
		return fmt.Sprintf("Units(%d)", int(u))
	}
}

// TemperatureSuffix is the label suffix used for temperatures in u.
func (u Units) TemperatureSuffix() string {
	switch u {
	case Fahrenheit:
		return "°F"
	case Kelvin:
		return "K"
	default:
		return "°C"
	}
}

// SpeedSuffix is the label suffix used for wind speed in u.
func (u Units) SpeedSuffix() string {
	if u == Fahrenheit {
		return "mph"
	}
	return "kph"
}

// ParseUnits accepts full names or their first letter, case-insensitively.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius", "metric":
		return Celsius, nil
	case "f", "fahrenheit", "imperial":
		return Fahrenheit, nil
	case "k", "kelvin", "standard":
		return Kelvin, nil
	}
	return Celsius, fmt.Errorf("%w: %q", ErrInvalidUnits, s)
}

// DisplayRecord is a snapshot converted into display units.
type DisplayRecord struct {
	Location    string    `json:"location"`
	LocalTime   string    `json:"localTime"`
	Condition   string    `json:"condition"`
	Category    Condition `json:"category"`
	Units       string    `json:"units"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feelsLike"`
	TempSuffix  string    `json:"temperatureUnit"`
	Wind        float64   `json:"wind"`
	WindSuffix  string    `json:"windUnit"`
	HumidityPct int       `json:"humidityPct"`
	PrecipMM    float64   `json:"precipMm"`
	PressureMb  float64   `json:"pressureMb"`
}
