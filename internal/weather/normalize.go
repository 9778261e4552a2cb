package weather

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	kelvinOffset = 273.15
	kphPerMph    = 1.609344

	// InvalidTime replaces a local time that cannot be parsed.
	InvalidTime = "Invalid time"

	dateLayout = "2006-01-02"
)

// ToCelsius converts kelvin to celsius.
func ToCelsius(k float64) float64 {
	return k - kelvinOffset
}

// ToFahrenheit converts celsius to fahrenheit.
func ToFahrenheit(c float64) float64 {
	return c*1.8 + 32.0
}

// ToKelvin converts celsius to kelvin.
func ToKelvin(c float64) float64 {
	return c + kelvinOffset
}

func fahrenheitToCelsius(f float64) float64 {
	return (f - 32.0) / 1.8
}

// convertTemperature picks the native field for the requested units when the
// provider supplied it and only derives a value otherwise. NaN means the
// snapshot carried no temperature at all.
func convertTemperature(c, f, k *float64, units Units) float64 {
	switch units {
	case Fahrenheit:
		switch {
		case f != nil:
			return *f
		case c != nil:
			return ToFahrenheit(*c)
		case k != nil:
			return ToFahrenheit(ToCelsius(*k))
		}
	case Kelvin:
		switch {
		case k != nil:
			return *k
		case c != nil:
			return ToKelvin(*c)
		case f != nil:
			return ToKelvin(fahrenheitToCelsius(*f))
		}
	default:
		switch {
		case c != nil:
			return *c
		case k != nil:
			return ToCelsius(*k)
		case f != nil:
			return fahrenheitToCelsius(*f)
		}
	}
	return math.NaN()
}

// FormatClock turns a 24-hour "HH:MM" into "hh:MM AM|PM".
func FormatClock(hhmm string) string {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return InvalidTime
	}
	if !allDigits(parts[0]) || !allDigits(parts[1]) {
		return InvalidTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour > 23 {
		return InvalidTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute > 59 {
		return InvalidTime
	}

	period := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		hour -= 12
		period = "PM"
	}
	return pad2(hour) + ":" + pad2(minute) + " " + period
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// FormatLocalTime keeps the date of a "YYYY-MM-DD H:MM" timestamp and
// converts its clock part. A bare clock is accepted too. A date that is not
// YYYY-MM-DD makes the whole value invalid.
func FormatLocalTime(local string) string {
	local = strings.TrimSpace(local)
	date, clock, found := strings.Cut(local, " ")
	if !found {
		return FormatClock(local)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return InvalidTime
	}
	formatted := FormatClock(clock)
	if formatted == InvalidTime {
		return InvalidTime
	}
	return date + " " + formatted
}

// FormatLocation joins the parts with ", ", keeping separators for empty parts.
func FormatLocation(city, region, country string) string {
	return city + ", " + region + ", " + country
}

// ToUnits converts a snapshot into display-ready values. It does no I/O.
func ToUnits(s WeatherSnapshot, units Units) DisplayRecord {
	wind := s.WindKph
	if units == Fahrenheit {
		wind = s.WindMph
		if wind == 0 && s.WindKph != 0 {
			wind = s.WindKph / kphPerMph
		}
	}

	category := s.Condition
	if category == "" {
		category = ConditionUnknown
	}

	return DisplayRecord{
		Location:    FormatLocation(s.LocationName, s.Region, s.Country),
		LocalTime:   FormatLocalTime(s.LocalTime),
		Condition:   s.ConditionText,
		Category:    category,
		Units:       units.String(),
		Temperature: convertTemperature(s.TemperatureC, s.TemperatureF, s.TemperatureK, units),
		FeelsLike:   convertTemperature(s.FeelsLikeC, s.FeelsLikeF, s.FeelsLikeK, units),
		TempSuffix:  units.TemperatureSuffix(),
		Wind:        wind,
		WindSuffix:  units.SpeedSuffix(),
		HumidityPct: s.HumidityPct,
		PrecipMM:    s.PrecipMM,
		PressureMb:  s.PressureMb,
	}
}
