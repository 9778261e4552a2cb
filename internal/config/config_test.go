package config

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/i474232898/wfetch/internal/weather"
	"github.com/i474232898/wfetch/internal/weather/providers"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"WFETCH_CONFIG", "WFETCH_UNITS", "WFETCH_PROVIDER", "WEATHERAPI_BASE_URL",
		"OPENWEATHER_BASE_URL", "WFETCH_HTTP_TIMEOUT", "WFETCH_DEBUG", "WFETCH_ADDR",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func TestLoad(t *testing.T) {
	Convey("Given an empty environment", t, func() {
		clearEnv(t)

		cfg, err := Load()

		Convey("defaults are applied", func() {
			So(err, ShouldBeNil)
			So(filepath.Base(cfg.ConfigPath), ShouldEqual, "wfetch.json")
			So(filepath.Base(filepath.Dir(cfg.ConfigPath)), ShouldEqual, ".config")
			So(cfg.Provider, ShouldEqual, providers.WeatherAPI)
			So(cfg.ProviderBaseURL(), ShouldEqual, providers.DefaultWeatherAPIBaseURL)
			So(cfg.HTTPTimeout, ShouldEqual, time.Duration(0))
			So(cfg.Debug, ShouldBeFalse)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.DisplayUnits(), ShouldEqual, weather.Celsius)
		})
	})

	Convey("Given overrides", t, func() {
		clearEnv(t)
		t.Setenv("WFETCH_CONFIG", "/tmp/custom.json")
		t.Setenv("WFETCH_UNITS", "F")
		t.Setenv("WFETCH_PROVIDER", "openweathermap")
		t.Setenv("OPENWEATHER_BASE_URL", "http://localhost:9999")
		t.Setenv("WFETCH_HTTP_TIMEOUT", "5s")
		t.Setenv("WFETCH_DEBUG", "true")

		cfg, err := Load()

		Convey("they win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.ConfigPath, ShouldEqual, "/tmp/custom.json")
			So(cfg.DisplayUnits(), ShouldEqual, weather.Fahrenheit)
			So(cfg.ProviderBaseURL(), ShouldEqual, "http://localhost:9999")
			So(cfg.HTTPTimeout, ShouldEqual, 5*time.Second)
			So(cfg.Debug, ShouldBeTrue)
		})
	})

	Convey("Given invalid values", t, func() {
		cases := map[string]string{
			"WFETCH_UNITS":        "rankine",
			"WFETCH_PROVIDER":     "darksky",
			"WEATHERAPI_BASE_URL": "not a url",
			"WFETCH_HTTP_TIMEOUT": "soon",
		}
		for key, value := range cases {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()

			So(err, ShouldNotBeNil)
		}
	})
}
